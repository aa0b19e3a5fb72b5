// Package semver implements the project's build version: a
// major.minor.patch triple plus a build counter and an optional
// pre-release tag, the four increment operations over it, and a store
// that persists exactly one live Version between builds.
package semver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/luapack/pkg/errors"
)

// Version is the persisted build version.
type Version struct {
	Major      uint   `toml:"major" json:"major" yaml:"major"`
	Minor      uint   `toml:"minor" json:"minor" yaml:"minor"`
	Patch      uint   `toml:"patch" json:"patch" yaml:"patch"`
	Build      uint   `toml:"build" json:"build" yaml:"build"`
	Prerelease string `toml:"prerelease,omitempty" json:"prerelease,omitempty" yaml:"prerelease,omitempty"`
}

// Kind selects which component an increment bumps.
type Kind string

const (
	KindMajor Kind = "major"
	KindMinor Kind = "minor"
	KindPatch Kind = "patch"
	KindBuild Kind = "build"
)

// Kinds lists the valid increment kinds, most significant first.
var Kinds = []Kind{KindMajor, KindMinor, KindPatch, KindBuild}

// Default is the version assumed when nothing usable is stored.
func Default() Version {
	return Version{Major: 1}
}

// ParseKind validates an increment kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", errors.Newf(errors.ErrUnknownIncrement,
		"unknown increment %q (want major, minor, patch or build)", s)
}

// Increment returns v bumped by kind. Every component below the bumped one
// resets to zero; the pre-release tag is carried over unchanged.
func Increment(v Version, kind Kind) (Version, error) {
	switch kind {
	case KindMajor:
		return Version{Major: v.Major + 1, Prerelease: v.Prerelease}, nil
	case KindMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1, Prerelease: v.Prerelease}, nil
	case KindPatch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1, Prerelease: v.Prerelease}, nil
	case KindBuild:
		v.Build++
		return v, nil
	default:
		return v, errors.Newf(errors.ErrUnknownIncrement, "unknown increment %q", kind)
	}
}

// String renders major.minor.patch, then .build when build > 0, then
// -prerelease when a tag is set.
func (v Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Build > 0 {
		fmt.Fprintf(&b, ".%d", v.Build)
	}
	if v.Prerelease != "" {
		b.WriteString("-")
		b.WriteString(v.Prerelease)
	}
	return b.String()
}

// Parse reads the String form back.
func Parse(s string) (Version, error) {
	var v Version
	core := strings.TrimSpace(s)
	if i := strings.IndexByte(core, '-'); i >= 0 {
		v.Prerelease = core[i+1:]
		core = core[:i]
		if v.Prerelease == "" {
			return Version{}, errors.Newf(errors.ErrInvalidInput, "empty pre-release tag in %q", s)
		}
	}

	parts := strings.Split(core, ".")
	if len(parts) != 3 && len(parts) != 4 {
		return Version{}, errors.Newf(errors.ErrInvalidInput,
			"version %q must look like major.minor.patch[.build][-tag]", s)
	}

	fields := []*uint{&v.Major, &v.Minor, &v.Patch, &v.Build}
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 0)
		if err != nil {
			return Version{}, errors.Wrapf(err, errors.ErrInvalidInput, "bad component %q in version %q", part, s)
		}
		*fields[i] = uint(n)
	}
	return v, nil
}
