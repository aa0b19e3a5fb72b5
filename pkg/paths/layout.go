package paths

import (
	"path"
	"strings"

	"github.com/arthur-debert/luapack/pkg/errors"
)

// Layout describes where bundled files land on the target.
type Layout struct {
	// ProgramsRoot is the directory receiving the entry point program.
	ProgramsRoot string
	// ProgramName is the file name the entry point is installed as.
	ProgramName string
	// LibraryRoot receives every other file, keeping sub-directories.
	LibraryRoot string
	// EntryPoint is the source-relative path of the designated entry point.
	EntryPoint string
}

// ToSlash normalizes both '\' and the host separator to '/'. Source trees
// authored on Windows keep their structure on the target.
func ToSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// CleanRel normalizes a source-relative path: '/' separators, no "."
// segments, no doubled or trailing slashes. "./main.lua" and "main.lua"
// name the same file.
func CleanRel(p string) string {
	return path.Clean(ToSlash(p))
}

// ProgramPath is the destination of the entry point.
func (l Layout) ProgramPath() string {
	return joinTarget(l.ProgramsRoot, l.ProgramName)
}

// LibraryPath is the library directory as written in the installer.
func (l Layout) LibraryPath() string {
	return ToSlash(l.LibraryRoot)
}

// IsEntryPoint reports whether relPath designates the entry point.
func (l Layout) IsEntryPoint(relPath string) bool {
	return CleanRel(relPath) == CleanRel(l.EntryPoint)
}

// Resolve maps a source-relative path to its destination on the target.
func (l Layout) Resolve(relPath string, isEntryPoint bool) string {
	if isEntryPoint {
		return l.ProgramPath()
	}
	return joinTarget(l.LibraryRoot, relPath)
}

// joinTarget joins with '/' without cleaning: the destination must stay
// textually traceable to the source path. ".." segments are kept and
// would surface as collisions rather than silently resolving elsewhere.
func joinTarget(root, rel string) string {
	root = strings.TrimSuffix(ToSlash(root), "/")
	rel = strings.TrimPrefix(ToSlash(rel), "/")
	if root == "" {
		return rel
	}
	return root + "/" + rel
}

// Mapping pairs a source path with its resolved destination.
type Mapping struct {
	Source       string
	Destination  string
	IsEntryPoint bool
}

// Mapper resolves a batch of source paths and rejects duplicate
// destinations. Every entry point resolves to the same program path, so a
// second entry point is reported as a duplicate too.
type Mapper struct {
	layout   Layout
	seen     map[string]string
	entry    string
	mappings []Mapping
}

// NewMapper creates a Mapper for layout.
func NewMapper(layout Layout) *Mapper {
	return &Mapper{layout: layout, seen: make(map[string]string)}
}

// Add resolves relPath and records it.
func (m *Mapper) Add(relPath string) (Mapping, error) {
	isEntry := m.layout.IsEntryPoint(relPath)
	dest := m.layout.Resolve(relPath, isEntry)

	if other, ok := m.seen[dest]; ok {
		return Mapping{}, errors.Newf(errors.ErrDuplicateDest,
			"%q and %q both resolve to %q", other, relPath, dest).
			WithDetail("destination", dest).
			WithDetail("sources", []string{other, relPath})
	}

	m.seen[dest] = relPath
	if isEntry {
		m.entry = relPath
	}
	mapping := Mapping{Source: relPath, Destination: dest, IsEntryPoint: isEntry}
	m.mappings = append(m.mappings, mapping)
	return mapping, nil
}

// HasEntryPoint reports whether the entry point has been added.
func (m *Mapper) HasEntryPoint() bool {
	return m.entry != ""
}

// Mappings returns the accepted mappings in insertion order.
func (m *Mapper) Mappings() []Mapping {
	out := make([]Mapping, len(m.mappings))
	copy(out, m.mappings)
	return out
}

// Dir returns the parent directory of a target path, or "" for a
// top-level file.
func Dir(target string) string {
	d := path.Dir(ToSlash(target))
	if d == "." || d == "/" {
		return ""
	}
	return d
}
