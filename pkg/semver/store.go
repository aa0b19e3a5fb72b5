package semver

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/arthur-debert/luapack/pkg/errors"
	"github.com/arthur-debert/luapack/pkg/logging"
	"github.com/arthur-debert/luapack/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
)

// Store persists the single live Version of a project. Load, Increment and
// Save are not atomic together; callers run one build at a time per store.
type Store interface {
	Load() (Version, error)
	Save(Version) error
}

const storeHeader = "# luapack build version. Bumped on every build; edit with `luapack bump`.\n"

// FileStore keeps the Version in a small TOML file.
type FileStore struct {
	fs   types.FS
	path string
}

// NewFileStore creates a store backed by path on fs.
func NewFileStore(fs types.FS, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the stored Version. A missing or unparseable file yields
// Default() with a warning; only an unreadable file is an error.
func (s *FileStore) Load() (Version, error) {
	logger := logging.GetLogger("semver")

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", s.path).Msg("No version store found, starting from default version")
			return Default(), nil
		}
		return Version{}, errors.Wrapf(err, errors.ErrVersionLoad, "failed to read version store %s", s.path)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		logger.Warn().Str("path", s.path).Msg("Version store is empty, starting from default version")
		return Default(), nil
	}

	var v Version
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&v); err != nil {
		logger.Warn().Err(err).Str("path", s.path).Msg("Version store is corrupt, falling back to default version")
		return Default(), nil
	}

	logger.Debug().Str("path", s.path).Str("version", v.String()).Msg("Loaded version")
	return v, nil
}

// Save overwrites the stored Version.
func (s *FileStore) Save(v Version) error {
	logger := logging.GetLogger("semver")

	data, err := toml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, errors.ErrVersionSave, "failed to encode version")
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrVersionSave, "failed to create %s", dir)
		}
	}

	if err := s.fs.WriteFile(s.path, append([]byte(storeHeader), data...), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrVersionSave, "failed to write version store %s", s.path)
	}

	logger.Debug().Str("path", s.path).Str("version", v.String()).Msg("Saved version")
	return nil
}

// Options adjust the pre-release tag while advancing.
type Options struct {
	// Prerelease replaces the tag when not empty.
	Prerelease string
	// Release clears the tag.
	Release bool
}

// Advance performs one Load -> Increment -> Save cycle and returns the
// previous and new versions. The new version is persisted before it is
// returned, so a failure later in the caller never reuses it.
func Advance(store Store, kind Kind, opts Options) (prev, next Version, err error) {
	prev, err = store.Load()
	if err != nil {
		return Version{}, Version{}, err
	}

	next, err = Next(prev, kind, opts)
	if err != nil {
		return Version{}, Version{}, err
	}

	if err := store.Save(next); err != nil {
		return Version{}, Version{}, err
	}
	return prev, next, nil
}

// Next computes the version that follows v without touching any store.
func Next(v Version, kind Kind, opts Options) (Version, error) {
	next, err := Increment(v, kind)
	if err != nil {
		return Version{}, err
	}
	switch {
	case opts.Release:
		next.Prerelease = ""
	case opts.Prerelease != "":
		next.Prerelease = opts.Prerelease
	}
	return next, nil
}
