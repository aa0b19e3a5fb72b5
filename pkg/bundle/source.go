package bundle

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/luapack/pkg/errors"
	"github.com/arthur-debert/luapack/pkg/paths"
)

// SourceFile is one file read from the source tree.
type SourceFile struct {
	// RelPath is relative to the source root and always '/'-separated.
	RelPath string
	Raw     []byte
}

// Skipped records a file left out of the build.
type Skipped struct {
	Path string
	Err  error
}

// Enumerate reads every matching file below the source root in lexical
// order of relative path.
func (b *Builder) Enumerate() ([]SourceFile, []Skipped, error) {
	root := b.Config.SourceRoot()
	var files []SourceFile
	var skipped []Skipped

	if b.DryRun {
		if _, err := b.FS.Stat(root); os.IsNotExist(err) {
			return nil, nil, nil
		}
	}

	err := b.FS.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			b.log().Warn().Err(err).Str("path", path).Msg("Could not read source entry, skipping")
			skipped = append(skipped, Skipped{Path: path, Err: err})
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !info.Mode().IsRegular() || !b.Config.HasExtension(info.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = paths.ToSlash(filepath.ToSlash(rel))

		raw, err := b.FS.ReadFile(path)
		if err != nil {
			b.log().Warn().Err(err).Str("path", path).Msg("Could not read source file, skipping")
			skipped = append(skipped, Skipped{Path: path, Err: err})
			return nil
		}

		b.log().Trace().Str("path", rel).Int("size", len(raw)).Msg("Found source file")
		files = append(files, SourceFile{RelPath: rel, Raw: raw})
		return nil
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrSourceWalk, "failed to enumerate %s", root)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, skipped, nil
}

// ensureSourceRoot creates the source root when missing so a new project
// has somewhere to put files. A dry run only reports it.
func (b *Builder) ensureSourceRoot() (bool, error) {
	root := b.Config.SourceRoot()
	if _, err := b.FS.Stat(root); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, errors.Wrapf(err, errors.ErrSourceWalk, "failed to stat %s", root)
	}
	if b.DryRun {
		b.log().Info().Str("path", root).Msg("Source directory is missing, dry run leaves it alone")
		return false, nil
	}
	if err := b.FS.MkdirAll(root, 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrSourceWalk, "failed to create %s", root)
	}
	b.log().Info().Str("path", root).Msg("Created source directory. Place your Lua source files here.")
	return true, nil
}

// PlaceholderEntryPoint is written when the entry point is missing.
const PlaceholderEntryPoint = "-- Placeholder main.lua\nprint('Hello from placeholder!')\n"

// createPlaceholder writes PlaceholderEntryPoint at the entry point path
// unless a file is already there. It returns the path when it wrote one.
func (b *Builder) createPlaceholder() (string, error) {
	path := filepath.Join(b.Config.SourceRoot(), filepath.FromSlash(b.Config.EntryPoint()))
	if _, err := b.FS.Stat(path); err == nil {
		return "", nil
	}
	if err := b.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := b.FS.WriteFile(path, []byte(PlaceholderEntryPoint), 0644); err != nil {
		return "", err
	}
	return path, nil
}
