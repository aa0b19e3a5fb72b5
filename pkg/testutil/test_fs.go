package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/luapack/pkg/filesystem"
	"github.com/arthur-debert/luapack/pkg/types"
	"github.com/spf13/afero"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// WriteTree creates files below root; keys are '/'-separated relative paths.
func WriteTree(t *testing.T, fsys types.FS, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir for %s: %v", rel, err)
		}
		if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

// ReadTree returns every regular file below root keyed by its '/'-separated
// relative path. A missing root yields an empty map.
func ReadTree(t *testing.T, fsys types.FS, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	if _, err := fsys.Stat(root); os.IsNotExist(err) {
		return files
	}
	err := fsys.Walk(root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		data, err := fsys.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("read tree %s: %v", root, err)
	}
	return files
}

// FailingFS fails WriteFile and AppendFile for paths containing any of the
// configured fragments; everything else goes to the wrapped filesystem.
type FailingFS struct {
	types.FS
	Fragments []string
	Err       error
}

// NewFailingFS wraps fsys so that writes matching fragments return err.
func NewFailingFS(fsys types.FS, err error, fragments ...string) *FailingFS {
	return &FailingFS{FS: fsys, Fragments: fragments, Err: err}
}

func (f *FailingFS) fails(name string) bool {
	for _, frag := range f.Fragments {
		if strings.Contains(filepath.ToSlash(name), frag) {
			return true
		}
	}
	return false
}

func (f *FailingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if f.fails(name) {
		return &fs.PathError{Op: "write", Path: name, Err: f.Err}
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FailingFS) AppendFile(name string, data []byte, perm fs.FileMode) error {
	if f.fails(name) {
		return &fs.PathError{Op: "append", Path: name, Err: f.Err}
	}
	return f.FS.AppendFile(name, data, perm)
}
