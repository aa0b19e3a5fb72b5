package testutil

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadTree(t *testing.T) {
	fs := NewTestFS()
	files := map[string]string{
		"main.lua":        "print('hi')",
		"util/helper.lua": "return {}",
	}

	WriteTree(t, fs, "/src", files)
	assert.Equal(t, files, ReadTree(t, fs, "/src"))
	assert.Empty(t, ReadTree(t, fs, "/missing"))
}

func TestFailingFS(t *testing.T) {
	boom := stderrors.New("disk full")
	fs := NewFailingFS(NewTestFS(), boom, "lib/")

	require.NoError(t, fs.WriteFile("/ok.lua", []byte("x"), 0644))

	err := fs.WriteFile("/lib/a.lua", []byte("x"), 0644)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	err = fs.AppendFile("/lib/b.lua", []byte("x"), 0644)
	assert.ErrorIs(t, err, boom)
}
