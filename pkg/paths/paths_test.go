// Test Type: Unit Test
// Description: Tests for host-side state paths and project discovery

package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvStateDir, dir)

	assert.Equal(t, dir, StateDir())
	assert.Equal(t, filepath.Join(dir, LogFileName), LogFilePath())
}

func TestConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	assert.Equal(t, dir, ConfigDir())
}

func TestStateDirDefaultEndsWithAppDir(t *testing.T) {
	t.Setenv(EnvStateDir, "")
	assert.Equal(t, AppDirName, filepath.Base(StateDir()))
}

func TestProjectRootExplicit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvProject, "/should/not/be/used")

	root, fallback, err := ProjectRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, root)
	assert.False(t, fallback)
}

func TestProjectRootFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvProject, dir)

	root, fallback, err := ProjectRoot("")
	require.NoError(t, err)
	assert.Equal(t, dir, root)
	assert.False(t, fallback)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "projects"), expandHome("~/projects"))
	assert.Equal(t, home, expandHome("~"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
}
