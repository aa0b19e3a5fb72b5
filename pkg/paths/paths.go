package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/luapack/pkg/errors"
)

// Environment variable names
const (
	// EnvProject points at the project directory holding luapack.toml
	EnvProject = "LUAPACK_PROJECT"

	// EnvStateDir overrides the XDG state directory for luapack
	EnvStateDir = "LUAPACK_STATE_DIR"

	// EnvConfigDir overrides the XDG config directory for luapack
	EnvConfigDir = "LUAPACK_CONFIG_DIR"
)

const (
	// AppDirName is the directory name used below XDG roots
	AppDirName = "luapack"

	// LogFileName is the name of the log file
	LogFileName = "luapack.log"

	// ProjectConfigFile is the project configuration file name
	ProjectConfigFile = "luapack.toml"

	// HiddenProjectConfigFile is accepted when ProjectConfigFile is absent
	HiddenProjectConfigFile = ".luapack.toml"
)

// StateDir returns the directory where luapack keeps host-side state.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// ConfigDir returns the directory holding the user-wide configuration.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// LogFilePath returns the path of the append-only log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// ProjectRoot determines the project directory using the following priority:
// 1. explicit (the --project flag), if not empty
// 2. LUAPACK_PROJECT environment variable
// 3. Git repository root
// 4. Current working directory (fallback, reported through usedFallback)
func ProjectRoot(explicit string) (root string, usedFallback bool, err error) {
	if explicit != "" {
		root = expandHome(explicit)
	} else if env := os.Getenv(EnvProject); env != "" {
		root = expandHome(env)
	} else if gitRoot, gitErr := findGitRoot(); gitErr == nil {
		root = gitRoot
	} else {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return "", false, errors.Wrap(cwdErr, errors.ErrNotFound, "failed to get current directory")
		}
		root, usedFallback = cwd, true
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for %s", root)
	}
	return abs, usedFallback, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
