// Test Type: Integration Test
// Description: Configuration layering, path resolution and validation

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/luapack/pkg/config"
	"github.com/arthur-debert/luapack/pkg/errors"
	"github.com/arthur-debert/luapack/pkg/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user-wide config dir at an empty temp dir so the
// developer's own configuration cannot leak into tests.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("LUAPACK_CONFIG_DIR", t.TempDir())
	return t.TempDir()
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := config.Load(dir, nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "src", cfg.Source.Root)
	assert.Equal(t, "main.lua", cfg.Source.EntryPoint)
	assert.Equal(t, []string{".lua"}, cfg.Source.Extensions)
	assert.Equal(t, "programs", cfg.Target.ProgramsRoot)
	assert.Equal(t, "jarvis", cfg.Target.ProgramName)
	assert.Equal(t, "programs/lib/jarvis", cfg.Target.LibraryRoot)
	assert.Equal(t, "/etc/jarvis", cfg.Target.ConfigDir)
	assert.Equal(t, "startup.lua", cfg.Target.StartupFile)
	assert.Equal(t, "json", cfg.Output.ManifestFormat)
	assert.Equal(t, "@BUILD_NUMBER@", cfg.Placeholders.BuildNumber)

	kind, err := cfg.IncrementKind()
	require.NoError(t, err)
	assert.Equal(t, semver.KindBuild, kind)

	assert.Equal(t, filepath.Join(dir, "src"), cfg.SourceRoot())
	assert.Equal(t, filepath.Join(dir, "dist", "install.lua"), cfg.InstallerPath())
	assert.Equal(t, filepath.Join(dir, "dist", "manifest.json"), cfg.ManifestPath())
	assert.Equal(t, filepath.Join(dir, "version.toml"), cfg.VersionStorePath())

	layout := cfg.Layout()
	assert.Equal(t, "programs/jarvis", layout.ProgramPath())
}

func TestLoadProjectFile(t *testing.T) {
	dir := isolate(t)
	project := `
[source]
root = "lua"
entry_point = "app/init.lua"

[target]
program_name = "butler"

[output]
manifest_format = "yaml"
manifest = "manifest.yaml"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "luapack.toml"), []byte(project), 0644))

	cfg, err := config.Load(dir, nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "lua", cfg.Source.Root)
	assert.Equal(t, "app/init.lua", cfg.Source.EntryPoint)
	assert.Equal(t, "butler", cfg.Target.ProgramName)
	assert.Equal(t, "programs", cfg.Target.ProgramsRoot, "untouched keys keep defaults")
	assert.Equal(t, "yaml", cfg.Output.ManifestFormat)
}

func TestLoadHiddenProjectFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".luapack.toml"), []byte("[target]\nprogram_name = \"hidden\"\n"), 0644))

	cfg, err := config.Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "hidden", cfg.Target.ProgramName)
	assert.Equal(t, filepath.Join(dir, ".luapack.toml"), config.ProjectFile(dir))
}

func TestLoadGlobalConfig(t *testing.T) {
	globalDir := t.TempDir()
	t.Setenv("LUAPACK_CONFIG_DIR", globalDir)
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config.toml"), []byte("[project]\nname = \"Global\"\n"), 0644))

	cfg, err := config.Load(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Global", cfg.Project.Name)
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "luapack.toml"), []byte("[target]\nprogram_name = \"file\"\nconfig_dir = \"/etc/file\"\n"), 0644))
	t.Setenv("LUAPACK_TARGET_PROGRAM_NAME", "env")
	t.Setenv("LUAPACK_SOURCE_EXTENSIONS", ".lua,.txt")

	cfg, err := config.Load(dir, map[string]interface{}{"target.program_name": "flag"})
	require.NoError(t, err)

	assert.Equal(t, "flag", cfg.Target.ProgramName, "flags beat env")
	assert.Equal(t, "/etc/file", cfg.Target.ConfigDir, "file beats defaults")
	assert.Equal(t, []string{".lua", ".txt"}, cfg.Source.Extensions)
}

func TestLoadIgnoresLocatorEnv(t *testing.T) {
	dir := isolate(t)
	t.Setenv("LUAPACK_PROJECT", dir)
	t.Setenv("LUAPACK_STATE_DIR", t.TempDir())

	cfg, err := config.Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "Jarvis", cfg.Project.Name)
}

func TestLoadInvalidProjectFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "luapack.toml"), []byte("[source\nroot = "), 0644))

	_, err := config.Load(dir, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty_program_name", func(c *config.Config) { c.Target.ProgramName = "" }},
		{"program_name_with_slash", func(c *config.Config) { c.Target.ProgramName = "bin/jarvis" }},
		{"absolute_entry_point", func(c *config.Config) { c.Source.EntryPoint = "/main.lua" }},
		{"escaping_entry_point", func(c *config.Config) { c.Source.EntryPoint = "../main.lua" }},
		{"escaping_after_clean", func(c *config.Config) { c.Source.EntryPoint = "app/../../main.lua" }},
		{"entry_point_is_root", func(c *config.Config) { c.Source.EntryPoint = "./" }},
		{"entry_point_wrong_extension", func(c *config.Config) { c.Source.EntryPoint = "main.py" }},
		{"unknown_increment", func(c *config.Config) { c.Version.Increment = "epoch" }},
		{"unknown_manifest_format", func(c *config.Config) { c.Output.ManifestFormat = "xml" }},
		{"duplicate_tokens", func(c *config.Config) { c.Placeholders.Version = c.Placeholders.BuildDate }},
		{"blank_token", func(c *config.Config) { c.Placeholders.BuildNumber = "  " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load(isolate(t), nil)
			require.NoError(t, err)

			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
			assert.True(t, errors.IsConfigurationError(err))
		})
	}
}

func TestValidateReportsFirstEmptyKey(t *testing.T) {
	cfg, err := config.Load(isolate(t), nil)
	require.NoError(t, err)
	cfg.Output.Manifest = ""
	cfg.Target.ProgramName = ""
	cfg.Source.Root = ""

	for i := 0; i < 20; i++ {
		err = cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, "source.root", errors.GetErrorDetails(err)["key"])
	}
}

func TestEntryPointIsCleaned(t *testing.T) {
	cfg, err := config.Load(isolate(t), nil)
	require.NoError(t, err)

	for _, entry := range []string{"./main.lua", "main.lua", ".//main.lua", `.\main.lua`} {
		cfg.Source.EntryPoint = entry
		assert.Equal(t, "main.lua", cfg.EntryPoint(), entry)
		assert.Equal(t, "main.lua", cfg.Layout().EntryPoint, entry)
		assert.NoError(t, cfg.Validate(), entry)
	}

	cfg.Source.EntryPoint = "app/./init.lua"
	assert.Equal(t, "app/init.lua", cfg.EntryPoint())
}

func TestHasExtension(t *testing.T) {
	cfg := &config.Config{Source: config.Source{Extensions: []string{".lua"}}}
	assert.True(t, cfg.HasExtension("main.lua"))
	assert.True(t, cfg.HasExtension("MAIN.LUA"))
	assert.False(t, cfg.HasExtension("README.md"))
	assert.False(t, cfg.HasExtension("lua"))

	cfg.Source.Extensions = nil
	assert.True(t, cfg.HasExtension("README.md"))
}

func TestProjectTemplateParses(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "luapack.toml"), config.ProjectTemplate(), 0644))

	cfg, err := config.Load(dir, nil)
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}
