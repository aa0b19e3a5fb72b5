package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/luapack/pkg/errors"
	"github.com/arthur-debert/luapack/pkg/logging"
	"github.com/arthur-debert/luapack/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides: LUAPACK_SOURCE_ENTRY_POINT sets
// source.entry_point.
const EnvPrefix = "LUAPACK_"

// GlobalConfigFile is the user-wide configuration file name.
const GlobalConfigFile = "config.toml"

// reservedEnv are LUAPACK_ variables that locate things rather than
// configure them.
var reservedEnv = map[string]bool{
	paths.EnvProject:   true,
	paths.EnvStateDir:  true,
	paths.EnvConfigDir: true,
}

// Load merges the configuration layers for the project in projectDir.
// overrides holds dotted keys from command-line flags and wins over
// everything else.
func Load(projectDir string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Load system defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Load user-wide config if it exists
	global := filepath.Join(paths.ConfigDir(), GlobalConfigFile)
	if err := loadFileIfExists(k, global); err != nil {
		return nil, err
	}

	// 3. Load project config if it exists
	projectFile := ProjectFile(projectDir)
	if projectFile != "" {
		if err := loadFileIfExists(k, projectFile); err != nil {
			return nil, err
		}
	}

	// 4. Load env vars
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 5. Flag overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flag overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	cfg.ProjectDir = projectDir

	logger.Debug().
		Str("projectDir", projectDir).
		Str("projectFile", projectFile).
		Str("sourceRoot", cfg.Source.Root).
		Str("entryPoint", cfg.Source.EntryPoint).
		Msg("Configuration loaded")

	return &cfg, nil
}

// ProjectFile returns the project configuration file in dir, or "" when
// there is none.
func ProjectFile(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range []string{paths.ProjectConfigFile, paths.HiddenProjectConfigFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
	}
	return nil
}

// envKey maps LUAPACK_SECTION_SOME_KEY to section.some_key. Variables that
// do not name a section key are ignored.
func envKey(s string) string {
	if reservedEnv[s] {
		return ""
	}
	rest := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, ok := strings.Cut(rest, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + key
}
