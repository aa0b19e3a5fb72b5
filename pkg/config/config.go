package config

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/luapack/pkg/errors"
	"github.com/arthur-debert/luapack/pkg/paths"
	"github.com/arthur-debert/luapack/pkg/semver"
)

// Config is the fully merged luapack configuration.
type Config struct {
	Project      Project      `koanf:"project"`
	Source       Source       `koanf:"source"`
	Target       Target       `koanf:"target"`
	Output       Output       `koanf:"output"`
	Version      Version      `koanf:"version"`
	Placeholders Placeholders `koanf:"placeholders"`

	// ProjectDir anchors the relative paths below. Set by Load.
	ProjectDir string `koanf:"-"`
}

type Project struct {
	Name string `koanf:"name"`
}

type Source struct {
	Root       string   `koanf:"root"`
	EntryPoint string   `koanf:"entry_point"`
	Extensions []string `koanf:"extensions"`
}

type Target struct {
	ProgramsRoot string `koanf:"programs_root"`
	ProgramName  string `koanf:"program_name"`
	LibraryRoot  string `koanf:"library_root"`
	ConfigDir    string `koanf:"config_dir"`
	StartupFile  string `koanf:"startup_file"`
}

type Output struct {
	Dir            string `koanf:"dir"`
	Installer      string `koanf:"installer"`
	Manifest       string `koanf:"manifest"`
	ManifestFormat string `koanf:"manifest_format"`
}

type Version struct {
	Store     string `koanf:"store"`
	Increment string `koanf:"increment"`
}

type Placeholders struct {
	BuildNumber string `koanf:"build_number"`
	BuildDate   string `koanf:"build_date"`
	Version     string `koanf:"version"`
	DateFormat  string `koanf:"date_format"`
}

// Manifest formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Layout returns the target path layout.
func (c *Config) Layout() paths.Layout {
	return paths.Layout{
		ProgramsRoot: c.Target.ProgramsRoot,
		ProgramName:  c.Target.ProgramName,
		LibraryRoot:  c.Target.LibraryRoot,
		EntryPoint:   c.EntryPoint(),
	}
}

// EntryPoint is the cleaned, '/'-separated entry point path relative to
// the source root.
func (c *Config) EntryPoint() string {
	return paths.CleanRel(c.Source.EntryPoint)
}

// SourceRoot is the absolute source directory.
func (c *Config) SourceRoot() string {
	return c.resolve(c.Source.Root)
}

// OutputDir is the absolute output directory.
func (c *Config) OutputDir() string {
	return c.resolve(c.Output.Dir)
}

// InstallerPath is the absolute path of the generated installer.
func (c *Config) InstallerPath() string {
	return filepath.Join(c.OutputDir(), c.Output.Installer)
}

// ManifestPath is the absolute path of the build manifest.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.OutputDir(), c.Output.Manifest)
}

// VersionStorePath is the absolute path of the version store.
func (c *Config) VersionStorePath() string {
	return c.resolve(c.Version.Store)
}

// IncrementKind returns the configured increment kind.
func (c *Config) IncrementKind() (semver.Kind, error) {
	return semver.ParseKind(c.Version.Increment)
}

// HasExtension reports whether name carries one of the source extensions.
// An empty extension list accepts every file.
func (c *Config) HasExtension(name string) bool {
	if len(c.Source.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range c.Source.Extensions {
		if strings.ToLower(want) == ext {
			return true
		}
	}
	return false
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.ProjectDir == "" {
		return p
	}
	return filepath.Join(c.ProjectDir, p)
}

// Validate checks the values a build depends on.
func (c *Config) Validate() error {
	required := []struct{ key, value string }{
		{"source.root", c.Source.Root},
		{"source.entry_point", c.Source.EntryPoint},
		{"target.programs_root", c.Target.ProgramsRoot},
		{"target.program_name", c.Target.ProgramName},
		{"target.library_root", c.Target.LibraryRoot},
		{"target.config_dir", c.Target.ConfigDir},
		{"target.startup_file", c.Target.StartupFile},
		{"output.dir", c.Output.Dir},
		{"output.installer", c.Output.Installer},
		{"output.manifest", c.Output.Manifest},
		{"version.store", c.Version.Store},
		{"placeholders.build_number", c.Placeholders.BuildNumber},
		{"placeholders.build_date", c.Placeholders.BuildDate},
		{"placeholders.version", c.Placeholders.Version},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.Newf(errors.ErrConfigValid, "%s must not be empty", r.key).WithDetail("key", r.key)
		}
	}

	entry := c.EntryPoint()
	if strings.HasPrefix(entry, "/") || entry == "." || entry == ".." || strings.HasPrefix(entry, "../") {
		return errors.Newf(errors.ErrConfigValid,
			"source.entry_point %q must be a file below source.root", c.Source.EntryPoint).
			WithDetail("key", "source.entry_point")
	}
	if !c.HasExtension(entry) {
		return errors.Newf(errors.ErrConfigValid,
			"source.entry_point %q does not match source.extensions %v", c.Source.EntryPoint, c.Source.Extensions).
			WithDetail("key", "source.entry_point")
	}
	if strings.Contains(c.Target.ProgramName, "/") || strings.Contains(c.Target.ProgramName, `\`) {
		return errors.Newf(errors.ErrConfigValid,
			"target.program_name %q must be a file name", c.Target.ProgramName).
			WithDetail("key", "target.program_name")
	}

	if _, err := c.IncrementKind(); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid version.increment").
			WithDetail("key", "version.increment")
	}

	switch c.Output.ManifestFormat {
	case FormatJSON, FormatYAML:
	default:
		return errors.Newf(errors.ErrConfigValid,
			"output.manifest_format %q must be json or yaml", c.Output.ManifestFormat).
			WithDetail("key", "output.manifest_format")
	}

	tokens := map[string]string{}
	for key, token := range map[string]string{
		"build_number": c.Placeholders.BuildNumber,
		"build_date":   c.Placeholders.BuildDate,
		"version":      c.Placeholders.Version,
	} {
		if other, ok := tokens[token]; ok {
			return errors.Newf(errors.ErrConfigValid,
				"placeholders.%s and placeholders.%s use the same token %q", other, key, token).
				WithDetail("key", "placeholders."+key)
		}
		tokens[token] = key
	}

	return nil
}
