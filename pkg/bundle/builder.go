package bundle

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/luapack/pkg/config"
	"github.com/arthur-debert/luapack/pkg/errors"
	"github.com/arthur-debert/luapack/pkg/installer"
	"github.com/arthur-debert/luapack/pkg/logging"
	"github.com/arthur-debert/luapack/pkg/longstring"
	"github.com/arthur-debert/luapack/pkg/manifest"
	"github.com/arthur-debert/luapack/pkg/paths"
	"github.com/arthur-debert/luapack/pkg/semver"
	"github.com/arthur-debert/luapack/pkg/types"
	"github.com/rs/zerolog"
)

// Builder turns a source tree into an installer and manifest.
type Builder struct {
	FS     types.FS
	Config *config.Config
	Store  semver.Store

	// Kind overrides the configured increment when set.
	Kind semver.Kind
	// Version adjusts the pre-release tag.
	Version semver.Options
	// DryRun computes the next version and the outputs without writing
	// anything: no version store, outputs, source root or placeholder.
	DryRun bool
	// Generator identifies the tool in the manifest and installer header.
	Generator string
	// Now is the build clock; time.Now when nil.
	Now func() time.Time

	logger *zerolog.Logger
}

// Options configures NewBuilder.
type Options struct {
	Kind      semver.Kind
	Version   semver.Options
	DryRun    bool
	Generator string
	Now       func() time.Time
}

// NewBuilder creates a Builder over fsys using cfg's version store.
func NewBuilder(fsys types.FS, cfg *config.Config, opts Options) *Builder {
	return &Builder{
		FS:        fsys,
		Config:    cfg,
		Store:     semver.NewFileStore(fsys, cfg.VersionStorePath()),
		Kind:      opts.Kind,
		Version:   opts.Version,
		DryRun:    opts.DryRun,
		Generator: opts.Generator,
		Now:       opts.Now,
	}
}

// Result is a completed, not yet written, build.
type Result struct {
	Previous semver.Version
	Version  semver.Version
	Document *installer.Document
	Artifact []byte
	Manifest *manifest.Manifest
	Skipped  []Skipped
	// CreatedSourceRoot is set when the source directory had to be created.
	CreatedSourceRoot bool
	DryRun            bool
}

// Build runs the build up to, but not including, writing outputs.
func (b *Builder) Build() (*Result, error) {
	done := logging.LogOperationStart(*b.log(), "build")
	defer done()

	if err := b.Config.Validate(); err != nil {
		return nil, err
	}
	kind, err := b.kind()
	if err != nil {
		return nil, err
	}

	created, err := b.ensureSourceRoot()
	if err != nil {
		return nil, err
	}

	files, skipped, err := b.Enumerate()
	if err != nil {
		return nil, err
	}

	mappings, err := b.resolve(files)
	if err != nil {
		return nil, err
	}

	prev, next, err := b.advance(kind)
	if err != nil {
		return nil, err
	}
	b.log().Info().
		Str("from", prev.String()).
		Str("to", next.String()).
		Str("kind", string(kind)).
		Bool("dryRun", b.DryRun).
		Msg("Version advanced")

	now := b.now()
	meta := b.metadata(next, now)
	doc := installer.New(meta)

	m := &manifest.Manifest{
		Schema:      manifest.SchemaVersion,
		BuildID:     meta.BuildID,
		Version:     meta.Version,
		BuildNumber: meta.BuildNumber,
		BuildDate:   now,
		Generator:   meta.Generator,
		SourceRoot:  b.Config.SourceRoot(),
		EntryPoint:  b.Config.EntryPoint(),
	}

	replacer := b.placeholders(meta)
	for i, file := range files {
		content := longstring.NormalizeNewlines(replacer.Replace(string(file.Raw)))
		mapping := mappings[i]
		if err := doc.AddFile(file.RelPath, mapping.Destination, content); err != nil {
			return nil, err
		}
		m.Files = append(m.Files, manifest.NewFile(file.RelPath, mapping.Destination, []byte(content)))
		b.log().Debug().
			Str("source", file.RelPath).
			Str("dest", mapping.Destination).
			Int("size", len(content)).
			Bool("entryPoint", mapping.IsEntryPoint).
			Msg("Packed file")
	}
	if err := doc.AddDefaultConfigs(); err != nil {
		return nil, err
	}

	artifact, err := doc.Bytes()
	if err != nil {
		return nil, err
	}
	m.Installer = manifest.NewArtifact(b.Config.InstallerPath(), artifact)

	return &Result{
		Previous:          prev,
		Version:           next,
		Document:          doc,
		Artifact:          artifact,
		Manifest:          m,
		Skipped:           skipped,
		CreatedSourceRoot: created,
		DryRun:            b.DryRun,
	}, nil
}

// Write stores the installer and the manifest, replacing earlier ones.
func (b *Builder) Write(r *Result) error {
	if r.DryRun {
		return nil
	}
	dir := b.Config.OutputDir()
	if err := b.FS.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrArtifactWrite, "failed to create output directory %s", dir)
	}

	installerPath := b.Config.InstallerPath()
	if err := b.FS.WriteFile(installerPath, r.Artifact, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrArtifactWrite, "could not write installer file %s", installerPath)
	}

	data, err := r.Manifest.Encode(b.Config.Output.ManifestFormat)
	if err != nil {
		return err
	}
	manifestPath := b.Config.ManifestPath()
	if err := b.FS.MkdirAll(filepath.Dir(manifestPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to create %s", filepath.Dir(manifestPath))
	}
	if err := b.FS.WriteFile(manifestPath, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "could not write manifest %s", manifestPath)
	}

	b.log().Info().
		Str("installer", installerPath).
		Str("manifest", manifestPath).
		Int("files", len(r.Manifest.Files)).
		Int("bytes", len(r.Artifact)).
		Msg("Build outputs written")
	return nil
}

// Run builds and writes.
func (b *Builder) Run() (*Result, error) {
	r, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := b.Write(r); err != nil {
		return r, err
	}
	return r, nil
}

func (b *Builder) log() *zerolog.Logger {
	if b.logger == nil {
		l := logging.GetLogger("bundle")
		b.logger = &l
	}
	return b.logger
}

func (b *Builder) kind() (semver.Kind, error) {
	if b.Kind != "" {
		return semver.ParseKind(string(b.Kind))
	}
	return b.Config.IncrementKind()
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// resolve maps every file to its destination and checks the entry point.
func (b *Builder) resolve(files []SourceFile) ([]paths.Mapping, error) {
	mapper := paths.NewMapper(b.Config.Layout())
	for _, file := range files {
		if _, err := mapper.Add(file.RelPath); err != nil {
			return nil, err
		}
	}

	if !mapper.HasEntryPoint() {
		err := errors.Newf(errors.ErrEntryPointMissing,
			"main source file %q not found in %q", b.Config.EntryPoint(), b.Config.SourceRoot()).
			WithDetail("entryPoint", b.Config.EntryPoint())

		if b.DryRun {
			return nil, err
		}
		placeholder, perr := b.createPlaceholder()
		switch {
		case perr != nil:
			b.log().Warn().Err(perr).Msg("Could not create placeholder entry point")
		case placeholder != "":
			err.WithDetail("placeholder", placeholder)
			b.log().Info().Str("path", placeholder).Msg("Created a placeholder entry point. Run the build again.")
		}
		return nil, err
	}
	return mapper.Mappings(), nil
}

func (b *Builder) advance(kind semver.Kind) (semver.Version, semver.Version, error) {
	if !b.DryRun {
		return semver.Advance(b.Store, kind, b.Version)
	}
	prev, err := b.Store.Load()
	if err != nil {
		return semver.Version{}, semver.Version{}, err
	}
	next, err := semver.Next(prev, kind, b.Version)
	if err != nil {
		return semver.Version{}, semver.Version{}, err
	}
	return prev, next, nil
}

func (b *Builder) metadata(v semver.Version, now time.Time) installer.Metadata {
	layout := b.Config.Layout()
	generator := b.Generator
	if generator == "" {
		generator = "luapack"
	}
	return installer.Metadata{
		ProjectName: b.Config.Project.Name,
		Version:     v.String(),
		BuildNumber: v.Build,
		BuildDate:   now.Format(b.dateFormat()),
		BuildID:     manifest.NewBuildID(now),
		Generator:   generator,
		ProgramPath: layout.ProgramPath(),
		LibraryPath: layout.LibraryPath(),
		ConfigDir:   paths.ToSlash(b.Config.Target.ConfigDir),
		StartupFile: paths.ToSlash(b.Config.Target.StartupFile),
	}
}

func (b *Builder) dateFormat() string {
	if b.Config.Placeholders.DateFormat != "" {
		return b.Config.Placeholders.DateFormat
	}
	return time.RFC3339
}

// placeholders substitutes the three build tokens verbatim.
func (b *Builder) placeholders(meta installer.Metadata) *strings.Replacer {
	p := b.Config.Placeholders
	return strings.NewReplacer(
		p.BuildNumber, strconv.FormatUint(uint64(meta.BuildNumber), 10),
		p.BuildDate, meta.BuildDate,
		p.Version, meta.Version,
	)
}
