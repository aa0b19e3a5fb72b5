package install

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/luapack/pkg/errors"
	"github.com/arthur-debert/luapack/pkg/installer"
	"github.com/arthur-debert/luapack/pkg/logging"
	"github.com/arthur-debert/luapack/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures an Installer.
type Options struct {
	// FS is rooted at the target.
	FS     types.FS
	Logger *zerolog.Logger
}

// Installer runs the install sequence against one target.
type Installer struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates an Installer.
func New(opts Options) *Installer {
	logger := logging.GetLogger("install")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Installer{fs: opts.FS, logger: logger}
}

// Detect reports whether the program of doc is present on the target.
func (i *Installer) Detect(doc *installer.Document) State {
	if _, err := i.fs.Stat(targetPath(doc.ProgramPath)); err == nil {
		return StateInstalled
	}
	return StateNotInstalled
}

// Apply installs doc. The returned report is never nil; on failure it is
// in StateFailed and the error is also returned.
func (i *Installer) Apply(doc *installer.Document) (*Report, error) {
	r := &Report{
		Project:  doc.ProjectName,
		Version:  doc.Version,
		Build:    doc.BuildNumber,
		Previous: i.Detect(doc),
	}
	i.transition(r, StateInstalling)

	steps := []func(*installer.Document, *Report) error{
		i.removePrevious,
		i.writeFiles,
		i.bootstrapConfigs,
		i.registerStartup,
	}
	for _, step := range steps {
		if err := step(doc, r); err != nil {
			r.Err = err
			r.FailedPath, _ = errors.GetErrorDetails(err)["path"].(string)
			i.transition(r, StateFailed)
			i.logger.Error().Err(err).Str("path", r.FailedPath).Msg("Install failed, partial files left in place")
			return r, err
		}
	}

	i.transition(r, StateInstalled)
	i.logger.Info().
		Str("version", r.Version).
		Uint("build", r.Build).
		Int("files", r.Count(StepWrite, StepDone)).
		Msg(r.Summary())
	return r, nil
}

func (i *Installer) transition(r *Report, to State) {
	i.logger.Debug().Str("from", string(r.State)).Str("to", string(to)).Msg("Install state")
	r.State = to
}

// removePrevious deletes the old program and library directory.
func (i *Installer) removePrevious(doc *installer.Document, r *Report) error {
	for _, p := range []string{doc.ProgramPath, doc.LibraryPath} {
		path := targetPath(p)
		if _, err := i.fs.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := i.fs.RemoveAll(path); err != nil {
			r.add(Step{Kind: StepDelete, Path: p, Status: StepFailed, Err: err})
			return errors.Wrapf(err, errors.ErrInstallDelete, "could not delete %s", p).WithDetail("path", p)
		}
		i.logger.Debug().Str("path", p).Msg("Deleted previous version")
		r.add(Step{Kind: StepDelete, Path: p, Status: StepDone})
	}
	return nil
}

func (i *Installer) writeFiles(doc *installer.Document, r *Report) error {
	for _, e := range doc.Entries {
		content, err := e.Literal.Unwrap()
		if err != nil {
			r.add(Step{Kind: StepWrite, Path: e.Destination, Status: StepFailed, Err: err})
			return errors.Wrap(err, errors.ErrInstallWrite, "corrupt entry").WithDetail("path", e.Destination)
		}
		if err := i.write(e.Destination, content); err != nil {
			r.add(Step{Kind: StepWrite, Path: e.Destination, Status: StepFailed, Err: err})
			return err
		}
		i.logger.Trace().Str("path", e.Destination).Int("size", e.Size).Msg("Wrote file")
		r.add(Step{Kind: StepWrite, Path: e.Destination, Status: StepDone})
	}
	return nil
}

// bootstrapConfigs creates missing configuration files. Existing ones
// belong to the operator and are never touched.
func (i *Installer) bootstrapConfigs(doc *installer.Document, r *Report) error {
	for _, c := range doc.Configs {
		if _, err := i.fs.Stat(targetPath(c.Path)); err == nil {
			r.add(Step{Kind: StepConfig, Path: c.Path, Status: StepSkipped, Message: "Config file already exists"})
			continue
		}
		content, err := c.Literal.Unwrap()
		if err != nil {
			r.add(Step{Kind: StepConfig, Path: c.Path, Status: StepFailed, Err: err})
			return errors.Wrap(err, errors.ErrInstallWrite, "corrupt config default").WithDetail("path", c.Path)
		}
		if err := i.write(c.Path, content); err != nil {
			r.add(Step{Kind: StepConfig, Path: c.Path, Status: StepFailed, Err: err})
			return err
		}
		r.add(Step{Kind: StepConfig, Path: c.Path, Status: StepDone, Message: "Created default config"})
	}
	return nil
}

// registerStartup appends the startup line unless the startup file already
// mentions the program.
func (i *Installer) registerStartup(doc *installer.Document, r *Report) error {
	p := doc.StartupFile
	path := targetPath(p)

	current := ""
	if data, err := i.fs.ReadFile(path); err == nil {
		current = string(data)
	} else if !os.IsNotExist(err) {
		r.add(Step{Kind: StepStartup, Path: p, Status: StepFailed, Err: err})
		return errors.Wrapf(err, errors.ErrInstallWrite, "could not read %s", p).WithDetail("path", p)
	}

	if strings.Contains(current, doc.ProgramPath) {
		r.add(Step{Kind: StepStartup, Path: p, Status: StepSkipped, Message: "Already in startup file"})
		return nil
	}

	line := doc.StartupLine() + "\n"
	if current != "" && !strings.HasSuffix(current, "\n") {
		line = "\n" + line
	}
	if err := i.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		r.add(Step{Kind: StepStartup, Path: p, Status: StepFailed, Err: err})
		return errors.Wrapf(err, errors.ErrInstallWrite, "could not create directory for %s", p).WithDetail("path", p)
	}
	if err := i.fs.AppendFile(path, []byte(line), 0644); err != nil {
		r.add(Step{Kind: StepStartup, Path: p, Status: StepFailed, Err: err})
		return errors.Wrapf(err, errors.ErrInstallWrite, "could not update %s", p).WithDetail("path", p)
	}
	r.add(Step{Kind: StepStartup, Path: p, Status: StepDone, Message: "Added to startup file"})
	return nil
}

func (i *Installer) write(p, content string) error {
	path := targetPath(p)
	if err := i.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrInstallWrite, "could not create directory for %s", p).WithDetail("path", p)
	}
	if err := i.fs.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrInstallWrite, "could not write %s", p).WithDetail("path", p)
	}
	return nil
}

// targetPath maps a target path onto the rooted filesystem. Target paths
// are relative to the target root whether or not they carry a leading '/'.
func targetPath(p string) string {
	return filepath.FromSlash("/" + strings.TrimLeft(p, "/"))
}
