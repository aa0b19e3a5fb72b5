package ui

import (
	"github.com/arthur-debert/luapack/pkg/bundle"
	"github.com/arthur-debert/luapack/pkg/errors"
	"github.com/arthur-debert/luapack/pkg/install"
	"github.com/arthur-debert/luapack/pkg/semver"
)

// FileLine is one bundled file in a build report.
type FileLine struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Size        int    `json:"size"`
}

// BuildSummary is the view of a build.
type BuildSummary struct {
	Project       string     `json:"project"`
	Previous      string     `json:"previous_version"`
	Version       string     `json:"version"`
	Build         uint       `json:"build"`
	BuildID       string     `json:"build_id"`
	Installer     string     `json:"installer"`
	Manifest      string     `json:"manifest"`
	InstallerSize int        `json:"installer_size"`
	TotalSize     int        `json:"total_size"`
	Files         []FileLine `json:"files"`
	Skipped       []string   `json:"skipped,omitempty"`
	CreatedSource bool       `json:"created_source_root,omitempty"`
	DryRun        bool       `json:"dry_run"`
}

// NewBuildSummary summarizes r. installerPath and manifestPath are where the
// outputs were, or in a dry run would have been, written.
func NewBuildSummary(r *bundle.Result, installerPath, manifestPath string) *BuildSummary {
	s := &BuildSummary{
		Project:       r.Document.ProjectName,
		Previous:      r.Previous.String(),
		Version:       r.Version.String(),
		Build:         r.Version.Build,
		BuildID:       r.Document.BuildID,
		Installer:     installerPath,
		Manifest:      manifestPath,
		InstallerSize: len(r.Artifact),
		TotalSize:     r.Document.TotalSize(),
		CreatedSource: r.CreatedSourceRoot,
		DryRun:        r.DryRun,
	}
	for _, e := range r.Document.Entries {
		s.Files = append(s.Files, FileLine{Source: e.Source, Destination: e.Destination, Size: e.Size})
	}
	for _, sk := range r.Skipped {
		s.Skipped = append(s.Skipped, sk.Path)
	}
	return s
}

// InstallSummary is the view of an install into a target directory.
type InstallSummary struct {
	Target         string   `json:"target"`
	Summary        string   `json:"summary"`
	State          string   `json:"state"`
	Previous       string   `json:"previous_state"`
	Version        string   `json:"version"`
	Build          uint     `json:"build"`
	Deleted        []string `json:"deleted,omitempty"`
	Written        []string `json:"written,omitempty"`
	ConfigsCreated []string `json:"configs_created,omitempty"`
	ConfigsKept    []string `json:"configs_kept,omitempty"`
	StartupAdded   bool     `json:"startup_added"`
	FailedPath     string   `json:"failed_path,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// NewInstallSummary summarizes r for the target directory target.
func NewInstallSummary(r *install.Report, target string) *InstallSummary {
	s := &InstallSummary{
		Target:         target,
		Summary:        r.Summary(),
		State:          string(r.State),
		Previous:       string(r.Previous),
		Version:        r.Version,
		Build:          r.Build,
		Deleted:        r.Paths(install.StepDelete, install.StepDone),
		Written:        r.Paths(install.StepWrite, install.StepDone),
		ConfigsCreated: r.Paths(install.StepConfig, install.StepDone),
		ConfigsKept:    r.Paths(install.StepConfig, install.StepSkipped),
		StartupAdded:   r.Count(install.StepStartup, install.StepDone) > 0,
		FailedPath:     r.FailedPath,
	}
	if r.Err != nil {
		s.Error = r.Err.Error()
	}
	return s
}

// VersionSummary is the view of the version store.
type VersionSummary struct {
	Store    string         `json:"store"`
	Version  string         `json:"version"`
	Previous string         `json:"previous_version,omitempty"`
	Current  semver.Version `json:"components"`
}

// errorView is the JSON shape of an error.
type errorView struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func newErrorView(err error) errorView {
	return errorView{
		Error:   err.Error(),
		Code:    string(errors.GetErrorCode(err)),
		Details: errors.GetErrorDetails(err),
	}
}
