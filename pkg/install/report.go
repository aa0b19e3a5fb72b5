package install

import (
	"fmt"
)

// State is where an install is in its lifecycle.
type State string

const (
	StateNotInstalled State = "not_installed"
	StateInstalling   State = "installing"
	StateInstalled    State = "installed"
	StateFailed       State = "failed"
)

// StepKind names one kind of filesystem step.
type StepKind string

const (
	StepDelete  StepKind = "delete"
	StepWrite   StepKind = "write"
	StepConfig  StepKind = "config"
	StepStartup StepKind = "startup"
)

// StepStatus is the outcome of a step.
type StepStatus string

const (
	StepDone    StepStatus = "done"
	StepSkipped StepStatus = "skipped"
	StepFailed  StepStatus = "failed"
)

// Step records one filesystem step of an install.
type Step struct {
	Kind    StepKind
	Path    string
	Status  StepStatus
	Message string
	Err     error
}

// Report is the outcome of one install run.
type Report struct {
	Project string
	Version string
	Build   uint
	// Previous is the state found before the run started.
	Previous State
	State    State
	Steps    []Step

	FailedPath string
	Err        error
}

// Count returns how many steps of kind ended with status.
func (r *Report) Count(kind StepKind, status StepStatus) int {
	n := 0
	for _, s := range r.Steps {
		if s.Kind == kind && s.Status == status {
			n++
		}
	}
	return n
}

// Paths returns the paths of steps of kind that ended with status.
func (r *Report) Paths(kind StepKind, status StepStatus) []string {
	var out []string
	for _, s := range r.Steps {
		if s.Kind == kind && s.Status == status {
			out = append(out, s.Path)
		}
	}
	return out
}

// Summary is a one-line description of the outcome.
func (r *Report) Summary() string {
	switch r.State {
	case StateInstalled:
		return fmt.Sprintf("%s %s (build %d) installed", r.Project, r.Version, r.Build)
	case StateFailed:
		return fmt.Sprintf("%s %s (build %d) failed at %s: %v", r.Project, r.Version, r.Build, r.FailedPath, r.Err)
	default:
		return fmt.Sprintf("%s %s (build %d) %s", r.Project, r.Version, r.Build, r.State)
	}
}

func (r *Report) add(step Step) {
	r.Steps = append(r.Steps, step)
}
