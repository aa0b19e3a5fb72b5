// Package ui renders luapack's command results as colored terminal output,
// plain text or JSON.
package ui

import (
	"fmt"
	"io"
)

// Renderer is implemented once per output format.
type Renderer interface {
	// RenderBuild reports a finished build.
	RenderBuild(s *BuildSummary) error
	// RenderInstall reports an install into a target directory.
	RenderInstall(s *InstallSummary) error
	// RenderVersion reports the version store after show-version or bump.
	RenderVersion(s *VersionSummary) error
	// RenderGuide prints the next-steps guide for publishing the installer.
	RenderGuide(g Guide) error
	// RenderError reports err.
	RenderError(err error) error
	// RenderMessage prints msg.
	RenderMessage(msg string) error
}

// Options selects and configures a Renderer.
type Options struct {
	Format Format
	Output io.Writer
	// Detector resolves FormatAuto; DefaultDetector when nil.
	Detector *Detector
}

// NewRenderer creates a renderer for format writing to output.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	return New(Options{Format: format, Output: output})
}

// New creates the renderer described by opts.
func New(opts Options) (Renderer, error) {
	format := opts.Format
	if format == FormatAuto {
		detector := DefaultDetector
		if opts.Detector != nil {
			detector = *opts.Detector
		}
		format = detector.Detect(opts.Output)
	}

	switch format {
	case FormatTerminal:
		return &terminalRenderer{out: opts.Output}, nil
	case FormatText:
		return &textRenderer{out: opts.Output}, nil
	case FormatJSON:
		return newJSONRenderer(opts.Output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
