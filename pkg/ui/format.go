package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto picks terminal or text from the output's capabilities
	FormatAuto Format = iota
	// FormatTerminal renders colored reports and markdown
	FormatTerminal
	// FormatText renders plain text
	FormatText
	// FormatJSON renders machine-readable JSON
	FormatJSON
)

var formatNames = map[Format]string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
	FormatJSON:     "json",
}

// String returns the --output value for the format
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat parses the --output flag
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, fmt.Errorf("unknown output format %q (want auto, term, text or json)", s)
	}
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Detector resolves FormatAuto for a writer. Zero fields fall back to the
// process environment and the real terminal.
type Detector struct {
	Getenv     func(key string) string
	IsTerminal func(w io.Writer) bool
	Profile    func(w io.Writer) termenv.Profile
}

// DefaultDetector looks at the process environment and os.Stdout-style
// file descriptors.
var DefaultDetector = Detector{}

// Detect returns FormatTerminal or FormatText for w.
//
//   - NO_COLOR set: text
//   - CLICOLOR_FORCE set to anything but "0": terminal, even when piped
//   - not a terminal, or a terminal without color: text
func (d Detector) Detect(w io.Writer) Format {
	if d.getenv("NO_COLOR") != "" {
		return FormatText
	}
	if force := d.getenv("CLICOLOR_FORCE"); force != "" && force != "0" {
		return FormatTerminal
	}
	if !d.isTerminal(w) {
		return FormatText
	}
	if d.profile(w) == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

// Rich reports whether w should get colors and rendered markdown.
func (d Detector) Rich(w io.Writer) bool {
	return d.Detect(w) == FormatTerminal
}

func (d Detector) getenv(key string) string {
	if d.Getenv != nil {
		return d.Getenv(key)
	}
	return os.Getenv(key)
}

func (d Detector) isTerminal(w io.Writer) bool {
	if d.IsTerminal != nil {
		return d.IsTerminal(w)
	}
	f, ok := w.(*os.File)
	return ok && IsTerminal(f)
}

func (d Detector) profile(w io.Writer) termenv.Profile {
	if d.Profile != nil {
		return d.Profile(w)
	}
	return termenv.NewOutput(w).ColorProfile()
}
