package ui

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed guide.md
var guideTemplate string

var guideTmpl = template.Must(template.New("guide").Parse(guideTemplate))

// Guide fills the next-steps guide.
type Guide struct {
	Project       string
	InstallerName string
	OutputDir     string
	ConfigDir     string
}

// Markdown renders the guide as markdown.
func (g Guide) Markdown() (string, error) {
	var buf bytes.Buffer
	if err := guideTmpl.Execute(&buf, g); err != nil {
		return "", err
	}
	return buf.String(), nil
}
