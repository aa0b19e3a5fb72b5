package ui

import (
	"encoding/json"
	"io"
)

// jsonRenderer writes one indented JSON document per call.
type jsonRenderer struct {
	encoder *json.Encoder
}

func newJSONRenderer(output io.Writer) *jsonRenderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &jsonRenderer{encoder: encoder}
}

func (r *jsonRenderer) RenderBuild(s *BuildSummary) error {
	return r.encoder.Encode(s)
}

func (r *jsonRenderer) RenderInstall(s *InstallSummary) error {
	return r.encoder.Encode(s)
}

func (r *jsonRenderer) RenderVersion(s *VersionSummary) error {
	return r.encoder.Encode(s)
}

func (r *jsonRenderer) RenderGuide(g Guide) error {
	md, err := g.Markdown()
	if err != nil {
		return err
	}
	return r.encoder.Encode(map[string]string{"guide": md})
}

func (r *jsonRenderer) RenderError(err error) error {
	return r.encoder.Encode(newErrorView(err))
}

func (r *jsonRenderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
