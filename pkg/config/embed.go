package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

//go:embed embedded/luapack.toml
var projectTemplate []byte

// ProjectTemplate returns the commented luapack.toml written by `luapack init`.
func ProjectTemplate() []byte {
	out := make([]byte, len(projectTemplate))
	copy(out, projectTemplate)
	return out
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
