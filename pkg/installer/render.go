package installer

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/arthur-debert/luapack/pkg/errors"
)

//go:embed templates/installer.lua.tmpl
var installerTemplate string

var tmpl = template.Must(template.New("installer").
	Funcs(template.FuncMap{"lua": luaQuote}).
	Parse(installerTemplate))

// Render writes the installer script for d to w.
func (d *Document) Render(w io.Writer) error {
	data := struct {
		*Document
		StartupLine string
	}{
		Document:    d,
		StartupLine: d.StartupLine(),
	}
	if err := tmpl.Execute(w, data); err != nil {
		return errors.Wrap(err, errors.ErrTemplateRender, "failed to render installer")
	}
	return nil
}

// Bytes renders d into memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// luaQuote renders s as a double-quoted Lua string. Control bytes use
// decimal escapes, which every Lua version reads; other bytes pass through.
func luaQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\%03d`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
