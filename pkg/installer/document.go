package installer

import (
	"github.com/arthur-debert/luapack/pkg/errors"
	"github.com/arthur-debert/luapack/pkg/longstring"
	"github.com/arthur-debert/luapack/pkg/paths"
)

// Metadata parameterizes the install routine.
type Metadata struct {
	ProjectName string
	Version     string
	BuildNumber uint
	BuildDate   string
	BuildID     string
	Generator   string

	ProgramPath string
	LibraryPath string
	ConfigDir   string
	StartupFile string
}

// Entry is one bundled file.
type Entry struct {
	Source      string
	Destination string
	Literal     longstring.Literal
	Size        int
}

// ConfigDefault is a configuration file created on the target only when
// absent.
type ConfigDefault struct {
	Name    string
	Path    string
	Literal longstring.Literal
}

// Document is the installer before serialization.
type Document struct {
	Metadata
	Entries []Entry
	Configs []ConfigDefault

	destinations map[string]string
}

// New starts an empty document.
func New(meta Metadata) *Document {
	return &Document{
		Metadata:     meta,
		destinations: make(map[string]string),
	}
}

// AddFile encodes content and appends it under dest. Size counts the
// content as the target reads it, with "\n" line endings.
func (d *Document) AddFile(source, dest, content string) error {
	if err := d.claim(dest, source); err != nil {
		return err
	}
	content = longstring.NormalizeNewlines(content)
	d.Entries = append(d.Entries, Entry{
		Source:      source,
		Destination: dest,
		Literal:     longstring.Encode(content),
		Size:        len(content),
	})
	return nil
}

// AddConfigDefault adds a configuration file written below ConfigDir.
func (d *Document) AddConfigDefault(name, content string) error {
	dest := paths.ToSlash(d.ConfigDir)
	if dest != "" && dest[len(dest)-1] != '/' {
		dest += "/"
	}
	dest += name

	if err := d.claim(dest, "config:"+name); err != nil {
		return err
	}
	d.Configs = append(d.Configs, ConfigDefault{
		Name:    name,
		Path:    dest,
		Literal: longstring.Encode(content),
	})
	return nil
}

func (d *Document) claim(dest, owner string) error {
	if d.destinations == nil {
		d.destinations = make(map[string]string)
	}
	if other, ok := d.destinations[dest]; ok {
		return errors.Newf(errors.ErrDuplicateDest,
			"%q and %q both resolve to %q", other, owner, dest).
			WithDetail("destination", dest)
	}
	d.destinations[dest] = owner
	return nil
}

// StartupLine is the line registering the program in the startup file.
func (d *Document) StartupLine() string {
	return StartupLine(d.ProgramPath)
}

// StartupLine returns the startup hook for programPath.
func StartupLine(programPath string) string {
	return "shell.run(" + luaQuote(programPath) + ")"
}

// TotalSize is the sum of entry sizes in bytes.
func (d *Document) TotalSize() int {
	total := 0
	for _, e := range d.Entries {
		total += e.Size
	}
	return total
}
