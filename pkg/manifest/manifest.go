// Package manifest describes one build: its version, the files it bundled
// and where each lands on the target. A Manifest is written once next to
// the installer and never updated.
package manifest

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/arthur-debert/luapack/pkg/errors"
	"github.com/oklog/ulid/v2"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is bumped when the manifest layout changes.
const SchemaVersion = 1

// Manifest is the build record written beside the installer.
type Manifest struct {
	Schema      int       `json:"schema" yaml:"schema"`
	BuildID     string    `json:"build_id" yaml:"build_id"`
	Version     string    `json:"version" yaml:"version"`
	BuildNumber uint      `json:"build_number" yaml:"build_number"`
	BuildDate   time.Time `json:"build_date" yaml:"build_date"`
	Generator   string    `json:"generator" yaml:"generator"`
	SourceRoot  string    `json:"source_root" yaml:"source_root"`
	EntryPoint  string    `json:"entry_point" yaml:"entry_point"`
	Installer   Artifact  `json:"installer" yaml:"installer"`
	Files       []File    `json:"files" yaml:"files"`
}

// File is one bundled source file.
type File struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
	Size        int    `json:"size" yaml:"size"`
	Blake3      string `json:"blake3" yaml:"blake3"`
}

// Artifact describes the generated installer.
type Artifact struct {
	Path   string `json:"path" yaml:"path"`
	Size   int    `json:"size" yaml:"size"`
	Blake3 string `json:"blake3" yaml:"blake3"`
}

// entropy is shared so IDs minted within one millisecond still sort in
// creation order.
var entropy = &ulid.LockedMonotonicReader{MonotonicReader: ulid.Monotonic(rand.Reader, 0)}

// NewBuildID returns a time-ordered unique build identifier. IDs created
// in the same millisecond increase monotonically.
func NewBuildID(at time.Time) string {
	return ulid.MustNew(ulid.Timestamp(at), entropy).String()
}

// Digest returns the hex BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NewFile describes a bundled file from its final content.
func NewFile(source, dest string, content []byte) File {
	return File{
		Source:      source,
		Destination: dest,
		Size:        len(content),
		Blake3:      Digest(content),
	}
}

// NewArtifact describes the rendered installer.
func NewArtifact(path string, content []byte) Artifact {
	return Artifact{Path: path, Size: len(content), Blake3: Digest(content)}
}

// TotalSize is the sum of bundled file sizes.
func (m *Manifest) TotalSize() int {
	total := 0
	for _, f := range m.Files {
		total += f.Size
	}
	return total
}

// Encode serializes m as "json" or "yaml".
func (m *Manifest) Encode(format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestWrite, "failed to encode manifest")
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(m)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestWrite, "failed to encode manifest")
		}
		return data, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown manifest format %q", format)
	}
}

// Decode parses a manifest previously produced by Encode.
func Decode(data []byte, format string) (*Manifest, error) {
	var m Manifest
	var err error
	switch format {
	case "json":
		err = json.Unmarshal(data, &m)
	case "yaml":
		err = yaml.Unmarshal(data, &m)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown manifest format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to parse %s manifest", format)
	}
	return &m, nil
}
