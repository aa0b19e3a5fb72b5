// Test Type: Unit Test
// Description: Manifest construction, digests and both encodings

package manifest_test

import (
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/luapack/pkg/errors"
	"github.com/arthur-debert/luapack/pkg/manifest"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *manifest.Manifest {
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	return &manifest.Manifest{
		Schema:      manifest.SchemaVersion,
		BuildID:     manifest.NewBuildID(at),
		Version:     "1.0.0.1",
		BuildNumber: 1,
		BuildDate:   at,
		Generator:   "luapack dev",
		SourceRoot:  "/project/src",
		EntryPoint:  "main.lua",
		Installer:   manifest.NewArtifact("/project/dist/install.lua", []byte("-- installer")),
		Files: []manifest.File{
			manifest.NewFile("main.lua", "programs/jarvis", []byte("print(1)")),
			manifest.NewFile("util/helper.lua", "programs/lib/jarvis/util/helper.lua", []byte("return {}")),
		},
	}
}

func TestDigest(t *testing.T) {
	// BLAKE3-256 of the empty input
	assert.Equal(t,
		"af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
		manifest.Digest(nil))
	assert.NotEqual(t, manifest.Digest([]byte("a")), manifest.Digest([]byte("b")))
	assert.Len(t, manifest.Digest([]byte("x")), 64)
}

func TestNewBuildID(t *testing.T) {
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	id := manifest.NewBuildID(at)

	parsed, err := ulid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(at), parsed.Time())
	assert.NotEqual(t, id, manifest.NewBuildID(at))
}

func TestNewBuildIDIsMonotonicWithinMillisecond(t *testing.T) {
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	prev := manifest.NewBuildID(at)
	for i := 0; i < 100; i++ {
		next := manifest.NewBuildID(at)
		require.Less(t, prev, next)
		prev = next
	}
}

func TestNewFile(t *testing.T) {
	f := manifest.NewFile("a.lua", "lib/a.lua", []byte("abc"))
	assert.Equal(t, 3, f.Size)
	assert.Equal(t, manifest.Digest([]byte("abc")), f.Blake3)
}

func TestEncodeDecode(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			m := sample()
			data, err := m.Encode(format)
			require.NoError(t, err)
			assert.True(t, strings.Contains(string(data), "programs/lib/jarvis/util/helper.lua"))
			assert.True(t, strings.Contains(string(data), "build_number"))

			back, err := manifest.Decode(data, format)
			require.NoError(t, err)
			assert.Equal(t, m.Files, back.Files)
			assert.Equal(t, m.Version, back.Version)
			assert.True(t, m.BuildDate.Equal(back.BuildDate))
			assert.Equal(t, 17, back.TotalSize())
		})
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	_, err := sample().Encode("xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = manifest.Decode([]byte("{}"), "xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
