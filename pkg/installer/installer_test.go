// Test Type: Unit Test
// Description: Installer document building and single-step rendering

package installer_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/luapack/pkg/errors"
	"github.com/arthur-debert/luapack/pkg/installer"
	"github.com/arthur-debert/luapack/pkg/longstring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMetadata() installer.Metadata {
	return installer.Metadata{
		ProjectName: "Jarvis",
		Version:     "1.0.0.1",
		BuildNumber: 1,
		BuildDate:   "2026-10-19T12:00:00Z",
		BuildID:     "01JTESTBUILD",
		Generator:   "luapack test",
		ProgramPath: "programs/jarvis",
		LibraryPath: "programs/lib/jarvis",
		ConfigDir:   "/etc/jarvis",
		StartupFile: "startup.lua",
	}
}

type packed struct {
	path    string
	content string
}

// extractEntries walks a rendered installer the way a Lua reader would:
// each entry is `{ path = "<p>", content = <long bracket> }`. Literal
// content is skipped as a unit so payload text can never be mistaken for
// another entry.
func extractEntries(t *testing.T, artifact string) []packed {
	t.Helper()
	const pathPrefix = `{ path = "`
	const contentPrefix = `", content = `

	var out []packed
	rest := artifact
	for {
		i := strings.Index(rest, pathPrefix)
		if i < 0 {
			return out
		}
		rest = rest[i+len(pathPrefix):]
		j := strings.Index(rest, contentPrefix)
		require.GreaterOrEqual(t, j, 0)
		path := rest[:j]
		rest = rest[j+len(contentPrefix):]

		require.True(t, strings.HasPrefix(rest, "["), "literal must follow content =")
		level := 0
		for rest[1+level] == '=' {
			level++
		}
		closer := longstring.Close(level)
		end := strings.Index(rest, closer)
		require.GreaterOrEqual(t, end, 0)
		text := rest[:end+len(closer)]

		inner, err := longstring.Decode(text, level)
		require.NoError(t, err)
		out = append(out, packed{path: path, content: inner[1 : len(inner)-1]})
		rest = rest[end+len(closer):]
	}
}

func TestRenderEmbedsEveryFile(t *testing.T) {
	doc := installer.New(testMetadata())
	files := []packed{
		{"programs/jarvis", "print('hello')\n"},
		{"programs/lib/jarvis/util/helper.lua", "local s = [==[ ]=] ]==]\nreturn s\n"},
		{"programs/lib/jarvis/empty.lua", ""},
		{"programs/lib/jarvis/tricky.lua", `files = { { path = "x", content = [[y]] } }`},
	}
	for _, f := range files {
		require.NoError(t, doc.AddFile("src", f.path, f.content))
	}

	artifact, err := doc.Bytes()
	require.NoError(t, err)

	got := extractEntries(t, string(artifact))
	assert.Equal(t, files, got)
}

func TestRenderParameters(t *testing.T) {
	doc := installer.New(testMetadata())
	require.NoError(t, doc.AddFile("main.lua", "programs/jarvis", "print(1)"))
	require.NoError(t, doc.AddDefaultConfigs())

	artifact, err := doc.Bytes()
	require.NoError(t, err)
	text := string(artifact)

	assert.True(t, strings.HasPrefix(text, "-- Jarvis Installer\n"))
	assert.Contains(t, text, "-- Version 1.0.0.1 (build 1, 2026-10-19T12:00:00Z)")
	assert.Contains(t, text, "-- Build ID 01JTESTBUILD")
	assert.Contains(t, text, `local PROGRAM_PATH = "programs/jarvis"`)
	assert.Contains(t, text, `local LIB_PATH = "programs/lib/jarvis"`)
	assert.Contains(t, text, `local STARTUP_PATH = "startup.lua"`)
	assert.Contains(t, text, `local STARTUP_LINE = "shell.run(\"programs/jarvis\")"`)
	assert.Contains(t, text, `local BUILD = 1`)
	assert.Contains(t, text, `{ path = "/etc/jarvis/config.lua", content = [[`)
	assert.Contains(t, text, `{ path = "/etc/jarvis/settings.lua", content = [[`)
	assert.True(t, strings.HasSuffix(text, "install()\n"))
}

func TestAddFileRejectsDuplicateDestination(t *testing.T) {
	doc := installer.New(testMetadata())
	require.NoError(t, doc.AddFile("a.lua", "programs/lib/jarvis/a.lua", "1"))

	err := doc.AddFile(`a\b.lua`, "programs/lib/jarvis/a.lua", "2")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateDest))
	assert.Len(t, doc.Entries, 1)
}

func TestConfigDefaultCannotShadowFile(t *testing.T) {
	doc := installer.New(testMetadata())
	require.NoError(t, doc.AddFile("x.lua", "/etc/jarvis/config.lua", "1"))

	err := doc.AddDefaultConfigs()
	assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateDest))
}

func TestAddConfigDefaultPath(t *testing.T) {
	meta := testMetadata()
	meta.ConfigDir = "/etc/jarvis/"
	doc := installer.New(meta)

	require.NoError(t, doc.AddConfigDefault("config.lua", "return {}"))
	assert.Equal(t, "/etc/jarvis/config.lua", doc.Configs[0].Path)

	content, err := doc.Configs[0].Literal.Unwrap()
	require.NoError(t, err)
	assert.Equal(t, "return {}", content)
}

func TestDefaultConfigs(t *testing.T) {
	contents, order := installer.DefaultConfigs()
	assert.Equal(t, []string{installer.PrimaryConfig, installer.BehaviorConfig}, order)
	assert.Contains(t, contents[installer.PrimaryConfig], "openai_api_key")
	assert.Contains(t, contents[installer.PrimaryConfig], "config.model")
	for _, key := range []string{"provider", "timeout", "retry_count", "retry_delay", "personality"} {
		assert.Contains(t, contents[installer.BehaviorConfig], "settings."+key)
	}
}

func TestEntriesKeepInsertionOrder(t *testing.T) {
	doc := installer.New(testMetadata())
	require.NoError(t, doc.AddFile("b", "lib/b.lua", "bb"))
	require.NoError(t, doc.AddFile("a", "lib/a.lua", "a"))

	assert.Equal(t, "lib/b.lua", doc.Entries[0].Destination)
	assert.Equal(t, 3, doc.TotalSize())
}

func TestStartupLineQuoting(t *testing.T) {
	assert.Equal(t, `shell.run("programs/jarvis")`, installer.StartupLine("programs/jarvis"))
	assert.Equal(t, `shell.run("odd \"name\"\\x")`, installer.StartupLine(`odd "name"\x`))
	assert.Equal(t, `shell.run("bell\007")`, installer.StartupLine("bell\a"))
}
