// Test Type: Unit Test
// Description: Output format selection and the text, JSON and terminal renderers

package ui_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/arthur-debert/luapack/pkg/bundle"
	"github.com/arthur-debert/luapack/pkg/errors"
	"github.com/arthur-debert/luapack/pkg/install"
	"github.com/arthur-debert/luapack/pkg/installer"
	"github.com/arthur-debert/luapack/pkg/semver"
	"github.com/arthur-debert/luapack/pkg/ui"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBuild() *ui.BuildSummary {
	return &ui.BuildSummary{
		Project:       "Jarvis",
		Previous:      "1.0.0",
		Version:       "1.0.0.1",
		Build:         1,
		BuildID:       "01JTESTBUILD",
		Installer:     "dist/install.lua",
		Manifest:      "dist/manifest.json",
		InstallerSize: 4096,
		TotalSize:     25,
		Files: []ui.FileLine{
			{Source: "main.lua", Destination: "programs/jarvis", Size: 15},
			{Source: "util/helper.lua", Destination: "programs/lib/jarvis/util/helper.lua", Size: 10},
		},
	}
}

func sampleGuide() ui.Guide {
	return ui.Guide{Project: "Jarvis", InstallerName: "install.lua", OutputDir: "dist", ConfigDir: "/etc/jarvis"}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ui.Format
		wantErr bool
	}{
		{"", ui.FormatAuto, false},
		{"auto", ui.FormatAuto, false},
		{"term", ui.FormatTerminal, false},
		{"Terminal", ui.FormatTerminal, false},
		{"plain", ui.FormatText, false},
		{"json", ui.FormatJSON, false},
		{"xml", ui.FormatAuto, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "json", ui.FormatJSON.String())
	assert.Equal(t, "unknown", ui.Format(42).String())
}

func TestDetectorDetect(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		tty     bool
		profile termenv.Profile
		want    ui.Format
	}{
		{"color_terminal", nil, true, termenv.TrueColor, ui.FormatTerminal},
		{"ascii_terminal", nil, true, termenv.Ascii, ui.FormatText},
		{"piped", nil, false, termenv.TrueColor, ui.FormatText},
		{"no_color", map[string]string{"NO_COLOR": "1"}, true, termenv.TrueColor, ui.FormatText},
		{"force_when_piped", map[string]string{"CLICOLOR_FORCE": "1"}, false, termenv.Ascii, ui.FormatTerminal},
		{"force_zero_ignored", map[string]string{"CLICOLOR_FORCE": "0"}, false, termenv.TrueColor, ui.FormatText},
		{"no_color_beats_force", map[string]string{"NO_COLOR": "1", "CLICOLOR_FORCE": "1"}, true, termenv.TrueColor, ui.FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ui.Detector{
				Getenv:     func(key string) string { return tt.env[key] },
				IsTerminal: func(io.Writer) bool { return tt.tty },
				Profile:    func(io.Writer) termenv.Profile { return tt.profile },
			}
			assert.Equal(t, tt.want, d.Detect(&bytes.Buffer{}))
			assert.Equal(t, tt.want == ui.FormatTerminal, d.Rich(&bytes.Buffer{}))
		})
	}
}

func TestNewResolvesAutoWithDetector(t *testing.T) {
	render := func(env map[string]string) string {
		var buf bytes.Buffer
		d := ui.Detector{
			Getenv:     func(key string) string { return env[key] },
			IsTerminal: func(io.Writer) bool { return false },
		}
		r, err := ui.New(ui.Options{Format: ui.FormatAuto, Output: &buf, Detector: &d})
		require.NoError(t, err)
		require.NoError(t, r.RenderMessage("hello"))
		return buf.String()
	}

	assert.Equal(t, "hello\n", render(nil), "piped output stays plain")
	forced := render(map[string]string{"CLICOLOR_FORCE": "1"})
	assert.Contains(t, forced, "hello")
	assert.NotEqual(t, "hello\n", forced, "forced color uses the terminal renderer")
}

func TestNewRenderer(t *testing.T) {
	for _, f := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON} {
		r, err := ui.NewRenderer(f, &bytes.Buffer{})
		require.NoError(t, err, f.String())
		assert.NotNil(t, r)
	}
	_, err := ui.NewRenderer(ui.Format(999), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestTextRenderBuild(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderBuild(sampleBuild()))
	out := buf.String()
	assert.Contains(t, out, "Built Jarvis 1.0.0.1 (build 1)\n")
	assert.Contains(t, out, "Version: 1.0.0 -> 1.0.0.1\n")
	assert.Contains(t, out, "  util/helper.lua -> programs/lib/jarvis/util/helper.lua (10 bytes)\n")
	assert.Contains(t, out, "Installer: dist/install.lua (4096 bytes, 2 files, 25 bytes of source)\n")
}

func TestTextRenderInstallFailure(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	report := &install.Report{
		Project:    "Jarvis",
		Version:    "1.0.0.1",
		Build:      1,
		State:      install.StateFailed,
		FailedPath: "programs/lib/jarvis/a.lua",
		Err:        fmt.Errorf("disk full"),
		Steps: []install.Step{
			{Kind: install.StepWrite, Path: "programs/jarvis", Status: install.StepDone},
			{Kind: install.StepWrite, Path: "programs/lib/jarvis/a.lua", Status: install.StepFailed},
		},
	}
	require.NoError(t, r.RenderInstall(ui.NewInstallSummary(report, "/tmp/computer/0")))

	out := buf.String()
	assert.Contains(t, out, "Target: /tmp/computer/0\n")
	assert.Contains(t, out, "  wrote programs/jarvis\n")
	assert.Contains(t, out, "failed at programs/lib/jarvis/a.lua: disk full")
	assert.Contains(t, out, "Run deploy again to retry.")
}

func TestJSONRenderBuild(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderBuild(sampleBuild()))

	var got ui.BuildSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *sampleBuild(), got)
}

func TestJSONRenderError(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	cause := errors.New(errors.ErrEntryPointMissing, "main.lua not found").WithDetail("entryPoint", "main.lua")
	require.NoError(t, r.RenderError(cause))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "ENTRY_POINT_MISSING", got["code"])
	assert.Equal(t, map[string]interface{}{"entryPoint": "main.lua"}, got["details"])
}

func TestTerminalRenderBuild(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatTerminal, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderBuild(sampleBuild()))
	out := buf.String()
	assert.Contains(t, out, "Built Jarvis 1.0.0.1 (build 1)")
	assert.Contains(t, out, "util/helper.lua")
	assert.Contains(t, out, "01JTESTBUILD")
}

func TestGuide(t *testing.T) {
	md, err := sampleGuide().Markdown()
	require.NoError(t, err)
	assert.Contains(t, md, "# Next steps")
	assert.Contains(t, md, "wget <url of install.lua> install.lua")
	assert.Contains(t, md, "`/etc/jarvis`")

	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderGuide(sampleGuide()))
	assert.Equal(t, md, buf.String())

	buf.Reset()
	r, err = ui.NewRenderer(ui.FormatTerminal, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderGuide(sampleGuide()))
	assert.Contains(t, buf.String(), "Next steps")
}

func TestStyles(t *testing.T) {
	styles, err := ui.LoadStyles([]byte("colors:\n  red: {light: '#f00', dark: '#f88'}\nstyles:\n  Error: {bold: true, foreground: red}\n"))
	require.NoError(t, err)
	assert.True(t, styles["Error"].GetBold())

	_, err = ui.LoadStyles([]byte("styles:\n  Error: {foreground: nope}\n"))
	assert.Error(t, err)

	assert.True(t, ui.GetStyle("Error").GetBold())
	assert.Equal(t, "plain", ui.GetStyle("NoSuchStyle").Render("plain"))
}

func TestNewBuildSummary(t *testing.T) {
	doc := installer.New(installer.Metadata{ProjectName: "Jarvis", BuildID: "01JX"})
	require.NoError(t, doc.AddFile("main.lua", "programs/jarvis", "print(1)"))

	s := ui.NewBuildSummary(&bundle.Result{
		Previous: semver.Default(),
		Version:  semver.Version{Major: 1, Build: 1},
		Document: doc,
		Artifact: []byte("-- installer"),
		Skipped:  []bundle.Skipped{{Path: "/src/bad.lua"}},
	}, "dist/install.lua", "dist/manifest.json")

	assert.Equal(t, "1.0.0", s.Previous)
	assert.Equal(t, "1.0.0.1", s.Version)
	assert.Equal(t, 12, s.InstallerSize)
	assert.Equal(t, 8, s.TotalSize)
	assert.Equal(t, []ui.FileLine{{Source: "main.lua", Destination: "programs/jarvis", Size: 8}}, s.Files)
	assert.Equal(t, []string{"/src/bad.lua"}, s.Skipped)
}
