package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/luapack/pkg/errors"
	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"
)

// terminalRenderer writes colored reports with pterm and lipgloss and
// renders markdown with glamour.
type terminalRenderer struct {
	out io.Writer
}

func (r *terminalRenderer) RenderBuild(s *BuildSummary) error {
	var b strings.Builder
	title := fmt.Sprintf("Built %s %s (build %d)", s.Project, s.Version, s.Build)
	if s.DryRun {
		b.WriteString(pterm.Info.Sprintln("Dry run: " + title + ", nothing written"))
	} else {
		b.WriteString(pterm.Success.Sprintln(title))
	}
	fmt.Fprintf(&b, "  %s %s -> %s\n",
		GetStyle("Muted").Render("version"), s.Previous, GetStyle("Version").Render(s.Version))

	if s.CreatedSource {
		b.WriteString(pterm.Info.Sprintln("Created the source directory"))
	}
	for _, path := range s.Skipped {
		b.WriteString(pterm.Warning.Sprintln("Skipped unreadable file " + path))
	}

	data := pterm.TableData{{"Source", "Destination", "Size"}}
	for _, f := range s.Files {
		data = append(data, []string{f.Source, f.Destination, fmt.Sprintf("%d", f.Size)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	b.WriteString(table)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  %s %s (%d bytes, %d files, %d bytes of source)\n",
		GetStyle("Muted").Render("installer"), GetStyle("Path").Render(s.Installer),
		s.InstallerSize, len(s.Files), s.TotalSize)
	fmt.Fprintf(&b, "  %s %s\n", GetStyle("Muted").Render("manifest "), GetStyle("Path").Render(s.Manifest))
	fmt.Fprintf(&b, "  %s %s\n", GetStyle("Muted").Render("build id "), s.BuildID)

	_, err = io.WriteString(r.out, b.String())
	return err
}

func (r *terminalRenderer) RenderInstall(s *InstallSummary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", GetStyle("Heading").Render("Target"), GetStyle("Path").Render(s.Target))
	for _, p := range s.Deleted {
		fmt.Fprintf(&b, "  %s %s\n", GetStyle("Muted").Render("deleted"), p)
	}
	for _, p := range s.Written {
		fmt.Fprintf(&b, "  %s %s\n", GetStyle("Success").Render("wrote  "), p)
	}
	for _, p := range s.ConfigsCreated {
		fmt.Fprintf(&b, "  %s %s\n", GetStyle("Success").Render("created"), p)
	}
	for _, p := range s.ConfigsKept {
		fmt.Fprintf(&b, "  %s %s (already exists)\n", GetStyle("Muted").Render("kept   "), p)
	}
	if s.StartupAdded {
		fmt.Fprintf(&b, "  %s startup hook added\n", GetStyle("Success").Render("startup"))
	}

	if s.Error != "" {
		b.WriteString(pterm.Error.Sprintln(s.Summary))
		b.WriteString(pterm.Warning.Sprintln("Files written so far were left in place. Run deploy again to retry."))
	} else {
		b.WriteString(pterm.Success.Sprintln(s.Summary))
		for _, p := range s.ConfigsCreated {
			b.WriteString(pterm.Info.Sprintln("Review " + p + " before first use"))
		}
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *terminalRenderer) RenderVersion(s *VersionSummary) error {
	var line string
	if s.Previous != "" {
		line = fmt.Sprintf("%s -> %s", s.Previous, GetStyle("Version").Render(s.Version))
	} else {
		line = GetStyle("Version").Render(s.Version)
	}
	_, err := fmt.Fprintf(r.out, "%s  %s\n", line, GetStyle("Muted").Render(s.Store))
	return err
}

func (r *terminalRenderer) RenderGuide(g Guide) error {
	md, err := g.Markdown()
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.out, renderMarkdown(md))
	return err
}

func (r *terminalRenderer) RenderError(err error) error {
	code := errors.GetErrorCode(err)
	var msg string
	if code != errors.ErrUnknown {
		msg = fmt.Sprintf("%s Error [%s]: %s\n",
			pterm.Error.Prefix.Text,
			pterm.Error.MessageStyle.Sprint(code),
			err.Error())
	} else {
		msg = fmt.Sprintf("%s %s\n", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))
	}
	_, werr := io.WriteString(r.out, msg)
	return werr
}

func (r *terminalRenderer) RenderMessage(msg string) error {
	_, err := io.WriteString(r.out, pterm.Info.Sprintln(msg))
	return err
}

// renderMarkdown renders md for the terminal, falling back to the raw
// markdown when glamour cannot.
func renderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
