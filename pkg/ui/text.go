package ui

import (
	"fmt"
	"io"
	"strings"
)

// textRenderer writes plain text without styling.
type textRenderer struct {
	out io.Writer
}

func (r *textRenderer) RenderBuild(s *BuildSummary) error {
	var b strings.Builder
	if s.DryRun {
		fmt.Fprintf(&b, "Dry run: %s %s (build %d), nothing written\n", s.Project, s.Version, s.Build)
	} else {
		fmt.Fprintf(&b, "Built %s %s (build %d)\n", s.Project, s.Version, s.Build)
	}
	fmt.Fprintf(&b, "Version: %s -> %s\n", s.Previous, s.Version)
	if s.CreatedSource {
		b.WriteString("Created the source directory\n")
	}
	for _, path := range s.Skipped {
		fmt.Fprintf(&b, "Skipped unreadable file %s\n", path)
	}
	for _, f := range s.Files {
		fmt.Fprintf(&b, "  %s -> %s (%d bytes)\n", f.Source, f.Destination, f.Size)
	}
	fmt.Fprintf(&b, "Installer: %s (%d bytes, %d files, %d bytes of source)\n",
		s.Installer, s.InstallerSize, len(s.Files), s.TotalSize)
	fmt.Fprintf(&b, "Manifest: %s\n", s.Manifest)
	fmt.Fprintf(&b, "Build ID: %s\n", s.BuildID)
	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *textRenderer) RenderInstall(s *InstallSummary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Target: %s\n", s.Target)
	for _, p := range s.Deleted {
		fmt.Fprintf(&b, "  deleted %s\n", p)
	}
	for _, p := range s.Written {
		fmt.Fprintf(&b, "  wrote %s\n", p)
	}
	for _, p := range s.ConfigsCreated {
		fmt.Fprintf(&b, "  created %s\n", p)
	}
	for _, p := range s.ConfigsKept {
		fmt.Fprintf(&b, "  kept %s (already exists)\n", p)
	}
	if s.StartupAdded {
		b.WriteString("  startup hook added\n")
	}
	b.WriteString(s.Summary + "\n")
	if s.Error != "" {
		b.WriteString("Files written so far were left in place. Run deploy again to retry.\n")
	}
	_, err := io.WriteString(r.out, b.String())
	return err
}

func (r *textRenderer) RenderVersion(s *VersionSummary) error {
	var err error
	if s.Previous != "" {
		_, err = fmt.Fprintf(r.out, "%s -> %s (%s)\n", s.Previous, s.Version, s.Store)
	} else {
		_, err = fmt.Fprintf(r.out, "%s (%s)\n", s.Version, s.Store)
	}
	return err
}

func (r *textRenderer) RenderGuide(g Guide) error {
	md, err := g.Markdown()
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.out, md)
	return err
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.out, "Error: %v\n", err)
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.out, msg)
	return err
}
