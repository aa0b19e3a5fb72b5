package luapack

import (
	"github.com/arthur-debert/luapack/pkg/semver"
	"github.com/arthur-debert/luapack/pkg/ui"
	"github.com/spf13/cobra"
)

func newBumpCmd(opts *globalOptions) *cobra.Command {
	var (
		prerelease string
		release    bool
		set        string
	)

	cmd := &cobra.Command{
		Use:               "bump [major|minor|patch|build]",
		Short:             MsgBumpShort,
		Long:              MsgBumpLong,
		GroupID:           "version",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: kindCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, nil)
			if err != nil {
				return err
			}
			store := semver.NewFileStore(s.fs, s.cfg.VersionStorePath())

			prev, err := store.Load()
			if err != nil {
				return err
			}

			var next semver.Version
			if set != "" {
				if next, err = semver.Parse(set); err != nil {
					return err
				}
			} else {
				kind := semver.KindBuild
				if len(args) == 1 {
					if kind, err = semver.ParseKind(args[0]); err != nil {
						return err
					}
				}
				next, err = semver.Next(prev, kind, semver.Options{Prerelease: prerelease, Release: release})
				if err != nil {
					return err
				}
			}

			if !opts.dryRun {
				if err := store.Save(next); err != nil {
					return err
				}
			}
			if err := s.out.RenderVersion(&ui.VersionSummary{
				Store:    store.Path(),
				Version:  next.String(),
				Previous: prev.String(),
				Current:  next,
			}); err != nil {
				return err
			}
			if opts.dryRun {
				return s.out.RenderMessage(MsgDryRunNotice)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&prerelease, "prerelease", "", MsgFlagPrerelease)
	cmd.Flags().BoolVar(&release, "release", false, MsgFlagRelease)
	cmd.Flags().StringVar(&set, "set", "", MsgFlagSet)
	cmd.MarkFlagsMutuallyExclusive("prerelease", "release", "set")
	return cmd
}

func newShowVersionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "show-version",
		Short:   MsgShowVersionShort,
		GroupID: "version",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, nil)
			if err != nil {
				return err
			}
			store := semver.NewFileStore(s.fs, s.cfg.VersionStorePath())
			v, err := store.Load()
			if err != nil {
				return err
			}
			return s.out.RenderVersion(&ui.VersionSummary{
				Store:   store.Path(),
				Version: v.String(),
				Current: v,
			})
		},
	}
}
