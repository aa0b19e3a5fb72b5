package luapack

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/luapack/pkg/filesystem"
	"github.com/arthur-debert/luapack/pkg/install"
	"github.com/arthur-debert/luapack/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newDeployCmd(opts *globalOptions) *cobra.Command {
	flags := &buildFlags{}
	var target string

	cmd := &cobra.Command{
		Use:     "deploy --target DIR",
		Short:   MsgDeployShort,
		Long:    MsgDeployLong,
		Example: MsgDeployExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, kind, err := flags.open(cmd, opts)
			if err != nil {
				return err
			}

			r, err := runBuild(s, flags, kind, opts.dryRun)
			if err != nil || r == nil {
				return err
			}
			if r.DryRun {
				return nil
			}

			abs, err := filepath.Abs(target)
			if err != nil {
				return fmt.Errorf(MsgErrTarget, err)
			}
			if err := s.fs.MkdirAll(abs, 0755); err != nil {
				return fmt.Errorf(MsgErrTarget, err)
			}

			log.Info().Str("target", abs).Str("version", r.Version.String()).Msg("Installing into target")
			report, err := install.New(install.Options{FS: filesystem.NewRooted(abs)}).Apply(r.Document)
			if rerr := s.out.RenderInstall(ui.NewInstallSummary(report, abs)); rerr != nil {
				return rerr
			}
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&target, "target", "t", "", MsgFlagTarget)
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagDirname("target")
	return cmd
}
