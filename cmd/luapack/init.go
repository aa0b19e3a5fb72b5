package luapack

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/luapack/pkg/config"
	"github.com/arthur-debert/luapack/pkg/paths"
	"github.com/spf13/cobra"
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, nil)
			if err != nil {
				return err
			}

			projectFile := filepath.Join(s.root, paths.ProjectConfigFile)
			if existing := config.ProjectFile(s.root); existing != "" {
				if err := s.out.RenderMessage(fmt.Sprintf(MsgInitExists, existing)); err != nil {
					return err
				}
			} else if opts.dryRun {
				if err := s.out.RenderMessage(fmt.Sprintf(MsgInitWouldCreate, projectFile)); err != nil {
					return err
				}
			} else {
				if err := s.fs.WriteFile(projectFile, config.ProjectTemplate(), 0644); err != nil {
					return err
				}
				if err := s.out.RenderMessage(fmt.Sprintf(MsgInitCreated, projectFile)); err != nil {
					return err
				}
			}

			src := s.cfg.SourceRoot()
			if _, err := s.fs.Stat(src); err == nil {
				return s.out.RenderMessage(fmt.Sprintf(MsgInitExists, src))
			}
			if opts.dryRun {
				return s.out.RenderMessage(fmt.Sprintf(MsgInitWouldCreate, src))
			}
			if err := s.fs.MkdirAll(src, 0755); err != nil {
				return err
			}
			return s.out.RenderMessage(fmt.Sprintf(MsgInitCreated, src))
		},
	}
}
