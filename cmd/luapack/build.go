package luapack

import (
	"fmt"

	"github.com/arthur-debert/luapack/internal/version"
	"github.com/arthur-debert/luapack/pkg/bundle"
	"github.com/arthur-debert/luapack/pkg/config"
	"github.com/arthur-debert/luapack/pkg/errors"
	"github.com/arthur-debert/luapack/pkg/semver"
	"github.com/arthur-debert/luapack/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// buildFlags are shared by build and deploy.
type buildFlags struct {
	increment      string
	prerelease     string
	release        bool
	manifestFormat string
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.increment, "increment", "i", "", MsgFlagIncrement)
	cmd.Flags().StringVar(&f.prerelease, "prerelease", "", MsgFlagPrerelease)
	cmd.Flags().BoolVar(&f.release, "release", false, MsgFlagRelease)
	cmd.Flags().StringVar(&f.manifestFormat, "manifest-format", "", MsgFlagManifestFormat)
	cmd.MarkFlagsMutuallyExclusive("prerelease", "release")

	_ = cmd.RegisterFlagCompletionFunc("increment", kindCompletion)
	_ = cmd.RegisterFlagCompletionFunc("manifest-format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// parse checks the flag values. Bad flags are usage errors, not
// configuration problems.
func (f *buildFlags) parse() (semver.Kind, map[string]interface{}, error) {
	var kind semver.Kind
	if f.increment != "" {
		k, err := semver.ParseKind(f.increment)
		if err != nil {
			return "", nil, err
		}
		kind = k
	}

	overrides := make(map[string]interface{})
	switch f.manifestFormat {
	case "":
	case config.FormatJSON, config.FormatYAML:
		overrides["output.manifest_format"] = f.manifestFormat
	default:
		return "", nil, fmt.Errorf("unknown manifest format %q (want json or yaml)", f.manifestFormat)
	}
	return kind, overrides, nil
}

// open parses the flags and loads the project.
func (f *buildFlags) open(cmd *cobra.Command, opts *globalOptions) (*session, semver.Kind, error) {
	kind, overrides, err := f.parse()
	if err != nil {
		return nil, "", err
	}
	s, err := opts.open(cmd, overrides)
	if err != nil {
		return nil, "", err
	}
	return s, kind, nil
}

// runBuild builds and, unless in dry-run mode, writes the outputs. A nil
// result with a nil error means the build stopped on a configuration
// problem that was already reported.
func runBuild(s *session, f *buildFlags, kind semver.Kind, dryRun bool) (*bundle.Result, error) {
	b := bundle.NewBuilder(s.fs, s.cfg, bundle.Options{
		Kind:      kind,
		Version:   semver.Options{Prerelease: f.prerelease, Release: f.release},
		DryRun:    dryRun,
		Generator: version.Generator(),
	})

	r, err := b.Run()
	if err != nil {
		if errors.IsConfigurationError(err) {
			return nil, reportConfigurationError(s.out, err)
		}
		return nil, err
	}

	if err := s.out.RenderBuild(ui.NewBuildSummary(r, s.cfg.InstallerPath(), s.cfg.ManifestPath())); err != nil {
		return nil, err
	}
	if dryRun {
		if err := s.out.RenderMessage(MsgDryRunNotice); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// reportConfigurationError prints err with guidance on how to fix it.
// Configuration problems end the command cleanly.
func reportConfigurationError(out ui.Renderer, err error) error {
	log.Warn().Err(err).Msg("Build stopped on a configuration problem")
	if rerr := out.RenderError(err); rerr != nil {
		return rerr
	}

	details := errors.GetErrorDetails(err)
	var guidance string
	switch errors.GetErrorCode(err) {
	case errors.ErrEntryPointMissing:
		if placeholder, ok := details["placeholder"].(string); ok {
			guidance = fmt.Sprintf(MsgGuidancePlaceholder, placeholder)
		} else {
			guidance = fmt.Sprintf(MsgGuidanceEntryPoint, details["entryPoint"])
		}
	case errors.ErrDuplicateDest:
		guidance = fmt.Sprintf(MsgGuidanceDuplicate, details["destination"])
	default:
		guidance = fmt.Sprintf(MsgGuidanceConfig, details["key"])
	}
	if rerr := out.RenderMessage(guidance); rerr != nil {
		return rerr
	}
	return out.RenderMessage(MsgBuildNotRun)
}

func newBuildCmd(opts *globalOptions) *cobra.Command {
	flags := &buildFlags{}
	var noGuide bool

	cmd := &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
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

			if noGuide || r.DryRun {
				return nil
			}
			return s.out.RenderGuide(ui.Guide{
				Project:       s.cfg.Project.Name,
				InstallerName: s.cfg.Output.Installer,
				OutputDir:     s.cfg.Output.Dir,
				ConfigDir:     s.cfg.Target.ConfigDir,
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&noGuide, "no-guide", false, MsgFlagNoGuide)
	return cmd
}

func kindCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	kinds := make([]string, 0, len(semver.Kinds))
	for _, k := range semver.Kinds {
		kinds = append(kinds, string(k))
	}
	return kinds, cobra.ShellCompDirectiveNoFileComp
}
