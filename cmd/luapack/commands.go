package luapack

import (
	"embed"
	"fmt"
	"os"

	"github.com/arthur-debert/luapack/internal/version"
	"github.com/arthur-debert/luapack/pkg/cobrax/topics"
	"github.com/arthur-debert/luapack/pkg/config"
	"github.com/arthur-debert/luapack/pkg/filesystem"
	"github.com/arthur-debert/luapack/pkg/logging"
	"github.com/arthur-debert/luapack/pkg/paths"
	"github.com/arthur-debert/luapack/pkg/types"
	"github.com/arthur-debert/luapack/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// globalOptions holds the persistent flags.
type globalOptions struct {
	verbosity int
	project   string
	output    string
	dryRun    bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "luapack",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&opts.project, "project", "C", "", MsgFlagProject)
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "auto", MsgFlagOutput)
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "version", Title: "VERSIONING:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newBuildCmd(opts))
	rootCmd.AddCommand(newDeployCmd(opts))
	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newBumpCmd(opts))
	rootCmd.AddCommand(newShowVersionCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	var renderer topics.Renderer = &topics.PlainRenderer{}
	if ui.DefaultDetector.Rich(os.Stdout) {
		renderer = topics.NewGlamourRenderer()
	}
	if _, err := topics.Initialize(rootCmd, topicFiles, "topics", topics.Options{
		Extensions: []string{".md"},
		Renderer:   renderer,
	}); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

// session is a loaded project.
type session struct {
	root string
	cfg  *config.Config
	fs   types.FS
	out  ui.Renderer
}

// renderer creates the renderer selected by --output, writing to the
// command's stdout.
func (o *globalOptions) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(o.output)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// open locates the project and loads its configuration. overrides are
// dotted configuration keys set from flags.
func (o *globalOptions) open(cmd *cobra.Command, overrides map[string]interface{}) (*session, error) {
	out, err := o.renderer(cmd)
	if err != nil {
		return nil, err
	}

	root, usedFallback, err := paths.ProjectRoot(o.project)
	if err != nil {
		return nil, fmt.Errorf(MsgErrProjectRoot, err)
	}
	if usedFallback && config.ProjectFile(root) == "" {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, root)
	}

	cfg, err := config.Load(root, overrides)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("project", root).Msg("Project loaded")
	return &session{root: root, cfg: cfg, fs: filesystem.NewOS(), out: out}, nil
}
