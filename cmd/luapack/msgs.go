package luapack

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "Bundle Lua sources into a self-installing script"
	MsgBuildShort       = "Build the installer and manifest"
	MsgDeployShort      = "Build and install into a local target directory"
	MsgBumpShort        = "Advance the stored version without building"
	MsgShowVersionShort = "Show the stored project version"
	MsgInitShort        = "Create luapack.toml and the source directory"
	MsgVersionShort     = "Print the luapack version"
	MsgCompletionShort  = "Generate shell completion script"
	MsgManShort         = "Generate the man page"

	// Status messages
	MsgDryRunNotice        = "DRY RUN MODE - No changes were made"
	MsgInitCreated         = "Created %s"
	MsgInitExists          = "%s already exists, left unchanged"
	MsgInitWouldCreate     = "Would create %s"
	MsgBuildNotRun         = "Nothing was built and the version was not changed."
	MsgGuidanceEntryPoint  = "Add your program's entry point at %s and run the build again."
	MsgGuidancePlaceholder = "A placeholder was written to %s. Replace it with your program and run the build again."
	MsgGuidanceDuplicate   = "Two source files map to %s on the target. Rename or move one of them."
	MsgGuidanceConfig      = "Fix %s in your configuration and run the build again."
	MsgFallbackWarning     = "No luapack.toml or git repository found, using the current directory %s\n"

	// Error messages
	MsgErrProjectRoot = "failed to locate the project: %w"
	MsgErrTarget      = "failed to prepare target directory: %w"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun         = "Preview the build without writing anything"
	MsgFlagProject        = "Project directory (defaults to LUAPACK_PROJECT, the git root or the current directory)"
	MsgFlagOutput         = "Output format: auto, term, text or json"
	MsgFlagIncrement      = "Version component to bump: major, minor, patch or build"
	MsgFlagPrerelease     = "Set the pre-release tag of the new version"
	MsgFlagRelease        = "Clear the pre-release tag of the new version"
	MsgFlagManifestFormat = "Manifest format: json or yaml"
	MsgFlagNoGuide        = "Do not print the next-steps guide"
	MsgFlagTarget         = "Directory standing in for the target computer's root"
	MsgFlagSet            = "Replace the stored version, e.g. 2.0.0 or 2.0.0.5-rc1"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/deploy-long.txt
	msgDeployLongRaw string
	MsgDeployLong    = strings.TrimSpace(msgDeployLongRaw)

	//go:embed msgs/deploy-example.txt
	msgDeployExampleRaw string
	MsgDeployExample    = strings.TrimRight(msgDeployExampleRaw, "\n")

	//go:embed msgs/bump-long.txt
	msgBumpLongRaw string
	MsgBumpLong    = strings.TrimSpace(msgBumpLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
