package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/luapack/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/luapack/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/luapack/internal/version.Date={{.Date}}
)

// Generator identifies this luapack build in generated installers and
// manifests.
func Generator() string {
	return "luapack " + Version
}

// Info is the long form printed by `luapack version`.
func Info() string {
	return fmt.Sprintf("luapack %s (commit %s, built %s)", Version, Commit, Date)
}
