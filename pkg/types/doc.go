// Package types defines the interfaces shared across luapack packages.
// Domain types live with the package that owns them: versions in semver,
// encoded literals in longstring, installer documents in installer.
package types
