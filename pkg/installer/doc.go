// Package installer models the generated installer as a typed document and
// serializes it in a single step.
//
// A Document holds the file entries (destination path plus an encoded
// long-bracket literal), the configuration defaults to bootstrap, and the
// parameters of the install routine: program and library paths, the
// startup hook, and the version metadata. Render executes the embedded
// Lua template over it; nothing else in luapack produces installer text.
package installer
