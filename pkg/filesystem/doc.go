// Package filesystem provides filesystem implementations for luapack.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and afero-backed filesystems
// used for tests and for installing into a sandboxed target root.
package filesystem
