// Package paths provides centralized path handling for luapack.
//
// It covers two unrelated kinds of path:
//
//   - Target paths: where each bundled source file lands on the target
//     computer. A Layout maps a source-relative path to its destination;
//     the designated entry point becomes {programs_root}/{program_name},
//     every other file goes below {library_root} keeping its
//     sub-directories. A Mapper applies a Layout to a whole source tree and
//     refuses two files that would share a destination.
//
//   - Host paths: where luapack itself keeps state on the build machine
//     (log file, global configuration), following the XDG Base Directory
//     specification, and how the project root is discovered.
//
// # Environment Variables
//
//   - LUAPACK_PROJECT: project directory (default: git root, then cwd)
//   - LUAPACK_STATE_DIR: override $XDG_STATE_HOME/luapack
//   - LUAPACK_CONFIG_DIR: override $XDG_CONFIG_HOME/luapack
//
// Target paths always use '/' regardless of the host's separator.
package paths
