// Package install applies an installer document to a target filesystem.
//
// It is the Go rendition of the routine embedded in every generated
// installer and follows the same sequence: delete the previous program and
// library, write every bundled file, create missing configuration defaults
// and register the startup hook. `luapack deploy` uses it to install into
// emulator folders, and tests use it to check that installs are repeatable.
//
// Paths in the document are target paths. The filesystem passed in must be
// rooted at the target (see filesystem.NewRooted).
//
// A failure stops the sequence where it happened. Files written before the
// failure stay in place; running the install again is the recovery path.
package install
