// Package testutil provides utilities for testing luapack components.
//
// Key components:
//   - NewTestFS: in-memory filesystem for fast, isolated tests
//   - WriteTree / ReadTree: declare a file tree inline and snapshot one back
//   - FailingFS: wraps a filesystem and fails writes to chosen paths
//
// All test data should be defined inline, not in external files.
package testutil
