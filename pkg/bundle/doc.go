// Package bundle builds the installer for a project.
//
// A build runs in this order:
//
//  1. Enumerate source files under the source root that carry a recognized
//     extension. Unreadable files are skipped with a warning.
//  2. Resolve every destination. A duplicate destination or a missing entry
//     point stops the build before the version is touched; a missing entry
//     point also leaves a placeholder file behind for the next run.
//  3. Advance the version store once and persist it. From here on a failure
//     burns the build number instead of reusing it.
//  4. Substitute the build placeholders, encode each file into the
//     installer document and render it.
//  5. Write the installer and its manifest, replacing earlier ones.
//
// Builds against one version store must not run concurrently.
package bundle
