// Command luapack-manpage writes the man pages of every luapack command
// into a directory, for packaging.
package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/luapack/cmd/luapack"
	"github.com/spf13/cobra/doc"
)

func main() {
	dir := "man"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", dir, err)
		os.Exit(1)
	}

	rootCmd := luapack.NewRootCmd()
	if err := doc.GenManTree(rootCmd, luapack.ManHeader(), dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man pages: %v\n", err)
		os.Exit(1)
	}
}
