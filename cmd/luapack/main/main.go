package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/luapack/cmd/luapack"
	"github.com/arthur-debert/luapack/pkg/ui"
)

func main() {
	rootCmd := luapack.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := ui.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
