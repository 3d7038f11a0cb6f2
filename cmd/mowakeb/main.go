// ABOUTME: Entry point for the mowakeb server and command-line client
// ABOUTME: Commands share one configuration and one wired application graph

package main

import (
	"os"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
