// ABOUTME: Entry point for the captrack console
// ABOUTME: Command-line and TUI client for the CapTrack monitoring platform

package main

import (
	"fmt"
	"os"

	"github.com/tbenali/captrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
