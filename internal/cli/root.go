// Package cli implements the CheerLink command-line interface using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cliVersion = "dev"

var rootCmd = &cobra.Command{
	Use:   "cheerlink",
	Short: "CheerLink — companion daemon for the cheer drum",
	Long: `CheerLink is the companion daemon for the cheer drum toy.
It turns drum hits into a live heat level, tracks daily missions, and runs
the charm gacha. The toy shell and the companion app talk to its local API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	cliVersion = version
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
