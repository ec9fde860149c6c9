// Package main is the entry point for the emojistatus CLI.
//
// emojistatus can be run either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary approach.
//
// Usage:
//
//	emojistatus serve -c config.yaml      # Start the dashboard
//	emojistatus validate -c config.yaml   # Validate configuration
//	emojistatus evaluate --values 40,98   # Evaluate a series once
//	emojistatus version                   # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "emojistatus",
	Short: "Turn numeric series into an at-a-glance emoji status",
	Long: `emojistatus classifies numeric time series into five levels and shows
them as emoji, with trend, history and summary statistics.

Quick start:
  1. Create a config file (emojistatus.yaml)
  2. Run: emojistatus serve -c emojistatus.yaml
  3. Open http://localhost:8080 in your browser

Example config:
  port: 8080
  refresh_interval: 15s
  panels:
    - name: availability
      source:
        file: data/availability.yaml
      theme: traffic`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this emojistatus binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "emojistatus %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
