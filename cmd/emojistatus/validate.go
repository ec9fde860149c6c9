package main

import (
	"fmt"

	"github.com/jpalmerr/emojistatus/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate an emojistatus configuration file without starting the server.

This command parses the YAML, expands environment variables, validates all
fields and builds every panel. It's useful for CI/CD pipelines or
pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  emojistatus validate -c config.yaml
  emojistatus validate --config /etc/emojistatus/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// building catches what parsing cannot: option ranges and template keys
	panels, err := config.BuildPanels(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	direct := len(cfg.Panels)
	fromGrids := len(panels) - direct

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Port:             %d\n", cfg.Port)
	fmt.Fprintf(out, "  Refresh interval: %s\n", cfg.RefreshInterval.Duration())
	fmt.Fprintf(out, "  Panels:           %d direct + %d from grids = %d total\n",
		direct, fromGrids, len(panels))

	return nil
}
