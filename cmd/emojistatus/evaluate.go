package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jpalmerr/emojistatus"
	"github.com/jpalmerr/emojistatus/config"
	"github.com/jpalmerr/emojistatus/internal/termview"
	"github.com/spf13/cobra"
)

// evaluateCmd evaluates panels once and prints the result.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate panels once and print their status",
	Long: `Evaluate panels once and print their status to stdout.

Panels come either from a config file (-c, optionally narrowed with
--panel) or from an ad-hoc series given with --values. Ad-hoc panels are
configured with the threshold, theme and display flags; config panels use
their configured settings.

With --fail-on, the command exits non-zero when any panel is at or below
the given level, which makes it usable as a CI gate.

Example:
  emojistatus evaluate --values 40,50,60,70,80,90,95,96,97,98 --history
  emojistatus evaluate --values 12,9 --higher-is-better=false --output json
  emojistatus evaluate -c config.yaml --panel availability --fail-on warning`,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	f := evaluateCmd.Flags()
	f.StringP("config", "c", "", "path to config file")
	f.String("panel", "", "only evaluate the named panel (with --config)")
	f.String("values", "", "comma-separated series to evaluate, oldest first")
	f.String("name", "value", "panel name for --values")
	f.String("thresholds", "95,80,60,40", "excellent,good,ok,warning thresholds for --values")
	f.String("theme", string(emojistatus.DefaultTheme), "emoji theme for --values")
	f.Int("decimals", 1, "decimal places for --values")
	f.Bool("higher-is-better", true, "whether rising values are an improvement (--values)")
	f.Bool("history", false, "show the level histogram (--values)")
	f.Bool("stats", false, "show min/max/avg statistics (--values)")
	f.String("output", "text", "output format: text or json")
	f.String("fail-on", "", "exit non-zero when any panel is at or below this level")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config")
	values, _ := flags.GetString("values")
	output, _ := flags.GetString("output")
	failOn, _ := flags.GetString("fail-on")

	if output != "text" && output != "json" {
		return fmt.Errorf("unknown output format %q (expected 'text' or 'json')", output)
	}

	var failLevel emojistatus.Level
	if failOn != "" {
		failLevel = emojistatus.Level(failOn)
		if !failLevel.Valid() {
			return fmt.Errorf("unknown level %q for --fail-on", failOn)
		}
	}

	var panels []emojistatus.Panel
	var err error
	switch {
	case configFile != "" && values != "":
		return errors.New("use either --config or --values, not both")
	case configFile != "":
		panel, _ := flags.GetString("panel")
		panels, err = configPanels(configFile, panel)
	case values != "":
		var p emojistatus.Panel
		p, err = adhocPanel(cmd)
		panels = []emojistatus.Panel{p}
	default:
		return errors.New("either --config or --values is required")
	}
	if err != nil {
		return err
	}

	states := evaluatePanels(cmd.Context(), panels)

	out := cmd.OutOrStdout()
	if output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(states); err != nil {
			return fmt.Errorf("failed to encode states: %w", err)
		}
	} else {
		fmt.Fprintln(out, termview.RenderAll(states))
	}

	if failLevel != "" {
		for _, s := range states {
			if emojistatus.Level(s.Level).Rank() <= failLevel.Rank() {
				return fmt.Errorf("panel %q is %s (fail-on %s)", s.Name, s.Level, failLevel)
			}
		}
	}
	return nil
}

// configPanels loads and builds the panels of a config file, keeping only
// the named panel when name is set.
func configPanels(path, name string) ([]emojistatus.Panel, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	panels, err := config.BuildPanels(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build panels: %w", err)
	}
	if name == "" {
		return panels, nil
	}
	for _, p := range panels {
		if p.Name() == name {
			return []emojistatus.Panel{p}, nil
		}
	}
	return nil, fmt.Errorf("panel %q not found in %s", name, path)
}

// adhocPanel builds a panel from the --values family of flags.
func adhocPanel(cmd *cobra.Command) (emojistatus.Panel, error) {
	flags := cmd.Flags()
	values, _ := flags.GetString("values")
	name, _ := flags.GetString("name")
	rawThresholds, _ := flags.GetString("thresholds")
	theme, _ := flags.GetString("theme")
	decimals, _ := flags.GetInt("decimals")
	higherIsBetter, _ := flags.GetBool("higher-is-better")
	history, _ := flags.GetBool("history")
	stats, _ := flags.GetBool("stats")

	series, err := parseSeries(values)
	if err != nil {
		return emojistatus.Panel{}, fmt.Errorf("--values: %w", err)
	}
	th, err := parseThresholds(rawThresholds)
	if err != nil {
		return emojistatus.Panel{}, fmt.Errorf("--thresholds: %w", err)
	}

	return emojistatus.NewPanel(name,
		emojistatus.WithThresholds(th),
		emojistatus.WithTheme(emojistatus.Theme(theme)),
		emojistatus.WithDecimals(decimals),
		emojistatus.WithHigherIsBetter(higherIsBetter),
		emojistatus.WithVisibility(emojistatus.Visibility{
			Value:      true,
			Trend:      true,
			History:    history,
			Statistics: stats,
		}),
		emojistatus.WithSource(emojistatus.StaticSource(emojistatus.Field{
			Name:   emojistatus.DefaultFieldName,
			Values: series,
		})),
	)
}

// evaluatePanels reads every panel's source once and evaluates it.
func evaluatePanels(ctx context.Context, panels []emojistatus.Panel) []emojistatus.PanelState {
	states := make([]emojistatus.PanelState, 0, len(panels))
	for _, p := range panels {
		start := time.Now()
		fields, err := p.Source()(ctx)
		if err != nil {
			fields = nil
		}
		states = append(states, emojistatus.StateOf(p, emojistatus.RefreshResult{
			View:        emojistatus.Evaluate(p, fields),
			RefreshedAt: start,
			Duration:    time.Since(start),
			Error:       err,
		}))
	}
	return states
}

func parseSeries(s string) (emojistatus.Series, error) {
	parts := strings.Split(s, ",")
	series := make(emojistatus.Series, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", strings.TrimSpace(part))
		}
		series = append(series, v)
	}
	return series, nil
}

func parseThresholds(s string) (emojistatus.Thresholds, error) {
	series, err := parseSeries(s)
	if err != nil {
		return emojistatus.Thresholds{}, err
	}
	if len(series) != 4 {
		return emojistatus.Thresholds{}, fmt.Errorf("expected 4 values (excellent,good,ok,warning), got %d", len(series))
	}
	return emojistatus.Thresholds{
		Excellent: series[0],
		Good:      series[1],
		OK:        series[2],
		Warning:   series[3],
	}, nil
}
