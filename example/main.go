package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jpalmerr/emojistatus"
)

func main() {
	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dir := filepath.Join(os.TempDir(), "emojistatus-demo")

	// simulated series files (see simulator.go)
	go func() {
		names := []string{"eu-web", "eu-db", "us-web", "us-db"}
		if err := RunSeriesSimulator(ctx, dir, names, 2*time.Second); err != nil {
			slog.Error("simulator stopped", "error", err)
		}
	}()
	time.Sleep(100 * time.Millisecond)

	// grid API: 2 regions × 2 tiers = 4 panels from one declaration
	panels, err := emojistatus.NewPanelGrid("Availability",
		emojistatus.WithFileTemplate(filepath.Join(dir, "{{.region}}-{{.tier}}.yaml")),
		emojistatus.WithDimensions(map[string][]string{
			"region": {"eu", "us"},
			"tier":   {"web", "db"},
		}),
		emojistatus.WithGridPanelOptions(
			emojistatus.WithTheme(emojistatus.ThemeTraffic),
			emojistatus.WithVisibility(emojistatus.Visibility{Value: true, Trend: true, History: true}),
			emojistatus.WithDrilldown(true),
		),
	)
	if err != nil {
		slog.Error("failed to create panel grid", "error", err)
		os.Exit(1)
	}

	// a static multi-field panel with its own refresh interval
	budget, err := emojistatus.NewPanel("Error budget",
		emojistatus.WithLabel("remaining %"),
		emojistatus.WithSource(emojistatus.StaticSource(
			emojistatus.Field{Name: "checkout", Values: emojistatus.Series{92, 88, 71}},
			emojistatus.Field{Name: "search", Values: emojistatus.Series{99, 99.5, 99.8}},
		)),
		emojistatus.WithDisplayMode(emojistatus.DisplayGrid),
		emojistatus.WithComparison(emojistatus.ComparePrevious, 0),
		emojistatus.WithCriticalAlert(""),
		emojistatus.WithInterval(30*time.Second),
	)
	if err != nil {
		slog.Error("failed to create panel", "error", err)
		os.Exit(1)
	}
	panels = append(panels, budget)

	// start the dashboard
	b, err := emojistatus.New(
		emojistatus.WithPanels(panels...),
		emojistatus.WithRefreshInterval(2*time.Second),
		emojistatus.WithPort(8080),
		emojistatus.WithTitle("emojistatus demo"),
	)
	if err != nil {
		slog.Error("failed to create board", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   emojistatus Demo                                    ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Open http://localhost:8080 in your browser          ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Panels:                                             ║")
	fmt.Println("  ║   • 4 simulated (2 regions × 2 tiers via Grid)        ║")
	fmt.Println("  ║   • 1 static (error budget, 30s interval)             ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	if err := b.Start(ctx); err != nil {
		slog.Error("emojistatus error", "error", err)
		os.Exit(1)
	}
}
