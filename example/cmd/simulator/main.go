// Standalone series simulator for trying the CLI.
//
// Usage:
//
//	go run ./example/cmd/simulator -dir /tmp/emojistatus-demo
//
// Then in another terminal:
//
//	DATA_DIR=/tmp/emojistatus-demo go run ./cmd/emojistatus serve -c example/config.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"
)

func main() {
	dir := flag.String("dir", filepath.Join(os.TempDir(), "emojistatus-demo"), "directory to write series files to")
	tick := flag.Duration("tick", 2*time.Second, "time between samples")
	flag.Parse()

	fmt.Printf("Writing simulated series to %s every %s\n", *dir, *tick)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		slog.Error("failed to create directory", "error", err)
		os.Exit(1)
	}

	// one multi-field file per region, matching example/config.yaml
	series := map[string]map[string][]float64{
		"eu": {"web": nil, "db": nil},
		"us": {"web": nil, "db": nil},
	}

	ticker := time.NewTicker(*tick)
	defer ticker.Stop()

	for {
		for region, fields := range series {
			for name, samples := range fields {
				fields[name] = walk(samples)
			}
			data, err := yaml.Marshal(fields)
			if err != nil {
				slog.Error("failed to encode series", "error", err)
				os.Exit(1)
			}
			path := filepath.Join(*dir, region+".yaml")
			if err := os.WriteFile(path+".tmp", data, 0o644); err == nil {
				err = os.Rename(path+".tmp", path)
			}
			if err != nil {
				slog.Error("failed to write series", "path", path, "error", err)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// walk appends one random-walk step, keeping the last 30 samples.
func walk(samples []float64) []float64 {
	last := 70 + rand.Float64()*25
	if n := len(samples); n > 0 {
		last = samples[n-1]
	}
	next := min(max(last+(rand.Float64()-0.5)*12, 0), 100)
	if rand.Intn(25) == 0 {
		next = max(next-35, 0)
	}
	samples = append(samples, next)
	if len(samples) > 30 {
		samples = samples[len(samples)-30:]
	}
	return samples
}
