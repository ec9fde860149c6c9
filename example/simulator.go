package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// maxSamples bounds each simulated series file.
const maxSamples = 30

// walker is a bounded random walk for a single series file.
type walker struct {
	path    string
	samples []float64
}

func (w *walker) step() {
	last := 70 + rand.Float64()*25
	if n := len(w.samples); n > 0 {
		last = w.samples[n-1]
	}
	next := last + (rand.Float64()-0.5)*12
	// occasional incident
	if rand.Intn(25) == 0 {
		next -= 35
	}
	next = min(max(next, 0), 100)

	w.samples = append(w.samples, next)
	if len(w.samples) > maxSamples {
		w.samples = w.samples[len(w.samples)-maxSamples:]
	}
}

func (w *walker) write() error {
	data, err := yaml.Marshal(w.samples)
	if err != nil {
		return err
	}
	// write then rename so readers never see a partial file
	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, w.path)
}

// RunSeriesSimulator appends a sample to dir/<name>.yaml for every name
// each tick, until ctx is cancelled. Series are random walks between 0 and
// 100 with occasional drops, so panels move through every level.
func RunSeriesSimulator(ctx context.Context, dir string, names []string, tick time.Duration) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create series directory: %w", err)
	}

	walkers := make([]*walker, len(names))
	for i, name := range names {
		walkers[i] = &walker{path: filepath.Join(dir, name+".yaml")}
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		for _, w := range walkers {
			w.step()
			if err := w.write(); err != nil {
				slog.Error("failed to write series", "path", w.path, "error", err)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
