package emojistatus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jpalmerr/emojistatus/dashboard"
	"github.com/jpalmerr/emojistatus/internal/metrics"
	"github.com/jpalmerr/emojistatus/internal/refresh"
	"github.com/jpalmerr/emojistatus/internal/server"
	"github.com/jpalmerr/emojistatus/internal/store"
)

const (
	defaultRefreshInterval = 15 * time.Second
	defaultPort            = 8080
	defaultMaxConcurrency  = 10
)

// RefreshResult is the outcome of one panel refresh, passed to callbacks
// registered with [WithRefreshCallback].
type RefreshResult struct {
	// View is the evaluated panel. When the source failed, View is the
	// evaluation of an empty series (critical, "N/A").
	View View

	// RefreshedAt is when the source read started.
	RefreshedAt time.Time

	// Duration covers the source read and the evaluation.
	Duration time.Duration

	// Error is the source error, or nil on success.
	Error error
}

// Board refreshes panels from their sources and serves them on a live
// dashboard.
//
// Board is created using [New] with functional options and started with
// [Board.Start]. The typical lifecycle is:
//
//	b, err := emojistatus.New(emojistatus.WithPanel(p))
//	if err != nil {
//	    slog.Error("failed to create board", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	b.Start(ctx) // blocks until context cancelled
type Board struct {
	title           string
	panels          []Panel
	refreshInterval time.Duration
	port            int
	maxConcurrency  int
	logger          *slog.Logger
	registerer      prometheus.Registerer
	gatherer        prometheus.Gatherer
	callbacks       []func(RefreshResult)
}

// New creates a new [Board] with the given options.
//
// At least one panel must be configured via [WithPanel] or [WithPanels],
// panel names must be unique and every panel needs a source. Other options
// have defaults:
//   - Refresh interval: 15 seconds
//   - Port: 8080
//   - Max concurrency: 10
//   - Metrics: a private Prometheus registry served at /metrics
func New(opts ...Option) (*Board, error) {
	cfg := &boardConfig{
		panels:          []Panel{},
		refreshInterval: defaultRefreshInterval,
		port:            defaultPort,
		maxConcurrency:  defaultMaxConcurrency,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if len(cfg.panels) == 0 {
		return nil, errors.New("at least one panel is required")
	}

	// names key the store and the scheduler's interval tracking
	seen := make(map[string]bool, len(cfg.panels))
	for _, p := range cfg.panels {
		if seen[p.name] {
			return nil, fmt.Errorf("duplicate panel name: %q", p.name)
		}
		seen[p.name] = true

		if p.source == nil {
			return nil, fmt.Errorf("panel %q has no source", p.name)
		}
	}

	if cfg.port < 1 || cfg.port > 65535 {
		return nil, fmt.Errorf("port must be between 1 and 65535, got %d", cfg.port)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	registerer := cfg.registerer
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	gatherer, _ := registerer.(prometheus.Gatherer)

	return &Board{
		title:           cfg.title,
		panels:          cfg.panels,
		refreshInterval: cfg.refreshInterval,
		port:            cfg.port,
		maxConcurrency:  cfg.maxConcurrency,
		logger:          logger,
		registerer:      registerer,
		gatherer:        gatherer,
		callbacks:       cfg.callbacks,
	}, nil
}

// Start begins refreshing panels and serving the dashboard.
//
// Start blocks until ctx is cancelled. During execution:
//
//   - every panel is refreshed immediately, then at its interval
//   - each refresh reads the panel's source, evaluates it and stores the state
//   - the HTTP server serves the dashboard, JSON API, SSE stream and metrics
//
// Start returns after the HTTP server has released its port, so a new board
// may bind the same port as soon as Start returns.
//
// Returns nil on graceful shutdown. Returns an error if the HTTP server
// fails to start.
func (b *Board) Start(ctx context.Context) error {
	b.logger.Info("emojistatus starting", "panel_count", len(b.panels))
	b.logger.Info("refresh configured", "interval", b.refreshInterval.String())
	b.logger.Info("dashboard available", "url", fmt.Sprintf("http://localhost:%d", b.port))

	if ctx.Err() != nil {
		return nil
	}

	// a board started twice shares its registerer, so the collector is
	// created per Start and unregistered on return
	collector, unregister, err := b.newCollector()
	if err != nil {
		return err
	}
	defer unregister()

	panelStore := store.NewMemoryStore()
	byName := make(map[string]Panel, len(b.panels))
	for _, p := range b.panels {
		byName[p.name] = p
	}

	scheduler := refresh.NewScheduler(b.refreshTasks(), b.refreshInterval, b.maxConcurrency, b.logger)
	scheduler.Start(ctx)

	// single consumer: store, metrics, callbacks and logging happen in order
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for res := range scheduler.Results() {
			p := byName[res.Name]

			view := res.Value
			if res.Error != nil {
				view = Evaluate(p, nil)
			}
			result := RefreshResult{
				View:        view,
				RefreshedAt: res.StartedAt,
				Duration:    res.Duration,
				Error:       res.Error,
			}

			panelStore.Update(StateOf(p, result))
			observe(collector, result)

			for _, cb := range b.callbacks {
				invokeCallbackSafe(cb, result, b.logger)
			}

			logAttrs := []any{
				"panel", p.name,
				"level", view.Worst(),
				"fields", len(view.Evaluations),
				"duration_ms", res.Duration.Milliseconds(),
			}
			if res.Error != nil {
				b.logger.Warn("refresh failed", append(logAttrs, "error", res.Error.Error())...)
			} else {
				b.logger.Debug("refresh completed", logAttrs...)
			}
		}
	}()

	cleanup := func() {
		scheduler.Stop()
		wg.Wait()
	}

	httpServer := server.NewServer(panelStore, b.port, dashboard.Assets, b.title, b.gatherer, b.logger)
	if err := httpServer.Start(ctx); err != nil {
		cleanup()
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	<-ctx.Done()
	cleanup()
	<-httpServer.Done()
	b.logger.Info("emojistatus stopped")
	return nil
}

// newCollector registers the board's metrics and returns a function that
// removes them again.
func (b *Board) newCollector() (c *metrics.Collector, unregister func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to register metrics: %v", r)
		}
	}()

	c = metrics.New(b.registerer)
	return c, func() { c.Unregister(b.registerer) }, nil
}

// refreshTasks converts panels into scheduler tasks that read the source and
// evaluate the result.
func (b *Board) refreshTasks() []refresh.Task[View] {
	tasks := make([]refresh.Task[View], len(b.panels))
	for i, p := range b.panels {
		tasks[i] = refresh.Task[View]{
			Name:     p.name,
			Interval: p.interval,
			Run: func(ctx context.Context) (View, error) {
				fields, err := p.source(ctx)
				if err != nil {
					return View{}, err
				}
				return Evaluate(p, fields), nil
			},
		}
	}
	return tasks
}

// Panels returns a copy of the configured panels.
func (b *Board) Panels() []Panel {
	cp := make([]Panel, len(b.panels))
	copy(cp, b.panels)
	return cp
}

// Port returns the configured HTTP port for the dashboard server.
func (b *Board) Port() int {
	return b.port
}

// RefreshInterval returns the default interval between panel refreshes.
func (b *Board) RefreshInterval() time.Duration {
	return b.refreshInterval
}

// observe records a refresh on the collector. A failed refresh has no
// fields to report, so the panel's field gauges are dropped instead.
func observe(c *metrics.Collector, r RefreshResult) {
	c.ObserveRefresh(r.View.Panel, r.Duration, r.Error)
	if r.Error != nil {
		c.ForgetFields(r.View.Panel)
		return
	}
	for _, e := range r.View.Evaluations {
		c.ObserveField(r.View.Panel, e.Field, e.Level.String(), e.Level.Rank(), e.Value, e.HasValue)
	}
}

// invokeCallbackSafe calls a refresh callback with panic recovery.
// Panics are logged under a correlation ID and do not propagate.
func invokeCallbackSafe(cb func(RefreshResult), result RefreshResult, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("refresh callback panicked",
				"correlation_id", uuid.NewString(),
				"panic", r,
				"panel", result.View.Panel,
			)
		}
	}()
	cb(result)
}
