// Package emojistatus turns numeric time series into an at-a-glance emoji
// status: a qualitative level, a trend, a short history and summary
// statistics.
//
// The package has two layers. The evaluator ([Classify], [TrendOf],
// [HistoricalSummary], [StatisticsOf], [Compare] and [Evaluate]) is pure:
// it does no I/O, keeps no state and is safe for concurrent use. The
// [Board] hosts panels, refreshes them from their sources and serves a
// live dashboard.
//
// # Quick Start
//
// Evaluate a series directly:
//
//	p, _ := emojistatus.NewPanel("availability")
//	e := emojistatus.EvaluateSeries(p, emojistatus.Series{97.1, 98.4, 99.2})
//	fmt.Println(e.Emoji, e.Formatted, e.Level) // 😍 99.2 excellent
//
// Or serve panels on a dashboard with graceful shutdown:
//
//	p, _ := emojistatus.NewPanel("availability",
//	    emojistatus.WithSource(emojistatus.FileSource("data/availability.yaml")),
//	)
//	b, _ := emojistatus.New(emojistatus.WithPanel(p))
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	b.Start(ctx) // blocks until context is cancelled
//
// # Levels
//
// A value is classified against four descending thresholds (95/80/60/40 by
// default). The first threshold the value reaches wins; below all four is
// critical, as is a series with no samples.
//
// # Trend
//
// The trend compares the two most recent samples. A relative change
// within ±5% ([TrendDeadband]) is stable. The trend indicator is inverted
// for panels where lower values are better ([WithHigherIsBetter]).
//
// # Grids
//
// [NewPanelGrid] expands one declaration into a panel per combination of
// dimension values, each reading a series file rendered from a path
// template:
//
//	panels, _ := emojistatus.NewPanelGrid("CPU",
//	    emojistatus.WithFileTemplate("data/{{.region}}.yaml"),
//	    emojistatus.WithDimensions(map[string][]string{"region": {"eu", "us"}}),
//	)
//	// "CPU (eu)", "CPU (us)"
//
// # Architecture
//
// emojistatus consists of several internal packages (under internal/):
//
//   - refresh: Generic worker-pool scheduler that re-reads panel sources
//   - store: In-memory panel state storage with pub/sub for real-time updates
//   - server: HTTP server for the dashboard, JSON API, SSE and metrics
//   - metrics: Prometheus collectors for levels, values and refreshes
//   - termview: Terminal rendering used by the CLI
//
// The dashboard UI is embedded in the binary via the dashboard package.
//
// # HTTP Endpoints
//
// When running, the board exposes:
//
//   - GET /: Dashboard UI
//   - GET /api/panels: JSON array of all panel states
//   - GET /api/panels/{name}: JSON state of one panel
//   - GET /api/sse: Server-Sent Events stream of panel state updates
//   - GET /metrics: Prometheus exposition
package emojistatus
