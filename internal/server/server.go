package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jpalmerr/emojistatus/internal/store"
)

const (
	// sseWriteTimeout is the maximum time allowed for a single SSE write.
	// Must be <= shutdownTimeout to ensure clean shutdown.
	sseWriteTimeout = 5 * time.Second

	// shutdownTimeout bounds graceful shutdown of in-flight requests.
	shutdownTimeout = 5 * time.Second

	// defaultTitle is used when no custom title is configured.
	defaultTitle = "emojistatus"

	// titlePlaceholder is the marker in HTML that gets replaced with the actual title.
	titlePlaceholder = "{{.Title}}"
)

// Server handles HTTP requests for the dashboard and API.
//
// Routes:
//   - GET /: the embedded dashboard page
//   - GET /api/panels: all panel states as JSON
//   - GET /api/panels/{name}: one panel state as JSON
//   - GET /api/sse: Server-Sent Events stream of panel states
//   - GET /metrics: Prometheus exposition (when a gatherer is configured)
type Server struct {
	store      store.Store
	port       int
	httpServer *http.Server
	assets     fs.FS
	title      string
	gatherer   prometheus.Gatherer
	logger     *slog.Logger
	done       chan struct{}
}

// NewServer creates a new HTTP [Server].
//
// Parameters:
//   - st: store holding panel states
//   - port: TCP port to listen on (0 picks a free port)
//   - assets: embedded filesystem containing dashboard assets (may be nil)
//   - title: dashboard title (defaults to "emojistatus" if empty)
//   - gatherer: metrics source for /metrics (may be nil)
//   - logger: logger for server events
//
// The server is not started until [Server.Start] is called.
func NewServer(st store.Store, port int, assets fs.FS, title string, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	return &Server{
		store:    st,
		port:     port,
		assets:   assets,
		title:    title,
		gatherer: gatherer,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Handler returns the server's request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/panels", s.handlePanels)
	mux.HandleFunc("/api/panels/{name}", s.handlePanel)
	mux.HandleFunc("/api/sse", s.handleSSE)

	if s.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	if s.assets != nil {
		mux.HandleFunc("/", s.handleDashboard)
	}
	return mux
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns once the listener is bound. When ctx is
// cancelled the server shuts down gracefully; [Server.Done] is closed once
// shutdown has finished and the port is released.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// request contexts derive from ctx so SSE handlers end on shutdown
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	serveDone := make(chan struct{})
	go func() {
		defer close(serveDone)
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		defer close(s.done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
		<-serveDone
	}()

	return nil
}

// Done returns a channel that is closed after the server has shut down.
// It is never closed if Start was not called or failed.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// handleDashboard serves the main dashboard page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if s.assets == nil {
		http.Error(w, "Dashboard not found", http.StatusInternalServerError)
		return
	}

	content, err := fs.ReadFile(s.assets, "assets/index.html")
	if err != nil {
		http.Error(w, "Dashboard not found", http.StatusInternalServerError)
		return
	}

	// escape the title to prevent XSS
	title := s.title
	if title == "" {
		title = defaultTitle
	}
	rendered := strings.ReplaceAll(string(content), titlePlaceholder, html.EscapeString(title))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err = w.Write([]byte(rendered)); err != nil {
		s.logger.Error("failed to write dashboard response", "error", err)
	}
}

// handlePanels returns all panel states as JSON.
func (s *Server) handlePanels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, s.store.GetAll())
}

// handlePanel returns a single panel state as JSON.
func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, ok := s.store.Get(r.PathValue("name"))
	if !ok {
		http.Error(w, "Panel not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, state)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// handleSSE streams panel states via Server-Sent Events.
//
// Writes carry a deadline so a slow or vanished client cannot pin the
// handler goroutine past shutdown.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	// streaming needs a flushable writer
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	// ResponseController gives deadline-aware Write and Flush on the
	// underlying connection.
	rc := http.NewResponseController(w)

	// some ResponseWriter implementations (test recorders, wrapped writers)
	// cannot set deadlines; after the first refusal we stop asking
	deadlinesSupported := true

	// writeAndFlush sends one panel state as an SSE data frame. With a
	// deadline in place a stalled client turns into a write error instead
	// of a goroutine blocked until the process exits.
	writeAndFlush := func(data []byte) error {
		if deadlinesSupported {
			if err := rc.SetWriteDeadline(time.Now().Add(sseWriteTimeout)); err != nil {
				s.logger.Warn("sse write deadlines not supported", "error", err)
				deadlinesSupported = false
			}
		}

		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}

		// Flush is bound by the same deadline
		return rc.Flush()
	}

	// SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// subscribe before the snapshot so no update falls between the two
	ch := s.store.Subscribe()
	defer s.store.Unsubscribe(ch)

	// replay every known panel so a fresh dashboard renders at once
	for _, state := range s.store.GetAll() {
		data, err := json.Marshal(state)
		if err != nil {
			s.logger.Warn("failed to encode panel state", "panel", state.Name, "error", err)
			continue
		}
		if err := writeAndFlush(data); err != nil {
			return
		}
	}

	// then stream refreshes as they land in the store
	for {
		select {
		case state, ok := <-ch:
			if !ok {
				// store closed the subscription
				return
			}
			data, err := json.Marshal(state)
			if err != nil {
				s.logger.Warn("failed to encode panel state", "panel", state.Name, "error", err)
				continue
			}
			if err := writeAndFlush(data); err != nil {
				return
			}

		case <-r.Context().Done():
			// request contexts derive from the board's context via
			// BaseContext, so this fires on client disconnect and on
			// server shutdown alike
			return
		}
	}
}
