package emojistatus

import (
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// boardConfig holds mutable state during Board construction.
type boardConfig struct {
	title           string
	panels          []Panel
	refreshInterval time.Duration
	port            int
	maxConcurrency  int
	logger          *slog.Logger
	registerer      prometheus.Registerer
	callbacks       []func(RefreshResult)
}

// Option is a function that configures a [Board] during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithPanel], [WithPanels], [WithRefreshInterval],
// [WithPort], [WithMaxConcurrency], [WithLogger], [WithTitle],
// [WithRefreshCallback], [WithRegisterer].
type Option func(*boardConfig) error

// WithPanel adds a single [Panel] to the board.
//
// Can be called multiple times. At least one panel must be configured for
// [New] to succeed.
func WithPanel(p Panel) Option {
	return func(cfg *boardConfig) error {
		cfg.panels = append(cfg.panels, p)
		return nil
	}
}

// WithPanels adds multiple [Panel] values to the board.
//
// Example:
//
//	b, err := emojistatus.New(
//	    emojistatus.WithPanels(cpu, memory, queue),
//	)
func WithPanels(panels ...Panel) Option {
	return func(cfg *boardConfig) error {
		cfg.panels = append(cfg.panels, panels...)
		return nil
	}
}

// WithRefreshInterval sets how often panels without a custom interval
// re-read their source. Defaults to 15 seconds.
//
// Returns an error if the duration is zero or negative.
func WithRefreshInterval(d time.Duration) Option {
	return func(cfg *boardConfig) error {
		if d <= 0 {
			return errors.New("refresh interval must be positive")
		}
		cfg.refreshInterval = d
		return nil
	}
}

// WithPort sets the HTTP port for the dashboard server.
// Defaults to 8080.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *boardConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithMaxConcurrency sets how many panels may refresh at the same time.
// Defaults to 10.
//
// Returns an error if the value is zero or negative.
func WithMaxConcurrency(n int) Option {
	return func(cfg *boardConfig) error {
		if n <= 0 {
			return errors.New("max concurrency must be positive")
		}
		cfg.maxConcurrency = n
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the board.
// If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *boardConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithTitle sets the dashboard title displayed in the browser tab and
// header. If not specified, defaults to "emojistatus".
func WithTitle(title string) Option {
	return func(cfg *boardConfig) error {
		cfg.title = title
		return nil
	}
}

// WithRefreshCallback registers a function to be called after every panel
// refresh, once the new state is stored.
//
// Callbacks are invoked synchronously from a single goroutine and must not
// block. Panics within callbacks are recovered and logged with a
// correlation ID; they do not stop the board.
//
// Example:
//
//	b, err := emojistatus.New(
//	    emojistatus.WithPanel(p),
//	    emojistatus.WithRefreshCallback(func(r emojistatus.RefreshResult) {
//	        if r.View.Worst() == emojistatus.LevelCritical {
//	            log.Printf("%s is critical", r.View.Panel)
//	        }
//	    }),
//	)
//
// Nil callbacks are silently ignored.
func WithRefreshCallback(cb func(RefreshResult)) Option {
	return func(cfg *boardConfig) error {
		if cb == nil {
			return nil
		}
		cfg.callbacks = append(cfg.callbacks, cb)
		return nil
	}
}

// WithRegisterer registers the board's Prometheus metrics on reg instead of
// a private registry. The /metrics endpoint is only served when reg is also
// a [prometheus.Gatherer], such as a [prometheus.Registry].
//
// Returns an error if reg is nil.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(cfg *boardConfig) error {
		if reg == nil {
			return errors.New("registerer cannot be nil")
		}
		cfg.registerer = reg
		return nil
	}
}
