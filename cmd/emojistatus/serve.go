package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/emojistatus"
	"github.com/jpalmerr/emojistatus/config"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newLogger creates a JSON logger for CLI use.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// serveCmd starts the emojistatus dashboard server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Long: `Start the emojistatus dashboard server.

The server will:
  - Load configuration from the specified YAML file
  - Refresh every configured panel from its source
  - Serve the dashboard UI, JSON API and metrics on the configured port
  - Restart the board when the config file changes (unless --watch=false)

An invalid config written while serving is logged and ignored; the running
board keeps its previous configuration.

The server runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  emojistatus serve -c config.yaml
  emojistatus serve --config /etc/emojistatus/config.yaml --watch=false`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	serveCmd.Flags().Bool("watch", true, "reload the board when the config file changes")
	serveCmd.Flags().Bool("debug", false, "log every refresh")
	_ = serveCmd.MarkFlagRequired("config")
}

func runServe(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	watch, _ := cmd.Flags().GetBool("watch")
	debug, _ := cmd.Flags().GetBool("debug")
	logger := newLogger(debug)

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Info("config loaded",
		"panels", len(cfg.Panels),
		"grids", len(cfg.Grids),
	)

	board, err := newBoard(cfg, logger)
	if err != nil {
		return err
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reloads := make(chan *config.Config, 1)
	if watch {
		go func() {
			err := config.Watch(ctx, configFile, logger, func(next *config.Config) {
				// keep only the newest pending config
				select {
				case <-reloads:
				default:
				}
				reloads <- next
			})
			if err != nil {
				logger.Error("config watcher stopped", "error", err)
			}
		}()
	}

	return serveBoards(ctx, board, reloads, logger)
}

// serveBoards runs board until ctx is cancelled, replacing it with a new
// board whenever a valid config arrives on reloads.
func serveBoards(ctx context.Context, board *emojistatus.Board, reloads <-chan *config.Config, logger *slog.Logger) error {
	for {
		logger.Info("starting server",
			"port", board.Port(),
			"refresh_interval", board.RefreshInterval().String(),
			"panels", len(board.Panels()),
		)

		runCtx, cancelRun := context.WithCancel(ctx)
		errChan := make(chan error, 1)
		go func(b *emojistatus.Board) {
			errChan <- b.Start(runCtx)
		}(board)

		var next *emojistatus.Board
		for next == nil {
			select {
			case err := <-errChan:
				cancelRun()
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
				logger.Info("shutdown complete")
				return nil

			case <-ctx.Done():
				cancelRun()
				// signal received, wait for graceful shutdown with timeout
				select {
				case err := <-errChan:
					if err != nil {
						return fmt.Errorf("server error: %w", err)
					}
					logger.Info("shutdown complete")
				case <-time.After(shutdownTimeout):
					logger.Warn("shutdown timed out",
						"timeout", shutdownTimeout.String(),
						"action", "forcing exit",
					)
				}
				return nil

			case cfg := <-reloads:
				b, err := newBoard(cfg, logger)
				if err != nil {
					logger.Error("reloaded config rejected, keeping current board", "error", err)
					continue
				}
				next = b
			}
		}

		cancelRun()
		if err := <-errChan; err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("board restarted with reloaded config")
		board = next
	}
}

// newBoard builds a board from a parsed config.
func newBoard(cfg *config.Config, logger *slog.Logger) (*emojistatus.Board, error) {
	opts, err := config.BoardOptions(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build panels: %w", err)
	}
	opts = append(opts, emojistatus.WithLogger(logger))

	b, err := emojistatus.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return b, nil
}
