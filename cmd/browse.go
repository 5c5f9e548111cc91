package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jfmyers9/playlog/internal/config"
	"github.com/jfmyers9/playlog/internal/navigator"
	"github.com/jfmyers9/playlog/internal/tui"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Page through your playback history",
	Long: `Open an interactive table of played tracks, newest first.

Controls:
  n, →   next (older) page
  p, ←   previous (newer) page
  r      reload the current page
  q      quit

The Previous and Next buttons can also be clicked. They are disabled at
the first and last page; the last page is worked out from the newest
track once the first page has loaded.

The terminal is owned by the table, so logs go to
~/.local/share/playlog/playlog.log unless --log-file is given.`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().String("api-url", "", "Tracks API base URL (overrides config)")
	browseCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address while browsing (e.g. :9090)")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Set up logging away from the terminal
	file, level := logSettings(cfg)
	if file == "" {
		dataDir := config.GetDataDir()
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		file = filepath.Join(dataDir, "playlog.log")
	}
	logger, closeLog := setupLogger(file, level)
	defer closeLog()

	logger.Info().
		Str("version", version).
		Msg("Starting playlog browser")

	apiURL, _ := cmd.Flags().GetString("api-url")
	client, err := newTrackClient(cfg, apiURL, logger)
	if err != nil {
		return err
	}

	app := tui.New(logger)
	ctrl := navigator.New(navigator.Config{
		PageSize:       cfg.PageSize,
		RequestTimeout: cfg.RequestTimeout,
		Dispatch:       app.Dispatch,
		Logger:         logger,
	}, client, app.Renderer(), app)
	app.SetNavigator(ctrl)
	defer ctrl.Close()

	// Handle graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Quitting the UI ends every other goroutine in the group
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return app.Run(ctx)
	})

	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
	if metricsAddr != "" {
		serveMetrics(ctx, g, metricsAddr, logger)
	}

	ctrl.Start(ctx)

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info().Msg("Browser stopped")
	return nil
}

// serveMetrics runs a Prometheus endpoint in g until ctx is done.
func serveMetrics(ctx context.Context, g *errgroup.Group, addr string, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		logger.Info().Str("addr", addr).Msg("Serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}
