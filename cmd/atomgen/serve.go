package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"atomfeed/internal/config"
	hhttp "atomfeed/internal/handler/http"
	hfeed "atomfeed/internal/handler/http/feed"
	"atomfeed/internal/handler/http/requestid"
	"atomfeed/internal/observability/tracing"
	"atomfeed/internal/resilience/circuitbreaker"
	envconfig "atomfeed/pkg/config"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve Atom feeds built from the article database",
		Long: `Serve starts the feed API and a separate operational server.

Feed API (--port):
  GET /feeds/latest.atom          newest articles across all sources
  GET /sources/{id}/feed.atom     newest articles of one source
  GET /health, /health/live       health and liveness

Operational server (--metrics-port):
  GET /metrics                    Prometheus metrics
  GET /health, /health/live

The database is taken from DATABASE_URL.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().Int("port", 8080, "feed API port (overrides PORT)")
	cmd.Flags().Int("metrics-port", 9090, "metrics server port (overrides METRICS_PORT)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := tracing.InstallProvider(envconfig.GetEnvFloat("TRACE_SAMPLE_RATIO", 1.0))
	defer func() { _ = shutdownTracing(context.Background()) }()

	database, err := connectDatabase(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	svc, cb := newFeedService(database, cfg)
	health := &hhttp.HealthHandler{
		DB:       database,
		Breakers: []*circuitbreaker.CircuitBreaker{cb},
		Version:  version,
	}

	api := newAPIServer(ctx, cfg, apiHandler(cfg, svc, health, logger))
	ops := newOpsServer(cfg, health)

	logger.Info("feed server starting",
		slog.String("version", version),
		slog.String("base_url", cfg.BaseURL),
		slog.Int("port", cfg.HTTP.Port),
		slog.Int("metrics_port", cfg.HTTP.MetricsPort),
		slog.Float64("rate_limit", cfg.HTTP.RateLimit),
		slog.Int("rate_burst", cfg.HTTP.RateBurst))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return listen(logger, "api", api) })
	g.Go(func() error { return listen(logger, "metrics", ops) })
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return errors.Join(api.Shutdown(shutdownCtx), ops.Shutdown(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("servers stopped")
	return nil
}

// apiHandler builds the feed API routes and middleware chain.
// Order: request ID, tracing, recovery, logging, metrics, security headers.
func apiHandler(cfg *config.FeedConfig, svc hfeed.Renderer, health http.Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	limiter := rate.NewLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst)
	hfeed.Register(mux, svc, limiter, logger, renderOptions(cfg.Indent)...)
	mux.Handle("GET /health", health)
	mux.Handle("GET /health/live", hhttp.LiveHandler{})

	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
		hhttp.SecurityHeaders,
	)
}

func newAPIServer(ctx context.Context, cfg *config.FeedConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}
}

func newOpsServer(cfg *config.FeedConfig, health http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /health", health)
	mux.Handle("GET /health/live", hhttp.LiveHandler{})

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func listen(logger *slog.Logger, name string, srv *http.Server) error {
	logger.Info("listening", slog.String("server", name), slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", name, err)
	}
	return nil
}
