// Package main is the entry point for the Gv scoring server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/onnwee/homemixer/internal/api"
	"github.com/onnwee/homemixer/internal/config"
	"github.com/onnwee/homemixer/internal/middleware"
	"github.com/onnwee/homemixer/internal/pipeline"
	"github.com/onnwee/homemixer/internal/ranking"
	"github.com/onnwee/homemixer/internal/tracing"
)

const (
	serviceName     = "homemixer-gv"
	shutdownTimeout = 10 * time.Second
)

func main() {
	help := flag.Bool("help", false, "display help message")
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	if *help {
		fmt.Println("Home Mixer Gv Scoring Server")
		fmt.Println()
		fmt.Println("Usage: api [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	cfg, errs := config.Load(*configPath)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		}
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg.Env)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "config", cfg.LogSummary())

	tp, err := tracing.NewProvider(tracing.Config{
		ServiceName:  serviceName,
		Enabled:      cfg.TracingEnabled,
		Environment:  cfg.Env,
		ExporterType: cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplingRate: cfg.TracingSampleRate,
		InsecureMode: cfg.TracingInsecure,
	})
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("failed to shut down tracing", "error", err)
		}
	}()

	handler, err := newHandler(cfg, logger, prometheus.NewRegistry())
	if err != nil {
		logger.Error("failed to build handler", "error", err)
		os.Exit(1)
	}

	addr := ":" + strconv.Itoa(cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("failed to listen", "addr", addr, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, newServer(handler), ln, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newHandler wires the scorer, its runner, and the HTTP middleware chain:
// RequestID -> Tracing -> Logging -> HTTPMetrics -> routes.
func newHandler(cfg *config.Config, logger *slog.Logger, reg *prometheus.Registry) (http.Handler, error) {
	var (
		scorerMetrics *pipeline.Metrics
		httpMetrics   *middleware.Metrics
		gatherer      prometheus.Gatherer
	)
	if cfg.MetricsEnabled {
		scorerMetrics = pipeline.NewMetrics()
		if err := scorerMetrics.Register(reg); err != nil {
			return nil, fmt.Errorf("failed to register scorer metrics: %w", err)
		}
		httpMetrics = middleware.NewMetrics()
		if err := httpMetrics.Register(reg); err != nil {
			return nil, fmt.Errorf("failed to register http metrics: %w", err)
		}
		if err := reg.Register(collectors.NewGoCollector()); err != nil {
			return nil, fmt.Errorf("failed to register go collector: %w", err)
		}
		gatherer = reg
	}

	runner := pipeline.NewRunner(pipeline.RunnerConfig{
		Parallelism: cfg.ScorerParallelism,
		ShardSize:   cfg.ScorerShardSize,
		Metrics:     scorerMetrics,
		Logger:      logger,
	})

	mux := api.NewRouter(api.RouterConfig{
		Score:    api.NewScoreHandlers(runner, ranking.NewGvScorer(), cfg.MaxBatchSize),
		Health:   api.NewHealthHandlers(cfg.MetricsEnabled),
		Gatherer: gatherer,
	})

	var handler http.Handler = mux
	if httpMetrics != nil {
		handler = middleware.HTTPMetrics(httpMetrics)(handler)
	}
	handler = middleware.Logging(logger)(handler)
	if cfg.TracingEnabled {
		handler = middleware.Tracing(serviceName)(handler)
	}
	return middleware.RequestID(handler), nil
}

func newServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// serve runs server on ln until ctx is done, then drains in-flight requests
// for up to shutdownTimeout.
func serve(ctx context.Context, server *http.Server, ln net.Listener, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
