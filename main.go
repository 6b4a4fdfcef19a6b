package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	appLogger "github.com/FACorreiaa/go-tourism-api/app/logger"
	"github.com/FACorreiaa/go-tourism-api/app/observability/metrics"
	"github.com/FACorreiaa/go-tourism-api/app/tracer"
	"github.com/FACorreiaa/go-tourism-api/config"
	_ "github.com/FACorreiaa/go-tourism-api/docs"
	"github.com/FACorreiaa/go-tourism-api/internal/container"
	"github.com/FACorreiaa/go-tourism-api/internal/router"
)

// @title        Tourism Recommendation API
// @version      1.0.0
// @description  Read-only city and attraction reference data with top rated recommendations.
// @BasePath     /
func main() {
	// Use standard log until slog is configured, in case godotenv fails
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := appLogger.New(cfg.Mode, os.Stdout)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	providers, metricsHandler, err := tracer.InitTracingAndMetrics()
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.Any("error", err))
		os.Exit(1)
	}
	if err := metrics.InitAppMetrics(); err != nil {
		logger.Error("Failed to initialize app metrics", slog.Any("error", err))
		os.Exit(1)
	}

	// The dataset is loaded exactly once; without it there is nothing to serve.
	c, err := container.NewContainer(ctx, &cfg, logger)
	if err != nil {
		logger.Error("Failed to load city dataset", slog.Any("error", err))
		os.Exit(1)
	}
	defer c.Close()

	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.HTTPPort),
		Handler:      newHTTPHandler(c, logger),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	var metricsServer *http.Server
	if cfg.Handlers.Prometheus.Port != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", metricsHandler)
		metricsServer = &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.Handlers.Prometheus.Port),
			Handler:           metricsMux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return serve(logger, "api", apiServer) })
	if metricsServer != nil {
		g.Go(func() error { return serve(logger, "metrics", metricsServer) })
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		errs := []error{apiServer.Shutdown(shutdownCtx)}
		if metricsServer != nil {
			errs = append(errs, metricsServer.Shutdown(shutdownCtx))
		}
		errs = append(errs, providers.Shutdown(shutdownCtx))
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Application shut down complete.")
}

// newHTTPHandler assembles the server-wide middleware around the API router.
func newHTTPHandler(c *container.Container, logger *slog.Logger) http.Handler {
	r := chi.NewMux()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(c.Config.Server.Timeout))
	r.Use(middleware.Compress(5, "application/json"))

	r.Mount("/", router.SetupRouter(&router.Config{
		CityHandler:       c.CityHandler,
		AllowedOrigins:    c.Config.CORS.AllowedOrigins,
		RateLimitRequests: c.Config.RateLimit.Requests,
		RateLimitWindow:   c.Config.RateLimit.Window,
	}))

	return otelhttp.NewHandler(r, "tourism-api")
}

func serve(logger *slog.Logger, name string, srv *http.Server) error {
	logger.Info("Starting HTTP server", slog.String("server", name), slog.String("address", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", name, err)
	}
	return nil
}
