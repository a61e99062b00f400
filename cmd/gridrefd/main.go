package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pspoerri/photogridref/internal/config"
	"github.com/pspoerri/photogridref/internal/locate"
	"github.com/pspoerri/photogridref/internal/logging"
	"github.com/pspoerri/photogridref/internal/metrics"
	"github.com/pspoerri/photogridref/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Canceled on interrupt so the server can drain in-flight requests.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := logging.New(cfg.Env)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	router := server.NewRouter(server.Options{
		Logger:        logger,
		Metrics:       appMetrics,
		Gatherer:      reg,
		Locate:        locate.Options{IrishLevel: cfg.IrishLevel, Logger: logger},
		MaxImageBytes: cfg.MaxImageBytes,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "Starting server", slog.Int("port", cfg.Port),
			slog.String("irish_level", cfg.IrishLevel.String()),
			slog.Int64("max_image_bytes", cfg.MaxImageBytes))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "Server failed", slog.String("error", err.Error()))
			stop()
			os.Exit(1)
		}
		return
	case <-ctx.Done():
	}

	logger.InfoContext(ctx, "Shutdown signal received. Stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "Graceful shutdown failed", slog.String("error", err.Error()))
		return
	}
	logger.InfoContext(shutdownCtx, "Server stopped gracefully.")
}
