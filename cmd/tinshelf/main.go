// tinshelf — read-only HTTP shop server for game backup images.
//
// Features:
// - Multiple source directories published under stable aliases
// - Resumable byte-range downloads of very large files
// - Short-TTL in-memory listing cache
// - Optional static Basic Auth
// - Prometheus metrics & structured logging (zap)
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tinshelf/tinshelf/internal/api"
	"github.com/tinshelf/tinshelf/internal/config"
	"github.com/tinshelf/tinshelf/internal/logging"
	"github.com/tinshelf/tinshelf/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Can't use structured logging yet
		panic("configuration error: " + err.Error())
	}

	if err := logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}); err != nil {
		panic("logging init error: " + err.Error())
	}
	defer logging.Sync()

	logging.Info("tinshelf starting...",
		zap.String("listen", cfg.ListenAddr),
		zap.String("metrics", cfg.MetricsAddr),
		zap.Strings("source_dirs", cfg.SourceDirs),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Bool("auth", cfg.AuthEnabled()))

	srv := api.NewServer(cfg)

	metricsServer := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: metrics.Handler(),
	}
	go func() {
		logging.Info("metrics server listening", zap.String("addr", cfg.MetricsAddr))
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logging.Error("metrics server error", zap.Error(err))
		}
	}()

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Handler(),
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logging.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
		metricsServer.Close()
	}()

	logging.Info("server listening", zap.String("addr", cfg.ListenAddr))
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		logging.Fatal("server error", zap.Error(err))
	}
}
