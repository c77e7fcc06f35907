package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/narwhalmedia/catalog/internal/config"
	"github.com/narwhalmedia/catalog/internal/container"
	gormrepo "github.com/narwhalmedia/catalog/internal/infrastructure/persistence/gorm"
	"github.com/narwhalmedia/catalog/internal/middleware"
	"github.com/narwhalmedia/catalog/pkg/database"
	"github.com/narwhalmedia/catalog/pkg/interfaces"
	"github.com/narwhalmedia/catalog/pkg/logger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	zl, err := logger.NewFromConfig(cfg.Logger.Zap())
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	log := zl.Zap().With(zap.String("service", cfg.Service.Name))
	defer log.Sync()

	log.Info("starting service",
		zap.String("version", version),
		zap.String("environment", cfg.Service.Environment),
		zap.String("storage", cfg.Storage.Type),
		zap.String("broker", cfg.Broker.Type),
	)

	if err := run(cfg, log); err != nil {
		log.Fatal("service failed", zap.Error(err))
	}
	log.Info("service shutdown complete")
}

func run(cfg *config.Config, log *zap.Logger) error {
	serviceContainer, cleanup, err := container.InitializeCatalog(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer cleanup()

	if !cfg.Service.IsProduction() {
		if err := gormrepo.Migrate(context.Background(), serviceContainer.DB, log); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumerDone := make(chan error, 1)
	go func() {
		consumerDone <- serviceContainer.Consumer.Start(ctx)
	}()

	httpServer := &http.Server{
		Addr:              cfg.Service.ListenAddress(),
		Handler:           middleware.Chain(healthHandler(serviceContainer), middleware.Logging(log), middleware.Recovery(log)),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("starting health server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("health server failed", zap.Error(err))
			stop()
		}
	}()

	return awaitShutdown(ctx, stop, consumerDone, httpServer.Shutdown, cfg.Service.ShutdownTimeout, log)
}

// awaitShutdown blocks until ctx is cancelled or the consumer stops, then
// shuts the server down and waits for the consumer. A consumer failure is
// returned.
func awaitShutdown(
	ctx context.Context,
	stop context.CancelFunc,
	consumerDone <-chan error,
	shutdown func(context.Context) error,
	timeout time.Duration,
	log *zap.Logger,
) error {
	var consumerErr error
	consumerStopped := false

	select {
	case <-ctx.Done():
	case consumerErr = <-consumerDone:
		consumerStopped = true
		if consumerErr != nil {
			log.Error("encoder result consumer stopped", zap.Error(consumerErr))
		}
	}
	stop()

	log.Info("shutting down service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown health server", zap.Error(err))
	}

	if !consumerStopped {
		select {
		case consumerErr = <-consumerDone:
		case <-shutdownCtx.Done():
			log.Warn("shutdown timeout exceeded waiting for consumer")
		}
	}

	if consumerErr != nil {
		return fmt.Errorf("encoder result consumer: %w", consumerErr)
	}
	return nil
}

func healthHandler(c *container.CatalogContainer) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := database.Ping(r.Context(), c.DB); err != nil {
			logger.FromContext(r.Context()).Warn("health check failed", interfaces.Error(err))
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}
