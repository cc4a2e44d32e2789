package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nexus-network/ledger/internal/config"
	"github.com/nexus-network/ledger/internal/infra"
	"github.com/nexus-network/ledger/internal/ledger"
	"github.com/nexus-network/ledger/internal/logging"
	"github.com/nexus-network/ledger/internal/notification"
	"github.com/nexus-network/ledger/internal/persistence"
	"github.com/nexus-network/ledger/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.AppName)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("server exited cleanly")
}

// run owns every resource it opens so deferred cleanup always executes
// before main exits.
func run(cfg config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	backend := infra.OpenBackend(ctx, cfg, logger)
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("close backend", "error", err)
		}
	}()

	notifier, err := notification.NewPoolNotifier(notification.NewLoggerNotifier(logger), cfg.NotifyWorkers, logger)
	if err != nil {
		return fmt.Errorf("build notifier: %w", err)
	}
	defer func() {
		if err := notifier.Release(5 * time.Second); err != nil {
			logger.Warn("release notifier", "error", err)
		}
	}()

	svc := ledger.NewService(ctx, persistence.NewAdapter(backend.Store, logger), ledger.Options{
		Notifier:       notifier,
		Logger:         logger,
		PersistTimeout: cfg.StoreTimeout,
	})

	srv, err := server.New(cfg, svc, backend, logger)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
