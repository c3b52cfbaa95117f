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

	"github.com/nadimk/schoolhub/internal/config"
	"github.com/nadimk/schoolhub/internal/metrics"
	"github.com/nadimk/schoolhub/internal/models"
	"github.com/nadimk/schoolhub/internal/server"
	"github.com/nadimk/schoolhub/internal/service"
	"github.com/nadimk/schoolhub/internal/storage"
	"github.com/nadimk/schoolhub/internal/storage/jsonfile"
	"github.com/nadimk/schoolhub/internal/storage/sqlite"
	"github.com/nadimk/schoolhub/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.Env)

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("storage initialized", "backend", cfg.Backend)

	validator := models.NewValidator(models.Mode(cfg.ValidationMode))
	svc := service.New(validator, store, metrics.New())

	// Warm start: an empty or missing snapshot just yields an empty
	// registry.
	report, err := svc.LoadAll(context.Background())
	if err != nil {
		slog.Warn("starting with an empty registry", "error", err)
	} else if len(report.Skipped) > 0 {
		slog.Warn("snapshot loaded with skipped records", "skipped", len(report.Skipped))
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.NewMux(svc),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "address", cfg.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	// Flush the registry so a clean shutdown never loses records.
	if err := svc.SaveAll(context.Background()); err != nil {
		return fmt.Errorf("failed to save snapshot on shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Backend {
	case "jsonfile":
		return jsonfile.New(cfg.SnapshotPath)
	case "sqlite":
		return sqlite.New(cfg.DBPath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
