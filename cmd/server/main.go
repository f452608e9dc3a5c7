// Package main is the entry point for the navnet server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/randytsao24/navnet/internal/api"
	"github.com/randytsao24/navnet/internal/config"
	"github.com/randytsao24/navnet/internal/netfile"
	"github.com/randytsao24/navnet/internal/network"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()

	if err := cfg.Validate(); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	wg := sync.WaitGroup{}

	// ----------------------------------------------------------------------------
	// Network

	def, err := netfile.Load(cfg.NetworkFile)
	if err != nil {
		return err
	}
	nav, placement, err := def.Open(logger, network.WithWorkers(cfg.RouteWorkers))
	if err != nil {
		return fmt.Errorf("opening network %s: %w", cfg.NetworkFile, err)
	}
	defer nav.Close()

	info := nav.Info()
	logger.Info("network loaded",
		"name", info.Name,
		"version", info.Version,
		"stations", nav.Graph().StationCount(),
		"stops", nav.Graph().StopCount(),
		"strategy", nav.Strategy().String(),
		"selection", nav.Finder().Selection().String(),
	)

	// ----------------------------------------------------------------------------
	// Server Setup

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(cfg, nav, placement, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.HTTPTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrs := make(chan error, 1)
	wg.Go(func() {
		defer close(serverErrs)

		logger.Info("starting http server", "addr", server.Addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrs <- fmt.Errorf("server error: %w", err)
		}
	})

	// ----------------------------------------------------------------------------
	// Shutdown

	select {
	case err := <-serverErrs:
		return fmt.Errorf("received server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down application")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	wg.Wait()
	return nil
}
