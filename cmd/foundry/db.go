// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	goerrors "errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kraklabs/strata-foundry/internal/bootstrap"
	"github.com/kraklabs/strata-foundry/internal/config"
	"github.com/kraklabs/strata-foundry/internal/errors"
)

// resolveConfig builds the effective config from the config file and the
// global flags. --memory needs no file; --db works without one.
func resolveConfig(globals GlobalFlags) (*config.Config, error) {
	if globals.InMemory {
		return &config.Config{Database: config.DatabaseConfig{InMemory: true}}, nil
	}

	cfg, err := config.LoadConfig(globals.ConfigPath)
	switch {
	case err == nil:
	case goerrors.Is(err, config.ErrNotFound) && globals.DBPath != "":
		cfg = &config.Config{}
		cfg.ApplyEnv()
	case goerrors.Is(err, config.ErrNotFound):
		return nil, errors.NewConfigError(
			"No foundry configuration found",
			err.Error(),
			"Run 'foundry init', or pass --db <path> or --memory",
			err,
		)
	default:
		return nil, errors.NewConfigError(
			"Cannot load configuration",
			err.Error(),
			"Fix .strata/foundry.yaml or pass --config",
			err,
		)
	}

	if globals.DBPath != "" {
		cfg.Database.Path = globals.DBPath
		cfg.Database.InMemory = false
	}
	if globals.MetricsAddr != "" {
		cfg.MetricsAddr = globals.MetricsAddr
	}
	return cfg, nil
}

// logLevel picks the log level: -v and -vv win over the config file, and
// the CLI defaults to warnings only.
func logLevel(globals GlobalFlags, cfg *config.Config) string {
	switch {
	case globals.Verbose >= 2:
		return "debug"
	case globals.Verbose == 1:
		return "info"
	case cfg.LogLevel != "" && cfg.LogLevel != "info":
		return cfg.LogLevel
	default:
		return "warn"
	}
}

// openDatabase opens the configured database through the native bridge.
// Errors are returned as *errors.UserError.
func openDatabase(ctx context.Context, globals GlobalFlags) (*bootstrap.Database, *slog.Logger, error) {
	cfg, err := resolveConfig(globals)
	if err != nil {
		return nil, nil, err
	}
	logger, err := bootstrap.NewLogger(os.Stderr, logLevel(globals, cfg))
	if err != nil {
		return nil, nil, errors.NewConfigError("Invalid log level", err.Error(), "Use debug, info, warn or error", err)
	}
	if cfg.MetricsAddr != "" {
		startMetricsServer(cfg.MetricsAddr, logger)
	}

	db, err := bootstrap.Open(ctx, cfg, nil, logger)
	if err != nil {
		return nil, nil, errors.FromBridge("Cannot open database", err)
	}
	return db, logger, nil
}

func startMetricsServer(addr string, logger *slog.Logger) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		logger.Info("metrics.http.start", "addr", addr, "path", "/metrics")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics.http.error", "err", err)
		}
	}()
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// withDatabase opens the database, runs fn and shuts the transport down.
// A zero timeout means no deadline. Any error is fatal.
func withDatabase(globals GlobalFlags, timeout time.Duration, fn func(ctx context.Context, db *bootstrap.Database) error) {
	ctx, stop := signalContext()
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	db, _, err := openDatabase(ctx, globals)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	err = fn(ctx, db)
	_ = db.Close()
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
}
