// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kraklabs/strata-foundry/internal/config"
	"github.com/kraklabs/strata-foundry/pkg/bridge"
	"github.com/kraklabs/strata-foundry/pkg/ffi"
	"github.com/kraklabs/strata-foundry/pkg/protocol"
	"github.com/kraklabs/strata-foundry/pkg/services"
)

// Database is an open database with its transport, client and façades
// wired together.
type Database struct {
	Transport *bridge.Transport
	Client    *bridge.Client
	Services  *services.Set

	// Path is the database directory, or empty for an in-memory database.
	Path string
}

// Close shuts the transport down, releasing the handle.
func (d *Database) Close() error {
	if d == nil || d.Transport == nil {
		return nil
	}
	d.Transport.Shutdown()
	return nil
}

// Open opens the database described by cfg. A nil lib loads the native
// bridge, which fails with ffi.ErrNativeUnavailable in builds without it.
// A nil logger uses slog.Default().
func Open(ctx context.Context, cfg *config.Config, lib ffi.Library, logger *slog.Logger) (*Database, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if lib == nil {
		native, err := ffi.Native()
		if err != nil {
			return nil, err
		}
		lib = native
	}

	db := cfg.Database
	if !db.InMemory && db.Options.AccessMode != protocol.AccessReadOnly {
		if err := os.MkdirAll(db.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	logger.Info("bootstrap.db.open",
		"path", db.Path,
		"in_memory", db.InMemory,
		"access_mode", string(db.Options.AccessMode),
		"durability", string(db.Options.Durability),
	)

	t := bridge.NewTransport(lib, bridge.WithLogger(logger))
	var err error
	if db.InMemory {
		_, err = t.OpenMemory(ctx)
	} else {
		_, err = t.Open(ctx, db.Path, &db.Options)
	}
	if err != nil {
		t.Shutdown()
		logger.Warn("bootstrap.db.open.failed", "path", db.Path, "err", err)
		return nil, err
	}

	client := bridge.NewClient(t)
	out := &Database{
		Transport: t,
		Client:    client,
		Services:  services.New(client),
	}
	if !db.InMemory {
		out.Path = db.Path
	}
	return out, nil
}

// NewLogger returns a text logger writing to w at the given log_level.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
