// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package bootstrap_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/strata-foundry/internal/bootstrap"
	"github.com/kraklabs/strata-foundry/internal/config"
	foundrytest "github.com/kraklabs/strata-foundry/internal/testing"
	"github.com/kraklabs/strata-foundry/pkg/bridge"
	"github.com/kraklabs/strata-foundry/pkg/protocol"
	"github.com/kraklabs/strata-foundry/pkg/value"
)

func TestOpen_InMemory(t *testing.T) {
	ctx := context.Background()
	engine := foundrytest.NewFakeEngine()

	db, err := bootstrap.Open(ctx, &config.Config{Database: config.DatabaseConfig{InMemory: true}}, engine, nil)
	require.NoError(t, err)

	assert.Empty(t, db.Path)
	_, err = db.Services.KV.Put(ctx, "k", value.Int(1))
	require.NoError(t, err)

	require.NoError(t, db.Close())
	require.NoError(t, db.Close())
	assert.Empty(t, engine.OpenHandles())
	foundrytest.AssertClean(t, engine)
}

func TestOpen_Persistent(t *testing.T) {
	ctx := context.Background()
	engine := foundrytest.NewFakeEngine()

	cfg := config.DefaultConfig(t.TempDir())
	cfg.Database.Options.Durability = protocol.DurabilityAlways

	db, err := bootstrap.Open(ctx, cfg, engine, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.Database.Path, db.Path)
	assert.DirExists(t, cfg.Database.Path)
	engineCfg, err := db.Services.Admin.Config(ctx)
	require.NoError(t, err)
	assert.Equal(t, "always", engineCfg.Durability)

	_, err = db.Services.KV.Put(ctx, "k", value.String("v"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening the same path sees earlier writes.
	db, err = bootstrap.Open(ctx, cfg, engine, nil)
	require.NoError(t, err)
	defer db.Close()

	got, err := db.Services.KV.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, value.String("v"), got.Value)
}

func TestOpen_Failures(t *testing.T) {
	ctx := context.Background()
	engine := foundrytest.NewFakeEngine()

	_, err := bootstrap.Open(ctx, nil, engine, nil)
	assert.Error(t, err)

	_, err = bootstrap.Open(ctx, &config.Config{}, engine, nil)
	assert.ErrorContains(t, err, "database.path is required")

	readOnly := &config.Config{Database: config.DatabaseConfig{
		Path:    filepath.Join(t.TempDir(), "never-created"),
		Options: protocol.OpenOptions{AccessMode: protocol.AccessReadOnly},
	}}
	_, err = bootstrap.Open(ctx, readOnly, engine, nil)
	require.Error(t, err)
	assert.True(t, bridge.IsBridge(err), "got %v", err)
	assert.Empty(t, engine.OpenHandles())
	foundrytest.AssertClean(t, engine)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := bootstrap.NewLogger(&buf, "warn")
	require.NoError(t, err)

	logger.Info("bootstrap.hidden")
	logger.Warn("bootstrap.shown", "path", "/tmp/db")
	assert.NotContains(t, buf.String(), "bootstrap.hidden")
	assert.Contains(t, buf.String(), "msg=bootstrap.shown path=/tmp/db")

	_, err = bootstrap.NewLogger(&buf, "chatty")
	assert.Error(t, err)
}
