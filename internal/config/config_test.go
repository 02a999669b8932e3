// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/strata-foundry/pkg/protocol"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvModelAPIKey, "")

	path := writeConfig(t, `
database:
  path: /var/lib/strata
  options:
    access_mode: read_only
    durability: always
    embed_batch_size: 16
log_level: debug
metrics_addr: 127.0.0.1:9464
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/strata", cfg.Database.Path)
	assert.False(t, cfg.Database.InMemory)
	assert.Equal(t, protocol.AccessReadOnly, cfg.Database.Options.AccessMode)
	assert.Equal(t, protocol.DurabilityAlways, cfg.Database.Options.Durability)
	require.NotNil(t, cfg.Database.Options.EmbedBatchSize)
	assert.Equal(t, uint64(16), *cfg.Database.Options.EmbedBatchSize)
	assert.Nil(t, cfg.Database.Options.AutoEmbed)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9464", cfg.MetricsAddr)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvDBPath, "/tmp/override")
	t.Setenv(EnvModelAPIKey, "sk-test")

	path := writeConfig(t, "database:\n  in_memory: true\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/override", cfg.Database.Path)
	assert.False(t, cfg.Database.InMemory, "an explicit path wins over in_memory")
	require.NotNil(t, cfg.Database.Options.ModelAPIKey)
	assert.Equal(t, "sk-test", *cfg.Database.Options.ModelAPIKey)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvModelAPIKey, "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrNotFound)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "database: [", "parse config"},
		{"no path", "log_level: info\n", "database.path is required"},
		{"bad durability", "database:\n  path: x\n  options:\n    durability: sometimes\n", "invalid durability"},
		{"bad level", "database:\n  path: x\nlog_level: loud\n", "invalid log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Setenv(EnvDBPath, "")
	t.Setenv(EnvModelAPIKey, "")

	root := t.TempDir()
	cfg := DefaultConfig(root)
	cfg.Database.Options.AutoEmbed = protocol.Ptr(true)

	path := ConfigPath(root)
	require.NoError(t, SaveConfig(cfg, path))
	assert.FileExists(t, path)

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, filepath.Join(root, ".strata", "data"), loaded.Database.Path)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"debug": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
