// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the foundry configuration file, .strata/foundry.yaml.
//
// A minimal file:
//
//	database:
//	  path: ./data/strata
//	  options:
//	    durability: always
//	log_level: info
//
// STRATA_DB_PATH overrides database.path and STRATA_MODEL_API_KEY overrides
// database.options.model_api_key, so secrets need not live in the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/strata-foundry/pkg/protocol"
)

const (
	// DirName is the directory holding the config file, relative to the
	// working directory.
	DirName = ".strata"

	// FileName is the config file name inside DirName.
	FileName = "foundry.yaml"

	// EnvDBPath overrides database.path.
	EnvDBPath = "STRATA_DB_PATH"

	// EnvModelAPIKey overrides database.options.model_api_key.
	EnvModelAPIKey = "STRATA_MODEL_API_KEY"
)

// ErrNotFound is returned by LoadConfig when no config file exists.
var ErrNotFound = errors.New("config file not found")

// Config is the foundry configuration.
type Config struct {
	Database    DatabaseConfig `yaml:"database"`
	LogLevel    string         `yaml:"log_level,omitempty"`
	MetricsAddr string         `yaml:"metrics_addr,omitempty"`
}

// DatabaseConfig says which database to open and how.
type DatabaseConfig struct {
	// Path of the database directory. Ignored when InMemory is set.
	Path     string               `yaml:"path,omitempty"`
	InMemory bool                 `yaml:"in_memory,omitempty"`
	Options  protocol.OpenOptions `yaml:"options,omitempty"`
}

// ConfigDir returns the config directory under root.
func ConfigDir(root string) string {
	return filepath.Join(root, DirName)
}

// ConfigPath returns the config file path under root.
func ConfigPath(root string) string {
	return filepath.Join(ConfigDir(root), FileName)
}

// DefaultConfig returns a config for a persistent database at
// .strata/data under root.
func DefaultConfig(root string) *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(ConfigDir(root), "data"),
		},
		LogLevel: "info",
	}
}

// LoadConfig reads the config at path. An empty path means ConfigPath of the
// working directory. Environment overrides are applied before validation.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		path = ConfigPath(cwd)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path, creating its directory.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ApplyEnv copies environment overrides into c.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Database.Path = v
		c.Database.InMemory = false
	}
	if v := os.Getenv(EnvModelAPIKey); v != "" {
		c.Database.Options.ModelAPIKey = &v
	}
}

// Validate checks the config without touching the filesystem.
func (c *Config) Validate() error {
	if !c.Database.InMemory && c.Database.Path == "" {
		return errors.New("database.path is required unless database.in_memory is set")
	}
	if err := c.Database.Options.Validate(); err != nil {
		return fmt.Errorf("database.options: %w", err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log_level value to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log_level %q (want debug, info, warn or error)", s)
	}
}
