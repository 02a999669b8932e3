// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/strata-foundry/internal/config"
	"github.com/kraklabs/strata-foundry/internal/errors"
	"github.com/kraklabs/strata-foundry/internal/ui"
	"github.com/kraklabs/strata-foundry/pkg/protocol"
)

type initFlags struct {
	force      bool
	dbPath     string
	inMemory   bool
	durability string
	autoEmbed  bool
	modelURL   string
	modelName  string
	logLevel   string
}

// runInit writes .strata/foundry.yaml in the working directory.
func runInit(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var f initFlags
	fs.BoolVar(&f.force, "force", false, "Overwrite an existing configuration")
	fs.StringVar(&f.dbPath, "db", "", "Database path (default: .strata/data)")
	fs.BoolVar(&f.inMemory, "memory", false, "Configure an in-memory database")
	fs.StringVar(&f.durability, "durability", "", "WAL sync policy: standard or always")
	fs.BoolVar(&f.autoEmbed, "auto-embed", false, "Enable automatic embedding of written text")
	fs.StringVar(&f.modelURL, "model-endpoint", "", "Model endpoint for embedding and generation")
	fs.StringVar(&f.modelName, "model-name", "", "Model name")
	fs.StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: foundry init [options]

Creates .strata/foundry.yaml. Keep API keys out of the file: set
STRATA_MODEL_API_KEY instead.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  foundry init
  foundry init --db /var/lib/strata --durability always
  foundry init --memory --force
`)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cwd, err := os.Getwd()
	if err != nil {
		errors.FatalError(errors.NewInternalError("Cannot get current directory", err.Error(), "", err), globals.JSON)
	}
	if err := doInit(os.Stdout, cwd, f); err != nil {
		errors.FatalError(err, globals.JSON)
	}
}

func doInit(w io.Writer, root string, f initFlags) error {
	path := config.ConfigPath(root)
	if _, err := os.Stat(path); err == nil && !f.force {
		return errors.NewInputError(path+" already exists", "", "Use --force to overwrite")
	}

	cfg := config.DefaultConfig(root)
	cfg.LogLevel = f.logLevel
	if f.dbPath != "" {
		cfg.Database.Path = f.dbPath
	}
	if f.inMemory {
		cfg.Database.Path = ""
		cfg.Database.InMemory = true
	}
	opts := &cfg.Database.Options
	opts.Durability = protocol.Durability(f.durability)
	if f.autoEmbed {
		opts.AutoEmbed = protocol.Ptr(true)
	}
	if f.modelURL != "" {
		opts.ModelEndpoint = &f.modelURL
	}
	if f.modelName != "" {
		opts.ModelName = &f.modelName
	}

	if err := cfg.Validate(); err != nil {
		return errors.NewInputError("Invalid configuration", err.Error(), "Run 'foundry init --help'")
	}
	if err := config.SaveConfig(cfg, path); err != nil {
		return errors.NewConfigError("Cannot save configuration", err.Error(), "Check permissions on "+config.ConfigDir(root), err)
	}

	ui.Successf(w, "Created %s", path)
	addToGitignore(root)
	return nil
}

// addToGitignore appends .strata/ to root's .gitignore when the file exists
// and does not list it yet. Failures are ignored.
func addToGitignore(root string) {
	gitignorePath := filepath.Join(root, ".gitignore")
	content, err := os.ReadFile(gitignorePath) //nolint:gosec // G304: path built from the working directory
	if err != nil {
		return
	}

	for _, line := range strings.Split(string(content), "\n") {
		switch strings.TrimSpace(line) {
		case ".strata", ".strata/", "/.strata", "/.strata/":
			return
		}
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_WRONLY, 0o600) //nolint:gosec // G304: path built from the working directory
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	if len(content) > 0 && content[len(content)-1] != '\n' {
		_, _ = f.WriteString("\n")
	}
	_, _ = f.WriteString("\n# Strata foundry\n.strata/\n")
}
