// Copyright 2026 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main implements foundry, a developer CLI over the Strata bridge.
//
// Usage:
//
//	foundry init                     Create .strata/foundry.yaml
//	foundry ping                     Check that the native bridge is linked
//	foundry exec '<command json>'    Send one raw command
//	foundry inspect [--json]         Print the standard debug command set
//	foundry seed                     Write the sample dataset
//	foundry kv get|put|del|list      Work with KV entries
//	foundry branches list|create|fork|diff|merge|delete
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/strata-foundry/internal/ui"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GlobalFlags are the flags accepted before the command name.
type GlobalFlags struct {
	JSON        bool
	NoColor     bool
	Quiet       bool
	Verbose     int
	ConfigPath  string
	DBPath      string
	InMemory    bool
	MetricsAddr string
}

func main() {
	var globals GlobalFlags
	showVersion := false

	fs := flag.NewFlagSet("foundry", flag.ExitOnError)
	fs.SetInterspersed(false)
	fs.BoolVar(&showVersion, "version", false, "Show version and exit")
	fs.BoolVar(&globals.JSON, "json", false, "Machine-readable output")
	fs.BoolVar(&globals.NoColor, "no-color", os.Getenv("NO_COLOR") != "", "Disable colored output")
	fs.BoolVarP(&globals.Quiet, "quiet", "q", false, "Suppress progress output")
	fs.CountVarP(&globals.Verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	fs.StringVarP(&globals.ConfigPath, "config", "c", "", "Path to foundry.yaml (default: ./.strata/foundry.yaml)")
	fs.StringVar(&globals.DBPath, "db", "", "Database path (overrides database.path)")
	fs.BoolVar(&globals.InMemory, "memory", false, "Use an ephemeral in-memory database")
	fs.StringVar(&globals.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9464)")
	fs.Usage = usage(fs)

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}
	if globals.JSON {
		globals.Quiet = true
	}
	ui.InitColors(globals.NoColor)

	if showVersion {
		fmt.Printf("foundry version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		os.Exit(1)
	}

	command, cmdArgs := args[0], args[1:]
	switch command {
	case "init":
		runInit(cmdArgs, globals)
	case "ping":
		runPing(cmdArgs, globals)
	case "exec":
		runExec(cmdArgs, globals)
	case "inspect":
		runInspect(cmdArgs, globals)
	case "seed":
		runSeed(cmdArgs, globals)
	case "kv":
		runKV(cmdArgs, globals)
	case "branches":
		runBranches(cmdArgs, globals)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		fs.Usage()
		os.Exit(1)
	}
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(os.Stderr, `foundry - developer CLI for Strata databases

Usage:
  foundry [global options] <command> [options]

Commands:
  init        Create .strata/foundry.yaml
  ping        Check that the native bridge is linked
  exec        Send one raw command and print the reply
  inspect     Print the standard debug command set
  seed        Write the sample dataset and flush
  kv          Get, put, delete and list KV entries
  branches    List, create, fork, diff, merge and delete branches

Global Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  foundry init
  foundry --memory seed
  foundry exec '{"KvGet":{"key":"user:alice"}}'
  foundry --json inspect
  foundry branches fork default experiment

Environment Variables:
  STRATA_DB_PATH         Database path (overrides database.path)
  STRATA_MODEL_API_KEY   API key passed to the engine's model client
  NO_COLOR               Disable colored output

For detailed command help: foundry <command> --help
`)
	}
}
