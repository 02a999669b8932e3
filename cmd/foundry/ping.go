// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/strata-foundry/internal/bootstrap"
	"github.com/kraklabs/strata-foundry/internal/errors"
	"github.com/kraklabs/strata-foundry/internal/output"
	"github.com/kraklabs/strata-foundry/internal/ui"
	"github.com/kraklabs/strata-foundry/pkg/bridge"
	"github.com/kraklabs/strata-foundry/pkg/ffi"
)

// PingResult is the --json output of ping.
type PingResult struct {
	Bridge        string `json:"bridge"`
	EngineVersion string `json:"engine_version,omitempty"`
}

// runPing checks that the native bridge is linked. With --open it also
// opens the configured database and asks the engine for its version.
func runPing(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("ping", flag.ExitOnError)
	open := fs.Bool("open", false, "Also open the configured database and ping the engine")
	timeout := fs.Duration("timeout", 10*time.Second, "Give up after this long")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: foundry ping [options]

Checks that the native Strata bridge is linked into this binary.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *open {
		withDatabase(globals, *timeout, func(ctx context.Context, db *bootstrap.Database) error {
			return doPing(ctx, os.Stdout, db, globals.JSON)
		})
		return
	}

	lib, err := ffi.Native()
	if err != nil {
		errors.FatalError(errors.FromBridge("Strata bridge is not available", err), globals.JSON)
	}
	t := bridge.NewTransport(lib)
	defer t.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := doPing(ctx, os.Stdout, &bootstrap.Database{Transport: t}, globals.JSON); err != nil {
		t.Shutdown()
		errors.FatalError(err, globals.JSON)
	}
}

// doPing pings the bridge and, when db has services, the engine.
func doPing(ctx context.Context, w io.Writer, db *bootstrap.Database, jsonOutput bool) error {
	id, err := db.Transport.Ping(ctx)
	if err != nil {
		return errors.FromBridge("Bridge ping failed", err)
	}
	result := PingResult{Bridge: id}

	if db.Services != nil {
		result.EngineVersion, err = db.Services.Admin.Ping(ctx)
		if err != nil {
			return errors.FromBridge("Engine ping failed", err)
		}
	}

	if jsonOutput {
		return output.JSONTo(w, result)
	}
	ui.Successf(w, "Bridge %s", result.Bridge)
	if result.EngineVersion != "" {
		ui.Successf(w, "Engine %s", result.EngineVersion)
	}
	return nil
}
