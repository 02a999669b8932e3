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

	"github.com/schollz/progressbar/v3"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/strata-foundry/internal/bootstrap"
	"github.com/kraklabs/strata-foundry/internal/errors"
	"github.com/kraklabs/strata-foundry/internal/output"
	"github.com/kraklabs/strata-foundry/internal/ui"
	"github.com/kraklabs/strata-foundry/pkg/services"
)

// SeedResult counts what seed wrote.
type SeedResult struct {
	KV       int `json:"kv"`
	State    int `json:"state"`
	Events   int `json:"events"`
	Docs     int `json:"docs"`
	Branches int `json:"branches"`
}

// runSeed writes the sample dataset through the service façades and
// flushes.
func runSeed(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	timeout := fs.Duration("timeout", 2*time.Minute, "Give up waiting after this long")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: foundry seed [options]

Writes a sample dataset: 14 KV keys, 8 state cells, 20 events, 4 JSON
documents and the branches experiment and staging. The database should be
empty; existing branches with those names make seed fail.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  foundry --memory seed
  foundry --db ./sample seed && foundry --db ./sample inspect
`)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	withDatabase(globals, *timeout, func(ctx context.Context, db *bootstrap.Database) error {
		data := sample()
		bar := NewProgressBar(NewProgressConfig(globals), int64(data.steps()), "Seeding")
		result, err := doSeed(ctx, db.Services, data, bar)
		finish(bar)
		if err != nil {
			return err
		}
		return printSeed(os.Stdout, result, globals.JSON)
	})
}

func doSeed(ctx context.Context, svc *services.Set, data sampleData, bar *progressbar.ProgressBar) (SeedResult, error) {
	var res SeedResult

	for _, e := range data.KV {
		if _, err := svc.KV.Put(ctx, e.Key, e.Value); err != nil {
			return res, errors.FromBridge("Cannot write "+e.Key, err)
		}
		res.KV++
		advance(bar, "kv")
	}
	for _, e := range data.State {
		if _, err := svc.State.Set(ctx, e.Key, e.Value); err != nil {
			return res, errors.FromBridge("Cannot write state "+e.Key, err)
		}
		res.State++
		advance(bar, "state")
	}
	for _, e := range data.Events {
		if _, err := svc.Events.Append(ctx, e.Type, e.Payload); err != nil {
			return res, errors.FromBridge("Cannot append "+e.Type+" event", err)
		}
		res.Events++
		advance(bar, "events")
	}
	for _, e := range data.Docs {
		if _, err := svc.JSON.Set(ctx, e.Key, services.RootPath, e.Value); err != nil {
			return res, errors.FromBridge("Cannot write document "+e.Key, err)
		}
		res.Docs++
		advance(bar, "json")
	}
	for _, name := range data.Branches {
		if _, _, err := svc.Branches.Create(ctx, &name, nil); err != nil {
			return res, errors.FromBridge("Cannot create branch "+name, err)
		}
		res.Branches++
		advance(bar, "branches")
	}

	if err := svc.Admin.Flush(ctx); err != nil {
		return res, errors.FromBridge("Cannot flush", err)
	}
	advance(bar, "flush")
	return res, nil
}

func printSeed(w io.Writer, res SeedResult, jsonOutput bool) error {
	if jsonOutput {
		return output.JSONTo(w, res)
	}
	ui.Success(w, "Sample dataset written")
	ui.Field(w, "KV:", 10, fmt.Sprintf("%s keys (user:*, config:*, counter:*, cache:*, session:*)", ui.CountText(uint64(res.KV))))
	ui.Field(w, "State:", 10, fmt.Sprintf("%s cells (agent:*, pipeline:*)", ui.CountText(uint64(res.State))))
	ui.Field(w, "Events:", 10, fmt.Sprintf("%s entries", ui.CountText(uint64(res.Events))))
	ui.Field(w, "JSON:", 10, fmt.Sprintf("%s documents", ui.CountText(uint64(res.Docs))))
	ui.Field(w, "Branches:", 10, fmt.Sprintf("%s created", ui.CountText(uint64(res.Branches))))
	return nil
}
