// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/kraklabs/strata-foundry/internal/bootstrap"
	"github.com/kraklabs/strata-foundry/internal/output"
	"github.com/kraklabs/strata-foundry/internal/ui"
	"github.com/kraklabs/strata-foundry/pkg/protocol"
)

// inspectCommand is one entry of the debug command set.
type inspectCommand struct {
	Name    string
	Command protocol.Command
}

// inspectCommands is the command set that shows what a database holds.
func inspectCommands() []inspectCommand {
	return []inspectCommand{
		{"Info", protocol.Info{}},
		{"KvList", protocol.KvList{}},
		{"KvGet user:alice", protocol.KvGet{Key: "user:alice"}},
		{"StateList", protocol.StateList{}},
		{"EventLen", protocol.EventLen{}},
		{"EventGet seq=0", protocol.EventGet{Sequence: 0}},
		{"EventGet seq=1", protocol.EventGet{Sequence: 1}},
		{"JsonList", protocol.JsonList{Limit: protocol.Ptr[uint64](1000)}},
		{"BranchList", protocol.BranchList{}},
		{"VectorListCollections", protocol.VectorListCollections{}},
	}
}

// InspectEntry is one command and its reply in --json output.
type InspectEntry struct {
	Name    string          `json:"name"`
	Command json.RawMessage `json:"command"`
	Reply   json.RawMessage `json:"reply,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// runInspect issues the debug command set and prints every reply.
func runInspect(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	timeout := fs.Duration("timeout", 30*time.Second, "Give up waiting after this long")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: foundry inspect [options]

Sends a fixed set of read-only commands (Info, KvList, StateList, EventLen,
EventGet, JsonList, BranchList, VectorListCollections) and prints each reply.
A failing command is reported and does not stop the others.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	withDatabase(globals, *timeout, func(ctx context.Context, db *bootstrap.Database) error {
		entries, err := collectInspect(ctx, db)
		if err != nil {
			return err
		}
		if globals.JSON {
			return output.JSONTo(os.Stdout, entries)
		}
		printInspect(os.Stdout, db, entries)
		return nil
	})
}

// collectInspect issues every inspect command concurrently. Entries keep
// the order of inspectCommands whatever order the replies arrive in.
func collectInspect(ctx context.Context, db *bootstrap.Database) ([]InspectEntry, error) {
	cmds := inspectCommands()
	entries := make([]InspectEntry, len(cmds))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range cmds {
		g.Go(func() error {
			payload, err := protocol.EncodeCommand(c.Command)
			if err != nil {
				return fmt.Errorf("encode %s: %w", c.Name, err)
			}
			entry := InspectEntry{Name: c.Name, Command: payload}

			out, err := db.Client.Execute(gctx, c.Command)
			if err == nil {
				entry.Reply, err = protocol.EncodeOutput(out)
			}
			if err != nil {
				entry.Error = err.Error()
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func printInspect(w io.Writer, db *bootstrap.Database, entries []InspectEntry) {
	title := "In-memory database"
	if db.Path != "" {
		title = db.Path
	}
	ui.Header(w, title)

	failed := 0
	for _, e := range entries {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s  %s\n", ui.Label(e.Name), ui.DimText(string(e.Command)))
		if e.Error != "" {
			failed++
			ui.Error(w, e.Error)
			continue
		}
		_ = output.RawReply(w, string(e.Reply))
	}

	fmt.Fprintln(w)
	if failed > 0 {
		ui.Warningf(w, "%d of %d commands failed", failed, len(entries))
		return
	}
	ui.Successf(w, "%d commands", len(entries))
}
