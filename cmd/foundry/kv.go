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
	"github.com/kraklabs/strata-foundry/pkg/protocol"
	"github.com/kraklabs/strata-foundry/pkg/services"
	"github.com/kraklabs/strata-foundry/pkg/value"
)

// kvFlags are the flags shared by every kv subcommand.
type kvFlags struct {
	branch   string
	space    string
	asOf     uint64
	prefix   string
	limit    uint64
	asString bool
	timeout  time.Duration
}

func (f kvFlags) scope() []services.Option {
	var opts []services.Option
	if f.branch != "" {
		opts = append(opts, services.WithBranch(f.branch))
	}
	if f.space != "" {
		opts = append(opts, services.WithSpace(f.space))
	}
	if f.asOf != 0 {
		opts = append(opts, services.AsOf(f.asOf))
	}
	return opts
}

// KVEntry is the --json form of a stored value.
type KVEntry struct {
	Key       string `json:"key"`
	Value     any    `json:"value"`
	Version   uint64 `json:"version"`
	Timestamp uint64 `json:"timestamp"`
}

func kvEntry(key string, v protocol.VersionedValue) KVEntry {
	return KVEntry{Key: key, Value: value.Plain(v.Value), Version: v.Version, Timestamp: v.Timestamp}
}

// runKV dispatches the kv subcommands.
func runKV(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("kv", flag.ExitOnError)
	var f kvFlags
	fs.StringVar(&f.branch, "branch", "", "Branch (default: the engine's default branch)")
	fs.StringVar(&f.space, "space", "", "Space (default: the engine's default space)")
	fs.Uint64Var(&f.asOf, "as-of", 0, "Read as of this timestamp (microseconds)")
	fs.StringVar(&f.prefix, "prefix", "", "Only list keys with this prefix")
	fs.Uint64Var(&f.limit, "limit", 0, "Maximum number of keys to list (0 = all)")
	fs.BoolVar(&f.asString, "string", false, "Store the put value as a string instead of parsing it as JSON")
	fs.DurationVar(&f.timeout, "timeout", 30*time.Second, "Give up waiting after this long")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: foundry kv <get|put|del|list|history> [options] [args]

  get <key>            Print the current value of key
  put <key> <value>    Store value (parsed as JSON unless --string)
  del <key>            Delete key
  list                 List keys
  history <key>        Print every version of key, newest first

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  foundry kv put user:dave '{"name":"Dave","age":41}'
  foundry kv put greeting hello --string
  foundry kv list --prefix user:
  foundry kv get user:alice --branch experiment
`)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(1)
	}

	withDatabase(globals, f.timeout, func(ctx context.Context, db *bootstrap.Database) error {
		return doKV(ctx, os.Stdout, db.Services.KV, fs.Args(), f, globals.JSON)
	})
}

func doKV(ctx context.Context, w io.Writer, kv *services.KV, args []string, f kvFlags, jsonOutput bool) error {
	sub, rest := args[0], args[1:]
	need := map[string]int{"get": 1, "put": 2, "del": 1, "list": 0, "history": 1}
	n, ok := need[sub]
	if !ok {
		return errors.NewInputError("Unknown kv command: "+sub, "", "Use get, put, del, list or history")
	}
	if len(rest) != n {
		return errors.NewInputError(
			fmt.Sprintf("kv %s takes %d argument(s)", sub, n),
			fmt.Sprintf("got %d", len(rest)),
			"Run 'foundry kv --help'",
		)
	}
	opts := f.scope()

	switch sub {
	case "get":
		key := rest[0]
		got, err := kv.Get(ctx, key, opts...)
		if err != nil {
			return errors.FromBridge("Cannot read key", err)
		}
		if got == nil {
			return errors.NewNotFoundError("Key not found: "+key, "", "List keys with 'foundry kv list'")
		}
		if jsonOutput {
			return output.JSONTo(w, kvEntry(key, *got))
		}
		fmt.Fprintf(w, "%s %s\n", ui.VersionText(got.Version), ui.DimText(fmt.Sprintf("@ %d", got.Timestamp)))
		return output.Value(w, got.Value)

	case "put":
		key := rest[0]
		var v value.Value = value.String(rest[1])
		if !f.asString {
			parsed, err := value.ParseJSON(rest[1])
			if err != nil {
				return errors.NewInputError("Value is not valid JSON", err.Error(), "Quote strings, or pass --string")
			}
			v = parsed
		}
		version, err := kv.Put(ctx, key, v, opts...)
		if err != nil {
			return errors.FromBridge("Cannot write key", err)
		}
		if jsonOutput {
			return output.JSONTo(w, map[string]any{"key": key, "version": version})
		}
		ui.Successf(w, "%s = %s (%s)", key, v, ui.VersionText(version))
		return nil

	case "del":
		key := rest[0]
		existed, err := kv.Delete(ctx, key, opts...)
		if err != nil {
			return errors.FromBridge("Cannot delete key", err)
		}
		if jsonOutput {
			return output.JSONTo(w, map[string]any{"key": key, "deleted": existed})
		}
		if !existed {
			ui.Warningf(w, "%s did not exist", key)
			return nil
		}
		ui.Successf(w, "Deleted %s", key)
		return nil

	case "list":
		var p services.ListParams
		if f.prefix != "" {
			p.Prefix = &f.prefix
		}
		if f.limit != 0 {
			p.Limit = &f.limit
		}
		keys, err := kv.List(ctx, p, opts...)
		if err != nil {
			return errors.FromBridge("Cannot list keys", err)
		}
		if jsonOutput {
			if keys == nil {
				keys = []string{}
			}
			return output.JSONTo(w, keys)
		}
		for _, k := range keys {
			fmt.Fprintln(w, k)
		}
		fmt.Fprintln(w, ui.DimText(fmt.Sprintf("(%s keys)", ui.CountText(uint64(len(keys))))))
		return nil

	default: // history
		key := rest[0]
		versions, err := kv.History(ctx, key, opts...)
		if err != nil {
			return errors.FromBridge("Cannot read history", err)
		}
		if versions == nil {
			return errors.NewNotFoundError("Key not found: "+key, "", "")
		}
		if jsonOutput {
			entries := make([]KVEntry, len(versions))
			for i, v := range versions {
				entries[i] = kvEntry(key, v)
			}
			return output.JSONTo(w, entries)
		}
		for _, v := range versions {
			fmt.Fprintf(w, "%s %s %s\n", ui.VersionText(v.Version), ui.DimText(fmt.Sprintf("@ %d", v.Timestamp)), v.Value)
		}
		return nil
	}
}
