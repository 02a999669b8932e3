// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/strata-foundry/internal/bootstrap"
	"github.com/kraklabs/strata-foundry/internal/errors"
	"github.com/kraklabs/strata-foundry/internal/output"
)

// runExec sends one command, given as JSON, and prints the reply.
//
// Examples:
//
//	foundry exec '{"KvGet":{"key":"user:alice"}}'
//	echo '{"Info":null}' | foundry exec -
//	foundry exec --raw '{"Ping":null}'
func runExec(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("exec", flag.ExitOnError)
	raw := fs.Bool("raw", false, "Print the reply exactly as the bridge returned it")
	timeout := fs.Duration("timeout", 30*time.Second, "Give up waiting after this long")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: foundry exec [options] <command-json | ->

Sends one command to the engine and prints the reply. Use - to read the
command from stdin.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  foundry exec '{"KvGet":{"key":"user:alice"}}'
  foundry exec '{"BranchList":{}}'
  echo '{"Info":null}' | foundry exec -
`)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		errors.FatalError(errors.NewInputError(
			"Expected exactly one command",
			fmt.Sprintf("got %d arguments", fs.NArg()),
			"Quote the command JSON, e.g. foundry exec '{\"Ping\":null}'",
		), globals.JSON)
	}

	command := fs.Arg(0)
	if command == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			errors.FatalError(errors.NewInputError("Cannot read stdin", err.Error(), ""), globals.JSON)
		}
		command = string(data)
	}

	withDatabase(globals, *timeout, func(ctx context.Context, db *bootstrap.Database) error {
		return doExec(ctx, os.Stdout, db, command, *raw)
	})
}

func doExec(ctx context.Context, w io.Writer, db *bootstrap.Database, command string, raw bool) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return errors.NewInputError("Empty command", "", "Pass a command such as '{\"Ping\":null}'")
	}

	if raw {
		reply, err := db.Transport.ExecuteRaw(ctx, command)
		if err != nil {
			return errors.FromBridge("Command failed", err)
		}
		return output.RawReply(w, reply)
	}

	out, err := db.Client.ExecuteJSON(ctx, command)
	if err != nil {
		return errors.FromBridge("Command failed", err)
	}
	return output.Reply(w, out)
}
