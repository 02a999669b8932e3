// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/strata-foundry/internal/bootstrap"
	"github.com/kraklabs/strata-foundry/internal/errors"
	"github.com/kraklabs/strata-foundry/internal/output"
	"github.com/kraklabs/strata-foundry/internal/ui"
	"github.com/kraklabs/strata-foundry/pkg/protocol"
	"github.com/kraklabs/strata-foundry/pkg/services"
)

type branchFlags struct {
	strategy string
	state    string
	limit    uint64
	timeout  time.Duration
}

// runBranches dispatches the branches subcommands.
func runBranches(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("branches", flag.ExitOnError)
	var f branchFlags
	fs.StringVar(&f.strategy, "strategy", string(protocol.MergeLastWriterWins), "Merge strategy: last_writer_wins or strict")
	fs.StringVar(&f.state, "state", "", "Only list branches in this state")
	fs.Uint64Var(&f.limit, "limit", 0, "Maximum number of branches to list (0 = all)")
	fs.DurationVar(&f.timeout, "timeout", 60*time.Second, "Give up waiting after this long")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: foundry branches <command> [options] [args]

  list                      List branches
  create <name>             Create an empty branch
  fork <source> <dest>      Copy source into a new branch
  diff <a> <b>              Show keys that differ between two branches
  merge <source> <target>   Apply source's changes to target
  delete <name>             Delete a branch

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  foundry branches fork default experiment
  foundry branches diff default experiment
  foundry branches merge experiment default --strategy strict
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
		return doBranches(ctx, os.Stdout, db.Services.Branches, fs.Args(), f, globals.JSON)
	})
}

func doBranches(ctx context.Context, w io.Writer, b *services.Branches, args []string, f branchFlags, jsonOutput bool) error {
	sub, rest := args[0], args[1:]
	need := map[string]int{"list": 0, "create": 1, "fork": 2, "diff": 2, "merge": 2, "delete": 1}
	n, ok := need[sub]
	if !ok {
		return errors.NewInputError("Unknown branches command: "+sub, "", "Use list, create, fork, diff, merge or delete")
	}
	if len(rest) != n {
		return errors.NewInputError(
			fmt.Sprintf("branches %s takes %d argument(s)", sub, n),
			fmt.Sprintf("got %d", len(rest)),
			"Run 'foundry branches --help'",
		)
	}

	switch sub {
	case "list":
		var state *string
		if f.state != "" {
			state = &f.state
		}
		var limit *uint64
		if f.limit != 0 {
			limit = &f.limit
		}
		list, err := b.List(ctx, state, limit, nil)
		if err != nil {
			return errors.FromBridge("Cannot list branches", err)
		}
		if jsonOutput {
			if list == nil {
				list = []protocol.VersionedBranchInfo{}
			}
			return output.JSONTo(w, list)
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "BRANCH\tSTATUS\tPARENT\tVERSION")
		for _, br := range list {
			parent := "-"
			if br.Info.ParentID != nil {
				parent = *br.Info.ParentID
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", br.Info.ID, br.Info.Status, parent, br.Version)
		}
		return tw.Flush()

	case "create":
		name := rest[0]
		info, version, err := b.Create(ctx, &name, nil)
		if err != nil {
			return errors.FromBridge("Cannot create branch", err)
		}
		if jsonOutput {
			return output.JSONTo(w, protocol.OutBranchWithVersion{Info: info, Version: version})
		}
		ui.Successf(w, "Created branch %s (%s)", info.ID, ui.VersionText(version))
		return nil

	case "fork":
		info, err := b.Fork(ctx, rest[0], rest[1])
		if err != nil {
			return errors.FromBridge("Cannot fork branch", err)
		}
		if jsonOutput {
			return output.JSONTo(w, info)
		}
		ui.Successf(w, "Forked %s into %s: %s keys, %s spaces",
			info.Source, info.Destination, ui.CountText(info.KeysCopied), ui.CountText(info.SpacesCopied))
		return nil

	case "diff":
		diff, err := b.Diff(ctx, rest[0], rest[1])
		if err != nil {
			return errors.FromBridge("Cannot diff branches", err)
		}
		if jsonOutput {
			return output.JSONTo(w, diff)
		}
		printDiff(w, diff)
		return nil

	case "merge":
		strategy := protocol.MergeStrategy(f.strategy)
		if strategy != protocol.MergeLastWriterWins && strategy != protocol.MergeStrict {
			return errors.NewInputError("Unknown merge strategy: "+f.strategy, "", "Use last_writer_wins or strict")
		}
		info, err := b.Merge(ctx, rest[0], rest[1], strategy)
		if err != nil {
			return errors.FromBridge("Cannot merge branches", err)
		}
		if jsonOutput {
			return output.JSONTo(w, info)
		}
		ui.Successf(w, "Merged %s into %s: %s keys applied", rest[0], rest[1], ui.CountText(info.KeysApplied))
		for _, c := range info.Conflicts {
			ui.Warningf(w, "conflict %s/%s (%s) resolved by %s", c.Space, c.Key, c.Primitive, strategy)
		}
		return nil

	default: // delete
		if err := b.Delete(ctx, rest[0]); err != nil {
			return errors.FromBridge("Cannot delete branch", err)
		}
		if jsonOutput {
			return output.JSONTo(w, map[string]any{"branch": rest[0], "deleted": true})
		}
		ui.Successf(w, "Deleted branch %s", rest[0])
		return nil
	}
}

func printDiff(w io.Writer, diff protocol.BranchDiffResult) {
	ui.Header(w, fmt.Sprintf("%s..%s", diff.BranchA, diff.BranchB))
	for _, s := range diff.Spaces {
		fmt.Fprintf(w, "\n%s\n", ui.Label(s.Space))
		for _, e := range s.Added {
			_, _ = ui.Green.Fprintf(w, "  + %s (%s)\n", e.Key, e.Primitive)
		}
		for _, e := range s.Removed {
			_, _ = ui.Red.Fprintf(w, "  - %s (%s)\n", e.Key, e.Primitive)
		}
		for _, e := range s.Modified {
			_, _ = ui.Yellow.Fprintf(w, "  ~ %s (%s)\n", e.Key, e.Primitive)
		}
	}
	fmt.Fprintf(w, "\n%s added, %s removed, %s modified\n",
		ui.CountText(diff.Summary.TotalAdded),
		ui.CountText(diff.Summary.TotalRemoved),
		ui.CountText(diff.Summary.TotalModified))
}
