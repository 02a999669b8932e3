// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"context"

	"github.com/kraklabs/strata-foundry/pkg/bridge"
	"github.com/kraklabs/strata-foundry/pkg/protocol"
	"github.com/kraklabs/strata-foundry/pkg/value"
)

// Branches manages branches. The "default" branch always exists.
type Branches struct {
	c *bridge.Client
}

// Create creates a branch. A nil id lets the engine pick one; metadata may
// be nil.
func (s *Branches) Create(ctx context.Context, id *string, metadata value.Value) (protocol.BranchInfo, uint64, error) {
	out, err := bridge.Expect[protocol.OutBranchWithVersion](ctx, s.c, protocol.BranchCreate{
		BranchID: id, Metadata: metadata,
	})
	return out.Info, out.Version, err
}

// Get returns the branch, or nil if it does not exist.
func (s *Branches) Get(ctx context.Context, id string) (*protocol.VersionedBranchInfo, error) {
	out, err := bridge.Expect[protocol.OutMaybeBranchInfo](ctx, s.c, protocol.BranchGet{Branch: id})
	return out.Branch, err
}

// List returns branches, optionally filtered by state and paged.
func (s *Branches) List(ctx context.Context, state *string, limit, offset *uint64) ([]protocol.VersionedBranchInfo, error) {
	out, err := bridge.Expect[protocol.OutBranchInfoList](ctx, s.c, protocol.BranchList{
		State: state, Limit: limit, Offset: offset,
	})
	return []protocol.VersionedBranchInfo(out), err
}

// Exists reports whether branch id exists.
func (s *Branches) Exists(ctx context.Context, id string) (bool, error) {
	out, err := bridge.Expect[protocol.OutBool](ctx, s.c, protocol.BranchExists{Branch: id})
	return bool(out), err
}

// Delete removes branch id and all of its data.
func (s *Branches) Delete(ctx context.Context, id string) error {
	_, err := bridge.Expect[protocol.OutUnit](ctx, s.c, protocol.BranchDelete{Branch: id})
	return err
}

// Fork copies source into a new branch named destination.
func (s *Branches) Fork(ctx context.Context, source, destination string) (protocol.ForkInfo, error) {
	out, err := bridge.Expect[protocol.OutBranchForked](ctx, s.c, protocol.BranchFork{
		Source: source, Destination: destination,
	})
	return protocol.ForkInfo(out), err
}

// Diff reports what changed from a to b, per space.
func (s *Branches) Diff(ctx context.Context, a, b string) (protocol.BranchDiffResult, error) {
	out, err := bridge.Expect[protocol.OutBranchDiff](ctx, s.c, protocol.BranchDiff{BranchA: a, BranchB: b})
	return protocol.BranchDiffResult(out), err
}

// Merge applies source onto target.
func (s *Branches) Merge(ctx context.Context, source, target string, strategy protocol.MergeStrategy) (protocol.MergeInfo, error) {
	out, err := bridge.Expect[protocol.OutBranchMerged](ctx, s.c, protocol.BranchMerge{
		Source: source, Target: target, Strategy: strategy,
	})
	return protocol.MergeInfo(out), err
}
