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

// State holds named cells with compare-and-swap.
type State struct {
	c *bridge.Client
}

// Set writes v to cell unconditionally and returns the new version.
func (s *State) Set(ctx context.Context, cell string, v value.Value, opts ...Option) (uint64, error) {
	out, err := bridge.Expect[protocol.OutVersion](ctx, s.c, protocol.StateSet{
		Target: scopeOf(opts).target(), Cell: cell, Value: v,
	})
	return uint64(out), err
}

// Get returns the current value of cell, or nil if it does not exist.
func (s *State) Get(ctx context.Context, cell string, opts ...Option) (*protocol.VersionedValue, error) {
	sc := scopeOf(opts)
	out, err := bridge.Expect[protocol.OutMaybeVersioned](ctx, s.c, protocol.StateGet{
		Target: sc.target(), Cell: cell, AsOf: sc.AsOf,
	})
	return out.Value, err
}

// Init writes v only if cell does not exist and returns the cell's version
// either way.
func (s *State) Init(ctx context.Context, cell string, v value.Value, opts ...Option) (uint64, error) {
	out, err := bridge.Expect[protocol.OutVersion](ctx, s.c, protocol.StateInit{
		Target: scopeOf(opts).target(), Cell: cell, Value: v,
	})
	return uint64(out), err
}

// CAS writes v if the cell's version equals expected. A nil expected means
// the cell must not exist. It returns the new version, or nil when the
// swap did not happen.
func (s *State) CAS(ctx context.Context, cell string, expected *uint64, v value.Value, opts ...Option) (*uint64, error) {
	out, err := bridge.Expect[protocol.OutMaybeVersion](ctx, s.c, protocol.StateCas{
		Target: scopeOf(opts).target(), Cell: cell, ExpectedCounter: expected, Value: v,
	})
	return out.Version, err
}

// Delete removes cell and reports whether it existed.
func (s *State) Delete(ctx context.Context, cell string, opts ...Option) (bool, error) {
	out, err := bridge.Expect[protocol.OutBool](ctx, s.c, protocol.StateDelete{
		Target: scopeOf(opts).target(), Cell: cell,
	})
	return bool(out), err
}

// List returns the cell names, optionally limited to a prefix.
func (s *State) List(ctx context.Context, prefix *string, opts ...Option) ([]string, error) {
	sc := scopeOf(opts)
	out, err := bridge.Expect[protocol.OutKeys](ctx, s.c, protocol.StateList{
		Target: sc.target(), Prefix: prefix, AsOf: sc.AsOf,
	})
	return []string(out), err
}

// History returns every version of cell, newest first.
func (s *State) History(ctx context.Context, cell string, opts ...Option) ([]protocol.VersionedValue, error) {
	sc := scopeOf(opts)
	out, err := bridge.Expect[protocol.OutVersionHistory](ctx, s.c, protocol.StateGetv{
		Target: sc.target(), Cell: cell, AsOf: sc.AsOf,
	})
	return out.Versions, err
}
