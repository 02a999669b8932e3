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

// RootPath addresses a whole JSON document.
const RootPath = "$"

// JSON is the document store. Paths use JSONPath syntax rooted at "$".
type JSON struct {
	c *bridge.Client
}

// Set writes v at path in the document key.
func (s *JSON) Set(ctx context.Context, key, path string, v value.Value, opts ...Option) (uint64, error) {
	out, err := bridge.Expect[protocol.OutVersion](ctx, s.c, protocol.JsonSet{
		Target: scopeOf(opts).target(), Key: key, Path: path, Value: v,
	})
	return uint64(out), err
}

// Get reads the value at path inside document key. It returns nil when
// the document or the path does not exist.
func (s *JSON) Get(ctx context.Context, key, path string, opts ...Option) (*protocol.VersionedValue, error) {
	sc := scopeOf(opts)
	out, err := bridge.Expect[protocol.OutMaybeVersioned](ctx, s.c, protocol.JsonGet{
		Target: sc.target(), Key: key, Path: path, AsOf: sc.AsOf,
	})
	return out.Value, err
}

// Delete removes the value at path and returns how many entries went away.
func (s *JSON) Delete(ctx context.Context, key, path string, opts ...Option) (uint64, error) {
	out, err := bridge.Expect[protocol.OutUint](ctx, s.c, protocol.JsonDelete{
		Target: scopeOf(opts).target(), Key: key, Path: path,
	})
	return uint64(out), err
}

// History returns every version of document key, newest first.
func (s *JSON) History(ctx context.Context, key string, opts ...Option) ([]protocol.VersionedValue, error) {
	sc := scopeOf(opts)
	out, err := bridge.Expect[protocol.OutVersionHistory](ctx, s.c, protocol.JsonGetv{
		Target: sc.target(), Key: key, AsOf: sc.AsOf,
	})
	return out.Versions, err
}

// List returns one page of document keys and the cursor for the next page,
// which is nil on the last page.
func (s *JSON) List(ctx context.Context, p ListParams, opts ...Option) ([]string, *string, error) {
	sc := scopeOf(opts)
	out, err := bridge.Expect[protocol.OutJsonListResult](ctx, s.c, protocol.JsonList{
		Target: sc.target(), Prefix: p.Prefix, Cursor: p.Cursor, Limit: p.Limit, AsOf: sc.AsOf,
	})
	return out.Keys, out.Cursor, err
}
