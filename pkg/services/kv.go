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

// KV is the key-value store.
type KV struct {
	c *bridge.Client
}

// Put writes key and returns the new version.
func (s *KV) Put(ctx context.Context, key string, v value.Value, opts ...Option) (uint64, error) {
	out, err := bridge.Expect[protocol.OutVersion](ctx, s.c, protocol.KvPut{
		Target: scopeOf(opts).target(), Key: key, Value: v,
	})
	return uint64(out), err
}

// Get returns the latest value of key, or nil if it does not exist.
func (s *KV) Get(ctx context.Context, key string, opts ...Option) (*protocol.VersionedValue, error) {
	sc := scopeOf(opts)
	out, err := bridge.Expect[protocol.OutMaybeVersioned](ctx, s.c, protocol.KvGet{
		Target: sc.target(), Key: key, AsOf: sc.AsOf,
	})
	return out.Value, err
}

// Delete removes key and reports whether it existed.
func (s *KV) Delete(ctx context.Context, key string, opts ...Option) (bool, error) {
	out, err := bridge.Expect[protocol.OutBool](ctx, s.c, protocol.KvDelete{
		Target: scopeOf(opts).target(), Key: key,
	})
	return bool(out), err
}

// List returns keys in order.
func (s *KV) List(ctx context.Context, p ListParams, opts ...Option) ([]string, error) {
	sc := scopeOf(opts)
	out, err := bridge.Expect[protocol.OutKeys](ctx, s.c, protocol.KvList{
		Target: sc.target(), Prefix: p.Prefix, Cursor: p.Cursor, Limit: p.Limit, AsOf: sc.AsOf,
	})
	return []string(out), err
}

// History returns every version of key, newest first. It is nil when the
// key has never been written.
func (s *KV) History(ctx context.Context, key string, opts ...Option) ([]protocol.VersionedValue, error) {
	sc := scopeOf(opts)
	out, err := bridge.Expect[protocol.OutVersionHistory](ctx, s.c, protocol.KvGetv{
		Target: sc.target(), Key: key, AsOf: sc.AsOf,
	})
	return out.Versions, err
}

// BatchPut writes entries in one call. Each result carries either the new
// version or the per-entry error.
func (s *KV) BatchPut(ctx context.Context, entries []protocol.KvEntry, opts ...Option) ([]protocol.BatchItemResult, error) {
	out, err := bridge.Expect[protocol.OutBatchResults](ctx, s.c, protocol.KvBatchPut{
		Target: scopeOf(opts).target(), Entries: entries,
	})
	return []protocol.BatchItemResult(out), err
}
