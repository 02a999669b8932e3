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

// Events is the append-only event log.
type Events struct {
	c *bridge.Client
}

// Append adds an event and returns its sequence number. The engine
// requires payload to be an object.
func (s *Events) Append(ctx context.Context, eventType string, payload value.Value, opts ...Option) (uint64, error) {
	out, err := bridge.Expect[protocol.OutVersion](ctx, s.c, protocol.EventAppend{
		Target: scopeOf(opts).target(), EventType: eventType, Payload: payload,
	})
	return uint64(out), err
}

// Get returns the event at sequence, or nil.
func (s *Events) Get(ctx context.Context, sequence uint64, opts ...Option) (*protocol.VersionedValue, error) {
	sc := scopeOf(opts)
	out, err := bridge.Expect[protocol.OutMaybeVersioned](ctx, s.c, protocol.EventGet{
		Target: sc.target(), Sequence: sequence, AsOf: sc.AsOf,
	})
	return out.Value, err
}

// ByType returns events of one type in sequence order. limit and after
// are optional.
func (s *Events) ByType(ctx context.Context, eventType string, limit, after *uint64, opts ...Option) ([]protocol.VersionedValue, error) {
	sc := scopeOf(opts)
	out, err := bridge.Expect[protocol.OutVersionedValues](ctx, s.c, protocol.EventGetByType{
		Target: sc.target(), EventType: eventType, Limit: limit, AfterSequence: after, AsOf: sc.AsOf,
	})
	return []protocol.VersionedValue(out), err
}

// Len returns the number of events in the log.
func (s *Events) Len(ctx context.Context, opts ...Option) (uint64, error) {
	out, err := bridge.Expect[protocol.OutUint](ctx, s.c, protocol.EventLen{
		Target: scopeOf(opts).target(),
	})
	return uint64(out), err
}
