// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"context"

	"github.com/kraklabs/strata-foundry/pkg/bridge"
	"github.com/kraklabs/strata-foundry/pkg/protocol"
)

// Admin covers database-wide operations.
type Admin struct {
	c *bridge.Client
}

// Ping returns the engine version.
func (s *Admin) Ping(ctx context.Context) (string, error) {
	out, err := bridge.Expect[protocol.OutPong](ctx, s.c, protocol.Ping{})
	return out.Version, err
}

// Info returns the engine version, uptime, branch count and key count.
func (s *Admin) Info(ctx context.Context) (protocol.DatabaseInfo, error) {
	out, err := bridge.Expect[protocol.OutDatabaseInfo](ctx, s.c, protocol.Info{})
	return protocol.DatabaseInfo(out), err
}

// Flush writes buffered data to disk.
func (s *Admin) Flush(ctx context.Context) error {
	_, err := bridge.Expect[protocol.OutUnit](ctx, s.c, protocol.Flush{})
	return err
}

// Compact reclaims space from old versions.
func (s *Admin) Compact(ctx context.Context) error {
	_, err := bridge.Expect[protocol.OutUnit](ctx, s.c, protocol.Compact{})
	return err
}

// TimeRange returns the oldest and latest timestamps on the branch. Both
// are nil for an empty branch. Failures are returned, not defaulted.
func (s *Admin) TimeRange(ctx context.Context, opts ...Option) (oldest, latest *uint64, err error) {
	out, err := bridge.Expect[protocol.OutTimeRange](ctx, s.c, protocol.TimeRange{
		Branch: scopeOf(opts).branch(),
	})
	return out.OldestTS, out.LatestTS, err
}

// Config returns the configuration the database was opened with.
func (s *Admin) Config(ctx context.Context) (protocol.StrataConfig, error) {
	out, err := bridge.Expect[protocol.OutConfig](ctx, s.c, protocol.ConfigGet{})
	return protocol.StrataConfig(out), err
}

// SetAutoEmbed turns automatic embedding of written text on or off.
func (s *Admin) SetAutoEmbed(ctx context.Context, enabled bool) error {
	_, err := bridge.Expect[protocol.OutUnit](ctx, s.c, protocol.ConfigSetAutoEmbed{Enabled: enabled})
	return err
}

// AutoEmbedStatus reports whether automatic embedding is on.
func (s *Admin) AutoEmbedStatus(ctx context.Context) (bool, error) {
	out, err := bridge.Expect[protocol.OutBool](ctx, s.c, protocol.AutoEmbedStatus{})
	return bool(out), err
}

// DurabilityCounters returns the WAL and sync counters.
func (s *Admin) DurabilityCounters(ctx context.Context) (protocol.DurabilityCounterSet, error) {
	out, err := bridge.Expect[protocol.OutDurabilityCounters](ctx, s.c, protocol.DurabilityCounters{})
	return protocol.DurabilityCounterSet(out), err
}
