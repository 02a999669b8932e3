// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package testing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/kraklabs/strata-foundry/pkg/bridge"
	"github.com/kraklabs/strata-foundry/pkg/services"
)

// NewTestTransport starts a transport over a fresh FakeEngine. Nothing is
// opened. The transport is shut down and the engine checked with
// AssertClean when the test finishes.
func NewTestTransport(t testing.TB) (*bridge.Transport, *FakeEngine) {
	t.Helper()

	engine := NewFakeEngine()
	tr := bridge.NewTransport(engine, bridge.WithLogger(slog.New(slog.DiscardHandler)))
	t.Cleanup(func() {
		tr.Shutdown()
		AssertClean(t, engine)
	})
	return tr, engine
}

// NewTestClient returns a client over an open in-memory database.
//
// Example:
//
//	client, engine := testing.NewTestClient(t)
//	_, err := client.Execute(ctx, protocol.Ping{})
func NewTestClient(t testing.TB) (*bridge.Client, *FakeEngine) {
	t.Helper()

	tr, engine := NewTestTransport(t)
	if _, err := tr.OpenMemory(context.Background()); err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	return bridge.NewClient(tr), engine
}

// NewTestServices returns the service set over an open in-memory database.
func NewTestServices(t testing.TB) (*services.Set, *FakeEngine) {
	t.Helper()

	client, engine := NewTestClient(t)
	return services.New(client), engine
}

// AssertClean fails the test if engine recorded an ownership violation or
// still holds strings that were never freed.
func AssertClean(t testing.TB, engine *FakeEngine) {
	t.Helper()

	for _, v := range engine.Violations() {
		t.Errorf("engine ownership violation: %s", v)
	}
	if n := engine.Outstanding(); n != 0 {
		t.Errorf("engine still holds %d unfreed strings", n)
	}
}
