// Copyright 2026 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package testing provides an in-process Strata engine and test helpers
// for the bridge and the service layer.
//
// FakeEngine implements ffi.Library without cgo. It keeps a small
// multi-branch store for the KV, JSON, event, state, branch, space and
// admin commands, and an allocation ledger that records every string it
// hands out so tests can check the bridge frees each one exactly once.
//
// # Quick Start
//
// Use NewTestClient to get a client over an open in-memory database:
//
//	func TestMyFeature(t *testing.T) {
//	    client, engine := foundrytest.NewTestClient(t)
//
//	    out, err := client.Execute(ctx, protocol.KvPut{Key: "k", Value: value.Int(1)})
//	    require.NoError(t, err)
//	    require.Equal(t, protocol.OutVersion(1), out)
//	}
//
// The cleanup registered by NewTestClient shuts the transport down and
// fails the test if the engine saw an ownership violation or still holds
// strings that were never freed.
//
// # Scripted Replies
//
// Commands the fake does not implement (vectors, graphs, search, models,
// generation) are tested by scripting the reply and asserting on the
// command that was sent:
//
//	engine.ScriptReply(`{"ok":{"Embedding":[0.5,0.25]}}`)
//	vec, err := svc.Models.Embed(ctx, "hello")
//	require.JSONEq(t, `{"Embed":{"text":"hello"}}`, engine.LastCommand())
package testing
