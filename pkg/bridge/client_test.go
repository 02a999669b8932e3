// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package bridge_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundrytest "github.com/kraklabs/strata-foundry/internal/testing"
	"github.com/kraklabs/strata-foundry/pkg/bridge"
	"github.com/kraklabs/strata-foundry/pkg/protocol"
	"github.com/kraklabs/strata-foundry/pkg/value"
)

func TestClient_PutThenGet(t *testing.T) {
	ctx := context.Background()
	client, _ := foundrytest.NewTestClient(t)

	version, err := bridge.Expect[protocol.OutVersion](ctx, client, protocol.KvPut{Key: "k", Value: value.Int(42)})
	require.NoError(t, err)
	assert.Equal(t, protocol.OutVersion(1), version)

	got, err := bridge.Expect[protocol.OutMaybeVersioned](ctx, client, protocol.KvGet{Key: "k"})
	require.NoError(t, err)
	require.NotNil(t, got.Value)
	assert.Equal(t, value.Int(42), got.Value.Value)
	assert.Equal(t, uint64(1), got.Value.Version)

	missing, err := bridge.Expect[protocol.OutMaybeVersioned](ctx, client, protocol.KvGet{Key: "nope"})
	require.NoError(t, err)
	assert.Nil(t, missing.Value)
}

func TestClient_ExecuteBeforeOpen(t *testing.T) {
	tr, _ := foundrytest.NewTestTransport(t)
	client := bridge.NewClient(tr)

	_, err := client.Execute(context.Background(), protocol.Ping{})
	require.Error(t, err)
	assert.True(t, bridge.IsNotOpen(err))

	var be *bridge.BridgeError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "execute Ping", be.Op)
}

func TestClient_InvalidCommandJSON(t *testing.T) {
	ctx := context.Background()
	client, _ := foundrytest.NewTestClient(t)

	// The engine answers malformed commands with an error envelope rather
	// than failing the call.
	raw, err := client.Transport().ExecuteRaw(ctx, "{not json")
	require.NoError(t, err)
	assert.Contains(t, raw, "invalid command JSON")

	_, err = protocol.DecodeOutput([]byte(raw))
	assert.Error(t, err)

	_, err = bridge.DecodeReply(raw)
	require.Error(t, err)
	assert.True(t, bridge.IsBridge(err))

	_, err = client.ExecuteJSON(ctx, "{not json")
	require.Error(t, err)
	assert.True(t, bridge.IsBridge(err))
	assert.Contains(t, err.Error(), "invalid command JSON")
}

func TestClient_ExecuteJSON(t *testing.T) {
	client, _ := foundrytest.NewTestClient(t)

	out, err := client.ExecuteJSON(context.Background(), `{"KvPut":{"key":"x","value":{"String":"y"}}}`)
	require.NoError(t, err)
	assert.Equal(t, protocol.OutVersion(1), out)
}

func TestClient_GarbageReply(t *testing.T) {
	client, engine := foundrytest.NewTestClient(t)

	garbage := strings.Repeat("garbage ", 200)
	engine.ScriptReply(garbage)

	_, err := client.Execute(context.Background(), protocol.Ping{})
	require.Error(t, err)
	assert.True(t, bridge.IsInvalidResponse(err))

	var be *bridge.BridgeError
	require.ErrorAs(t, err, &be)
	assert.LessOrEqual(t, len(be.Raw), 512)
	assert.True(t, strings.HasPrefix(garbage, be.Raw))
}

func TestClient_UnknownOutputVariant(t *testing.T) {
	client, engine := foundrytest.NewTestClient(t)

	engine.ScriptReply(`{"ok":{"Hologram":1}}`)
	_, err := client.Execute(context.Background(), protocol.Ping{})
	require.Error(t, err)
	assert.True(t, bridge.IsInvalidResponse(err))
}

func TestClient_VariantMismatch(t *testing.T) {
	client, _ := foundrytest.NewTestClient(t)

	_, err := bridge.Expect[protocol.OutBool](context.Background(), client, protocol.KvPut{Key: "k", Value: value.Null{}})
	require.Error(t, err)
	assert.True(t, bridge.IsInvalidResponse(err))

	var be *bridge.BridgeError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "Bool", be.Expected)
	assert.Equal(t, "Version", be.Actual)
	assert.Equal(t, "execute KvPut", be.Op)
}

func TestClient_EngineErrors(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		reason      string
		unsupported bool
	}{
		{
			name:   "panic",
			reply:  foundrytest.PanicReply,
			reason: "panic in Rust bridge",
		},
		{
			name:        "unknown variant",
			reply:       `{"error":{"Internal":{"reason":"invalid command JSON: unknown variant ` + "`VectorFrobnicate`" + `"}}}`,
			reason:      "invalid command JSON: unknown variant `VectorFrobnicate`",
			unsupported: true,
		},
		{
			name:   "typed error",
			reply:  `{"error":{"BranchNotFound":{"reason":"branch not found: ghost"}}}`,
			reason: "branch not found: ghost",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, engine := foundrytest.NewTestClient(t)
			engine.ScriptReply(tt.reply)

			_, err := client.Execute(context.Background(), protocol.Info{})
			require.Error(t, err)
			assert.True(t, bridge.IsBridge(err))
			assert.Equal(t, tt.unsupported, bridge.IsUnsupported(err))

			var be *bridge.BridgeError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.reason, be.Reason())
		})
	}
}

func TestClient_BranchScoping(t *testing.T) {
	ctx := context.Background()
	client, _ := foundrytest.NewTestClient(t)

	_, err := client.Execute(ctx, protocol.KvPut{Target: protocol.Target{Branch: protocol.Ptr("ghost")}, Key: "k", Value: value.Int(1)})
	require.Error(t, err)
	var be *bridge.BridgeError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "branch not found: ghost", be.Reason())
}

func TestDecodeReply(t *testing.T) {
	out, err := bridge.DecodeReply(`{"ok":"Unit"}`)
	require.NoError(t, err)
	assert.Equal(t, protocol.OutUnit{}, out)

	out, err = bridge.DecodeReply(`{"Bool":true}`)
	require.NoError(t, err)
	assert.Equal(t, protocol.OutBool(true), out)

	_, err = bridge.DecodeReply(`{"error":"Internal"}`)
	assert.True(t, bridge.IsBridge(err))

	_, err = bridge.DecodeReply(``)
	assert.True(t, bridge.IsInvalidResponse(err))
}
