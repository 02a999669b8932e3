// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundrytest "github.com/kraklabs/strata-foundry/internal/testing"
	"github.com/kraklabs/strata-foundry/pkg/bridge"
	"github.com/kraklabs/strata-foundry/pkg/protocol"
	"github.com/kraklabs/strata-foundry/pkg/services"
	"github.com/kraklabs/strata-foundry/pkg/value"
)

func TestKV_Lifecycle(t *testing.T) {
	ctx := context.Background()
	set, _ := foundrytest.NewTestServices(t)

	v1, err := set.KV.Put(ctx, "a", value.Int(1))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v1)

	got, err := set.KV.Get(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, value.Int(1), got.Value)
	assert.Equal(t, uint64(1), got.Version)

	missing, err := set.KV.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	v2, err := set.KV.Put(ctx, "a", value.Int(2))
	require.NoError(t, err)

	history, err := set.KV.History(ctx, "a")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, v2, history[0].Version, "history is newest first")

	past, err := set.KV.Get(ctx, "a", services.AsOf(history[1].Timestamp))
	require.NoError(t, err)
	require.NotNil(t, past)
	assert.Equal(t, value.Int(1), past.Value)

	existed, err := set.KV.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = set.KV.Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestKV_ListAndBatch(t *testing.T) {
	ctx := context.Background()
	set, _ := foundrytest.NewTestServices(t)

	results, err := set.KV.BatchPut(ctx, []protocol.KvEntry{
		{Key: "user:alice", Value: value.String("admin")},
		{Key: "user:bob", Value: value.String("viewer")},
		{Key: "config:debug", Value: value.Bool(false)},
		{Key: "", Value: value.Int(0)},
	})
	require.NoError(t, err)
	require.Len(t, results, 4)
	for _, r := range results[:3] {
		assert.NotNil(t, r.Version)
		assert.Nil(t, r.Error)
	}
	assert.NotNil(t, results[3].Error)

	users, err := set.KV.List(ctx, services.ListParams{Prefix: protocol.Ptr("user:")})
	require.NoError(t, err)
	assert.Equal(t, []string{"user:alice", "user:bob"}, users)

	all, err := set.KV.List(ctx, services.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, []string{"config:debug", "user:alice", "user:bob"}, all)
}

func TestKV_Scoping(t *testing.T) {
	ctx := context.Background()
	set, engine := foundrytest.NewTestServices(t)

	_, err := set.KV.Put(ctx, "k", value.Int(1), services.WithSpace("users"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"KvPut":{"space":"users","key":"k","value":{"Int":1}}}`, engine.LastCommand())

	inDefault, err := set.KV.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, inDefault)

	inUsers, err := set.KV.Get(ctx, "k", services.WithSpace("users"))
	require.NoError(t, err)
	assert.NotNil(t, inUsers)

	_, err = set.KV.Put(ctx, "k", value.Int(1), services.WithBranch("ghost"))
	require.Error(t, err)
	assert.True(t, bridge.IsBridge(err))
}

func TestScope_ExplicitNames(t *testing.T) {
	ctx := context.Background()
	set, engine := foundrytest.NewTestServices(t)

	_, err := set.KV.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"KvGet":{"key":"k"}}`, engine.LastCommand())

	_, err = set.KV.Get(ctx, "k", services.WithBranch(""), services.WithSpace(""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"KvGet":{"branch":"","space":"","key":"k"}}`, engine.LastCommand())

	_, err = set.Spaces.List(ctx, services.WithBranch("default"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"SpaceList":{"branch":"default"}}`, engine.LastCommand())
}

func TestJSON_Documents(t *testing.T) {
	ctx := context.Background()
	set, _ := foundrytest.NewTestServices(t)

	doc := value.ObjectOf(value.P("title", value.String("Readme")))
	_, err := set.JSON.Set(ctx, "doc:readme", services.RootPath, doc)
	require.NoError(t, err)
	_, err = set.JSON.Set(ctx, "doc:changelog", services.RootPath, value.Array{})
	require.NoError(t, err)

	got, err := set.JSON.Get(ctx, "doc:readme", services.RootPath)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, value.Equal(doc, got.Value))

	keys, cursor, err := set.JSON.List(ctx, services.ListParams{Limit: protocol.Ptr[uint64](1)})
	require.NoError(t, err)
	assert.Equal(t, []string{"doc:changelog"}, keys)
	require.NotNil(t, cursor)

	keys, cursor, err = set.JSON.List(ctx, services.ListParams{Cursor: cursor, Limit: protocol.Ptr[uint64](1)})
	require.NoError(t, err)
	assert.Equal(t, []string{"doc:readme"}, keys)
	assert.Nil(t, cursor)

	removed, err := set.JSON.Delete(ctx, "doc:readme", services.RootPath)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), removed)

	history, err := set.JSON.History(ctx, "doc:readme")
	require.NoError(t, err)
	assert.Nil(t, history)
}

func TestEvents_AppendInOrder(t *testing.T) {
	ctx := context.Background()
	set, _ := foundrytest.NewTestServices(t)

	for i := 0; i < 5; i++ {
		kind := "tool_call"
		if i%2 == 1 {
			kind = "observation"
		}
		seq, err := set.Events.Append(ctx, kind, value.ObjectOf(value.P("i", value.Int(int64(i)))))
		require.NoError(t, err)
		assert.Equal(t, uint64(i), seq)
	}

	n, err := set.Events.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), n)

	first, err := set.Events.Get(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, value.Equal(value.ObjectOf(value.P("i", value.Int(0))), first.Value))

	calls, err := set.Events.ByType(ctx, "tool_call", nil, protocol.Ptr[uint64](0))
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, uint64(2), calls[0].Version)

	_, err = set.Events.Append(ctx, "bad", value.Int(1))
	require.Error(t, err)
	assert.True(t, bridge.IsBridge(err))
}

func TestState_CompareAndSwap(t *testing.T) {
	ctx := context.Background()
	set, _ := foundrytest.NewTestServices(t)

	v, err := set.State.Init(ctx, "agent:status", value.String("idle"))
	require.NoError(t, err)

	again, err := set.State.Init(ctx, "agent:status", value.String("busy"))
	require.NoError(t, err)
	assert.Equal(t, v, again, "init does not overwrite")

	stale := v + 100
	swapped, err := set.State.CAS(ctx, "agent:status", &stale, value.String("busy"))
	require.NoError(t, err)
	assert.Nil(t, swapped)

	swapped, err = set.State.CAS(ctx, "agent:status", &v, value.String("busy"))
	require.NoError(t, err)
	require.NotNil(t, swapped)

	cell, err := set.State.Get(ctx, "agent:status")
	require.NoError(t, err)
	assert.Equal(t, value.String("busy"), cell.Value)

	_, err = set.State.Set(ctx, "agent:step_count", value.Int(47))
	require.NoError(t, err)
	cells, err := set.State.List(ctx, protocol.Ptr("agent:"))
	require.NoError(t, err)
	assert.Equal(t, []string{"agent:status", "agent:step_count"}, cells)

	history, err := set.State.History(ctx, "agent:status")
	require.NoError(t, err)
	assert.Len(t, history, 2)

	deleted, err := set.State.Delete(ctx, "agent:status")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestBranches_ForkDiffMerge(t *testing.T) {
	ctx := context.Background()
	set, _ := foundrytest.NewTestServices(t)

	_, err := set.KV.Put(ctx, "config:mode", value.String("prod"))
	require.NoError(t, err)

	info, _, err := set.Branches.Create(ctx, protocol.Ptr("staging"), nil)
	require.NoError(t, err)
	assert.Equal(t, "staging", info.ID)

	_, _, err = set.Branches.Create(ctx, protocol.Ptr("staging"), nil)
	require.Error(t, err)
	assert.True(t, bridge.IsBridge(err))

	fork, err := set.Branches.Fork(ctx, "default", "experiment")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), fork.KeysCopied)

	exp, err := set.Branches.Get(ctx, "experiment")
	require.NoError(t, err)
	require.NotNil(t, exp)
	require.NotNil(t, exp.Info.ParentID)
	assert.Equal(t, "default", *exp.Info.ParentID)

	ghost, err := set.Branches.Get(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, ghost)

	_, err = set.KV.Put(ctx, "config:mode", value.String("test"), services.WithBranch("experiment"))
	require.NoError(t, err)
	_, err = set.KV.Put(ctx, "config:new", value.Int(1), services.WithBranch("experiment"))
	require.NoError(t, err)

	diff, err := set.Branches.Diff(ctx, "default", "experiment")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), diff.Summary.TotalAdded)
	assert.Equal(t, uint64(1), diff.Summary.TotalModified)

	merged, err := set.Branches.Merge(ctx, "experiment", "default", protocol.MergeLastWriterWins)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), merged.KeysApplied)

	list, err := set.Branches.List(ctx, nil, nil, nil)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, b := range list {
		ids = append(ids, b.Info.ID)
	}
	assert.Equal(t, []string{"default", "experiment", "staging"}, ids)

	page, err := set.Branches.List(ctx, nil, protocol.Ptr[uint64](1), protocol.Ptr[uint64](1))
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "experiment", page[0].Info.ID)

	require.NoError(t, set.Branches.Delete(ctx, "staging"))
	exists, err := set.Branches.Exists(ctx, "staging")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.Error(t, set.Branches.Delete(ctx, "default"))
}

func TestSpaces(t *testing.T) {
	ctx := context.Background()
	set, _ := foundrytest.NewTestServices(t)

	require.NoError(t, set.Spaces.Create(ctx, "users"))
	_, err := set.KV.Put(ctx, "alice", value.Int(1), services.WithSpace("users"))
	require.NoError(t, err)

	spaces, err := set.Spaces.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "users"}, spaces)

	assert.Error(t, set.Spaces.Delete(ctx, "users", false), "non-empty space needs force")
	require.NoError(t, set.Spaces.Delete(ctx, "users", true))

	exists, err := set.Spaces.Exists(ctx, "users")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = set.Spaces.List(ctx, services.WithBranch("ghost"))
	assert.True(t, bridge.IsBridge(err), "failures are surfaced, not defaulted")
}

func TestAdmin(t *testing.T) {
	ctx := context.Background()
	set, _ := foundrytest.NewTestServices(t)

	version, err := set.Admin.Ping(ctx)
	require.NoError(t, err)
	assert.Equal(t, foundrytest.EngineVersion, version)

	oldest, latest, err := set.Admin.TimeRange(ctx)
	require.NoError(t, err)
	assert.Nil(t, oldest)
	assert.Nil(t, latest)

	_, err = set.KV.Put(ctx, "a", value.Int(1))
	require.NoError(t, err)
	_, err = set.KV.Put(ctx, "b", value.Int(2))
	require.NoError(t, err)

	oldest, latest, err = set.Admin.TimeRange(ctx)
	require.NoError(t, err)
	require.NotNil(t, oldest)
	require.NotNil(t, latest)
	assert.Less(t, *oldest, *latest)

	info, err := set.Admin.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), info.TotalKeys)
	assert.Equal(t, uint64(1), info.BranchCount)

	require.NoError(t, set.Admin.Flush(ctx))
	require.NoError(t, set.Admin.Compact(ctx))

	require.NoError(t, set.Admin.SetAutoEmbed(ctx, true))
	on, err := set.Admin.AutoEmbedStatus(ctx)
	require.NoError(t, err)
	assert.True(t, on)

	cfg, err := set.Admin.Config(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.AutoEmbed)
	assert.Equal(t, "standard", cfg.Durability)

	counters, err := set.Admin.DurabilityCounters(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), counters.WalAppends)
	assert.Equal(t, uint64(1), counters.SyncCalls)

	_, _, err = set.Admin.TimeRange(ctx, services.WithBranch("ghost"))
	assert.True(t, bridge.IsBridge(err))
}
