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

// TestScriptedFacades covers the façades whose commands the fake engine
// does not implement: it scripts the reply and checks both the command
// that went out and the unwrapped result.
func TestScriptedFacades(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		call    func(ctx context.Context, s *services.Set) (any, error)
		wantCmd string
		want    any
	}{
		{
			name:  "vector create collection",
			reply: `{"Version":7}`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				return s.Vectors.CreateCollection(ctx, "docs", 3, protocol.MetricCosine)
			},
			wantCmd: `{"VectorCreateCollection":{"collection":"docs","dimension":3,"metric":"cosine"}}`,
			want:    uint64(7),
		},
		{
			name:  "vector upsert with metadata",
			reply: `{"Version":8}`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				return s.Vectors.Upsert(ctx, "docs", "a", []float32{0.5, 1}, value.ObjectOf(value.P("tag", value.String("x"))), services.WithSpace("kb"))
			},
			wantCmd: `{"VectorUpsert":{"space":"kb","collection":"docs","key":"a","vector":[0.5,1],"metadata":{"Object":{"tag":{"String":"x"}}}}}`,
			want:    uint64(8),
		},
		{
			name:  "vector get missing",
			reply: `{"VectorData":null}`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				return s.Vectors.Get(ctx, "docs", "nope")
			},
			wantCmd: `{"VectorGet":{"collection":"docs","key":"nope"}}`,
			want:    (*protocol.VectorEntry)(nil),
		},
		{
			name:  "vector stats",
			reply: `{"VectorCollectionList":[{"name":"docs","dimension":3,"metric":"cosine","count":2}]}`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				return s.Vectors.Stats(ctx, "docs")
			},
			wantCmd: `{"VectorCollectionStats":{"collection":"docs"}}`,
			want:    &protocol.CollectionInfo{Name: "docs", Dimension: 3, Metric: protocol.MetricCosine, Count: 2},
		},
		{
			name:  "vector search",
			reply: `{"VectorMatches":[{"key":"a","score":0.5}]}`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				return s.Vectors.Search(ctx, "docs", []float32{0.5, 1}, 2, services.SearchParams{}, services.AsOf(99))
			},
			wantCmd: `{"VectorSearch":{"collection":"docs","query":[0.5,1],"k":2,"as_of":99}}`,
			want:    []protocol.VectorMatch{{Key: "a", Score: 0.5}},
		},
		{
			name:  "graph add edge on branch",
			reply: `"Unit"`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				return nil, s.Graph.AddEdge(ctx, "g", "a", "b", "knows", services.EdgeParams{Weight: protocol.Ptr(0.5)}, services.WithBranch("dev"), services.WithSpace("ignored"))
			},
			wantCmd: `{"GraphAddEdge":{"branch":"dev","graph":"g","src":"a","dst":"b","edge_type":"knows","weight":0.5}}`,
		},
		{
			name:  "graph get node",
			reply: `{"Maybe":{"Object":{"name":{"String":"a"}}}}`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				return s.Graph.GetNode(ctx, "g", "a")
			},
			wantCmd: `{"GraphGetNode":{"graph":"g","node_id":"a"}}`,
			want:    value.Object{"name": value.String("a")},
		},
		{
			name:  "graph neighbors",
			reply: `{"GraphNeighbors":[{"node_id":"b","edge_type":"knows","weight":1}]}`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				dir := protocol.DirectionOutgoing
				return s.Graph.Neighbors(ctx, "g", "a", &dir, nil)
			},
			wantCmd: `{"GraphNeighbors":{"graph":"g","node_id":"a","direction":"outgoing"}}`,
			want:    []protocol.GraphNeighbor{{NodeID: "b", EdgeType: "knows", Weight: 1}},
		},
		{
			name:  "graph bfs",
			reply: `{"GraphBfs":{"visited":["a","b"],"depths":{"a":0,"b":1},"edges":[{"src":"a","dst":"b","edge_type":"knows"}]}}`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				return s.Graph.BFS(ctx, "g", "a", 2, services.BfsParams{MaxNodes: protocol.Ptr[uint64](10)})
			},
			wantCmd: `{"GraphBfs":{"graph":"g","start":"a","max_depth":2,"max_nodes":10}}`,
			want: protocol.GraphBfsResult{
				Visited: []string{"a", "b"},
				Depths:  map[string]uint64{"a": 0, "b": 1},
				Edges:   []protocol.GraphEdge{{Src: "a", Dst: "b", EdgeType: "knows"}},
			},
		},
		{
			name:  "search",
			reply: `{"SearchResults":[{"entity":"user:alice","primitive":"kv","score":0.5,"rank":1}]}`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				return s.Search.Query(ctx, protocol.SearchQuery{Query: "alice", K: protocol.Ptr[uint64](5)})
			},
			wantCmd: `{"Search":{"query":{"query":"alice","k":5}}}`,
			want:    []protocol.SearchHit{{Entity: "user:alice", Primitive: "kv", Score: 0.5, Rank: 1}},
		},
		{
			name:  "models list",
			reply: `{"ModelsList":[{"name":"miniLM","task":"embed","architecture":"bert","is_local":true}]}`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				return s.Models.List(ctx)
			},
			wantCmd: `{"ModelsList":null}`,
			want:    []protocol.ModelInfo{{Name: "miniLM", Task: "embed", Architecture: "bert", IsLocal: true}},
		},
		{
			name:  "embed",
			reply: `{"Embedding":[0.5,0.25]}`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				return s.Models.Embed(ctx, "hello")
			},
			wantCmd: `{"Embed":{"text":"hello"}}`,
			want:    []float32{0.5, 0.25},
		},
		{
			name:  "embed batch",
			reply: `{"Embeddings":[[1],[2]]}`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				return s.Models.EmbedBatch(ctx, []string{"a", "b"})
			},
			wantCmd: `{"EmbedBatch":{"texts":["a","b"]}}`,
			want:    [][]float32{{1}, {2}},
		},
		{
			name:  "generate",
			reply: `{"Generated":{"text":"hello","stop_reason":"eos","prompt_tokens":1,"completion_tokens":1,"model":"qwen"}}`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				return s.Generation.Generate(ctx, "qwen", "hi", services.GenerateParams{MaxTokens: protocol.Ptr[uint64](8)})
			},
			wantCmd: `{"Generate":{"model":"qwen","prompt":"hi","max_tokens":8}}`,
			want:    protocol.GenerationResult{Text: "hello", StopReason: "eos", PromptTokens: 1, CompletionTokens: 1, Model: "qwen"},
		},
		{
			name:  "tokenize",
			reply: `{"TokenIds":{"ids":[1,2],"count":2,"model":"qwen"}}`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				return s.Generation.Tokenize(ctx, "qwen", "hi", nil)
			},
			wantCmd: `{"Tokenize":{"model":"qwen","text":"hi"}}`,
			want:    protocol.TokenizeResult{IDs: []uint32{1, 2}, Count: 2, Model: "qwen"},
		},
		{
			name:  "detokenize",
			reply: `{"Text":"hi"}`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				return s.Generation.Detokenize(ctx, "qwen", []uint32{1, 2})
			},
			wantCmd: `{"Detokenize":{"model":"qwen","ids":[1,2]}}`,
			want:    "hi",
		},
		{
			name:  "unload",
			reply: `{"Bool":true}`,
			call: func(ctx context.Context, s *services.Set) (any, error) {
				return s.Generation.Unload(ctx, "qwen")
			},
			wantCmd: `{"GenerateUnload":{"model":"qwen"}}`,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, engine := foundrytest.NewTestServices(t)
			engine.ScriptReply(tt.reply)

			got, err := tt.call(context.Background(), set)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantCmd, engine.LastCommand())
			if tt.want != nil {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFacade_WrongVariant(t *testing.T) {
	set, engine := foundrytest.NewTestServices(t)
	engine.ScriptReply(`{"Bool":true}`)

	_, err := set.Models.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, bridge.IsInvalidResponse(err))

	var be *bridge.BridgeError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "Embedding", be.Expected)
	assert.Equal(t, "Bool", be.Actual)
}

func TestFacade_NotOpen(t *testing.T) {
	tr, _ := foundrytest.NewTestTransport(t)
	set := services.New(bridge.NewClient(tr))

	_, err := set.KV.Get(context.Background(), "k")
	assert.True(t, bridge.IsNotOpen(err))
}
