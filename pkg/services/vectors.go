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

// Vectors is the vector store.
type Vectors struct {
	c *bridge.Client
}

// CreateCollection creates a collection of fixed dimension.
func (s *Vectors) CreateCollection(ctx context.Context, name string, dimension uint64, metric protocol.DistanceMetric, opts ...Option) (uint64, error) {
	out, err := bridge.Expect[protocol.OutVersion](ctx, s.c, protocol.VectorCreateCollection{
		Target: scopeOf(opts).target(), Collection: name, Dimension: dimension, Metric: metric,
	})
	return uint64(out), err
}

// DeleteCollection drops a collection and reports whether it existed.
func (s *Vectors) DeleteCollection(ctx context.Context, name string, opts ...Option) (bool, error) {
	out, err := bridge.Expect[protocol.OutBool](ctx, s.c, protocol.VectorDeleteCollection{
		Target: scopeOf(opts).target(), Collection: name,
	})
	return bool(out), err
}

// ListCollections returns every collection with its dimension and size.
func (s *Vectors) ListCollections(ctx context.Context, opts ...Option) ([]protocol.CollectionInfo, error) {
	out, err := bridge.Expect[protocol.OutVectorCollectionList](ctx, s.c, protocol.VectorListCollections{
		Target: scopeOf(opts).target(),
	})
	return []protocol.CollectionInfo(out), err
}

// Stats describes one collection. It returns nil if the engine listed none.
func (s *Vectors) Stats(ctx context.Context, name string, opts ...Option) (*protocol.CollectionInfo, error) {
	out, err := bridge.Expect[protocol.OutVectorCollectionList](ctx, s.c, protocol.VectorCollectionStats{
		Target: scopeOf(opts).target(), Collection: name,
	})
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return &out[0], nil
}

// Upsert stores vec under key. metadata may be nil.
func (s *Vectors) Upsert(ctx context.Context, collection, key string, vec []float32, metadata value.Value, opts ...Option) (uint64, error) {
	out, err := bridge.Expect[protocol.OutVersion](ctx, s.c, protocol.VectorUpsert{
		Target: scopeOf(opts).target(), Collection: collection, Key: key, Vector: vec, Metadata: metadata,
	})
	return uint64(out), err
}

// Get returns the vector stored under key, or nil.
func (s *Vectors) Get(ctx context.Context, collection, key string, opts ...Option) (*protocol.VectorEntry, error) {
	sc := scopeOf(opts)
	out, err := bridge.Expect[protocol.OutVectorData](ctx, s.c, protocol.VectorGet{
		Target: sc.target(), Collection: collection, Key: key, AsOf: sc.AsOf,
	})
	return out.Entry, err
}

// Delete removes the vector under key and reports whether it existed.
func (s *Vectors) Delete(ctx context.Context, collection, key string, opts ...Option) (bool, error) {
	out, err := bridge.Expect[protocol.OutBool](ctx, s.c, protocol.VectorDelete{
		Target: scopeOf(opts).target(), Collection: collection, Key: key,
	})
	return bool(out), err
}

// SearchParams are the optional parts of a vector search.
type SearchParams struct {
	Filter []protocol.MetadataFilter
	Metric *protocol.DistanceMetric
}

// Search returns the k nearest neighbours of query, best first.
func (s *Vectors) Search(ctx context.Context, collection string, query []float32, k uint64, p SearchParams, opts ...Option) ([]protocol.VectorMatch, error) {
	sc := scopeOf(opts)
	out, err := bridge.Expect[protocol.OutVectorMatches](ctx, s.c, protocol.VectorSearch{
		Target:     sc.target(),
		Collection: collection,
		Query:      query,
		K:          k,
		Filter:     p.Filter,
		Metric:     p.Metric,
		AsOf:       sc.AsOf,
	})
	return []protocol.VectorMatch(out), err
}
