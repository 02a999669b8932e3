// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"context"

	"github.com/kraklabs/strata-foundry/pkg/bridge"
	"github.com/kraklabs/strata-foundry/pkg/protocol"
)

// Search runs queries across every primitive.
type Search struct {
	c *bridge.Client
}

// Query runs q and returns hits ranked by score.
func (s *Search) Query(ctx context.Context, q protocol.SearchQuery, opts ...Option) ([]protocol.SearchHit, error) {
	out, err := bridge.Expect[protocol.OutSearchResults](ctx, s.c, protocol.Search{
		Target: scopeOf(opts).target(), Query: q,
	})
	return []protocol.SearchHit(out), err
}
