// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"context"

	"github.com/kraklabs/strata-foundry/pkg/bridge"
	"github.com/kraklabs/strata-foundry/pkg/protocol"
)

// Spaces manages the namespaces inside a branch. Only WithBranch applies.
type Spaces struct {
	c *bridge.Client
}

// List returns the space names of the branch. Errors are returned as is;
// use bridge.IsUnsupported to detect an engine without spaces.
func (s *Spaces) List(ctx context.Context, opts ...Option) ([]string, error) {
	out, err := bridge.Expect[protocol.OutSpaceList](ctx, s.c, protocol.SpaceList{
		Branch: scopeOf(opts).branch(),
	})
	return []string(out), err
}

// Create adds an empty space to the branch.
func (s *Spaces) Create(ctx context.Context, space string, opts ...Option) error {
	_, err := bridge.Expect[protocol.OutUnit](ctx, s.c, protocol.SpaceCreate{
		Branch: scopeOf(opts).branch(), Space: space,
	})
	return err
}

// Delete removes a space. A non-empty space needs force.
func (s *Spaces) Delete(ctx context.Context, space string, force bool, opts ...Option) error {
	_, err := bridge.Expect[protocol.OutUnit](ctx, s.c, protocol.SpaceDelete{
		Branch: scopeOf(opts).branch(), Space: space, Force: force,
	})
	return err
}

// Exists reports whether the space exists on the branch.
func (s *Spaces) Exists(ctx context.Context, space string, opts ...Option) (bool, error) {
	out, err := bridge.Expect[protocol.OutBool](ctx, s.c, protocol.SpaceExists{
		Branch: scopeOf(opts).branch(), Space: space,
	})
	return bool(out), err
}
