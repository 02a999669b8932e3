// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import "github.com/kraklabs/strata-foundry/pkg/protocol"

// Scope selects where a command runs. A nil field is left out of the
// command and the engine uses its default. A name set through WithBranch or
// WithSpace is always sent, even when empty.
type Scope struct {
	Branch *string
	Space  *string
	AsOf   *uint64
}

// Option narrows the scope of one call.
type Option func(*Scope)

// WithBranch runs the call on the named branch.
func WithBranch(name string) Option {
	return func(s *Scope) { s.Branch = &name }
}

// WithSpace runs the call in the named space.
func WithSpace(name string) Option {
	return func(s *Scope) { s.Space = &name }
}

// AsOf reads the state as it was at ts, in microseconds since the epoch.
func AsOf(ts uint64) Option {
	return func(s *Scope) { s.AsOf = &ts }
}

func scopeOf(opts []Option) Scope {
	var s Scope
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

func (s Scope) target() protocol.Target {
	return protocol.Target{Branch: s.Branch, Space: s.Space}
}

func (s Scope) branch() *string {
	return s.Branch
}

// ListParams pages through keys. Nil fields are omitted.
type ListParams struct {
	Prefix *string
	Cursor *string
	Limit  *uint64
}
