// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import "github.com/kraklabs/strata-foundry/pkg/bridge"

// Set bundles every façade over one client.
type Set struct {
	KV         *KV
	JSON       *JSON
	Events     *Events
	State      *State
	Vectors    *Vectors
	Graph      *Graph
	Branches   *Branches
	Spaces     *Spaces
	Search     *Search
	Models     *Models
	Generation *Generation
	Admin      *Admin
}

// New returns the façades over c.
func New(c *bridge.Client) *Set {
	return &Set{
		KV:         &KV{c: c},
		JSON:       &JSON{c: c},
		Events:     &Events{c: c},
		State:      &State{c: c},
		Vectors:    &Vectors{c: c},
		Graph:      &Graph{c: c},
		Branches:   &Branches{c: c},
		Spaces:     &Spaces{c: c},
		Search:     &Search{c: c},
		Models:     &Models{c: c},
		Generation: &Generation{c: c},
		Admin:      &Admin{c: c},
	}
}
