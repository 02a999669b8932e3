// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

import (
	"encoding/json"

	"github.com/kraklabs/strata-foundry/pkg/value"
)

// VectorCreateCollection creates a collection. Produces Version.
type VectorCreateCollection struct {
	Target
	Collection string         `json:"collection"`
	Dimension  uint64         `json:"dimension"`
	Metric     DistanceMetric `json:"metric"`
}

// VectorDeleteCollection drops a collection. Produces Bool.
type VectorDeleteCollection struct {
	Target
	Collection string `json:"collection"`
}

// VectorListCollections lists collections. Produces VectorCollectionList.
type VectorListCollections struct {
	Target
}

// VectorCollectionStats describes one collection. Produces
// VectorCollectionList holding a single entry.
type VectorCollectionStats struct {
	Target
	Collection string `json:"collection"`
}

// VectorUpsert inserts or replaces a vector. Produces Version.
type VectorUpsert struct {
	Target
	Collection string      `json:"collection"`
	Key        string      `json:"key"`
	Vector     []float32   `json:"vector"`
	Metadata   value.Value `json:"metadata,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *VectorUpsert) UnmarshalJSON(data []byte) error {
	type plain VectorUpsert
	aux := struct {
		*plain
		Metadata value.Box `json:"metadata"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Metadata = aux.Metadata.V
	return nil
}

// VectorGet reads a vector. Produces VectorData.
type VectorGet struct {
	Target
	Collection string  `json:"collection"`
	Key        string  `json:"key"`
	AsOf       *uint64 `json:"as_of,omitempty"`
}

// VectorDelete removes a vector. Produces Bool.
type VectorDelete struct {
	Target
	Collection string `json:"collection"`
	Key        string `json:"key"`
}

// VectorSearch finds the K nearest vectors. Produces VectorMatches.
type VectorSearch struct {
	Target
	Collection string           `json:"collection"`
	Query      []float32        `json:"query"`
	K          uint64           `json:"k"`
	Filter     []MetadataFilter `json:"filter,omitempty"`
	Metric     *DistanceMetric  `json:"metric,omitempty"`
	AsOf       *uint64          `json:"as_of,omitempty"`
}

// GraphCreate creates a graph. Produces Unit.
type GraphCreate struct {
	Branch        *string `json:"branch,omitempty"`
	Graph         string  `json:"graph"`
	CascadePolicy *string `json:"cascade_policy,omitempty"`
}

// GraphDelete drops a graph. Produces Unit.
type GraphDelete struct {
	Branch *string `json:"branch,omitempty"`
	Graph  string  `json:"graph"`
}

// GraphList lists graph names. Produces Keys.
type GraphList struct {
	Branch *string `json:"branch,omitempty"`
}

// GraphAddNode adds or replaces a node. Produces Unit.
type GraphAddNode struct {
	Branch     *string     `json:"branch,omitempty"`
	Graph      string      `json:"graph"`
	NodeID     string      `json:"node_id"`
	EntityRef  *string     `json:"entity_ref,omitempty"`
	Properties value.Value `json:"properties,omitempty"`
	ObjectType *string     `json:"object_type,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *GraphAddNode) UnmarshalJSON(data []byte) error {
	type plain GraphAddNode
	aux := struct {
		*plain
		Properties value.Box `json:"properties"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Properties = aux.Properties.V
	return nil
}

// GraphGetNode reads a node's data. Produces Maybe.
type GraphGetNode struct {
	Branch *string `json:"branch,omitempty"`
	Graph  string  `json:"graph"`
	NodeID string  `json:"node_id"`
}

// GraphRemoveNode removes a node and its edges. Produces Unit.
type GraphRemoveNode struct {
	Branch *string `json:"branch,omitempty"`
	Graph  string  `json:"graph"`
	NodeID string  `json:"node_id"`
}

// GraphListNodes lists node ids. Produces Keys.
type GraphListNodes struct {
	Branch *string `json:"branch,omitempty"`
	Graph  string  `json:"graph"`
}

// GraphAddEdge adds a typed edge. Produces Unit.
type GraphAddEdge struct {
	Branch     *string     `json:"branch,omitempty"`
	Graph      string      `json:"graph"`
	Src        string      `json:"src"`
	Dst        string      `json:"dst"`
	EdgeType   string      `json:"edge_type"`
	Weight     *float64    `json:"weight,omitempty"`
	Properties value.Value `json:"properties,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *GraphAddEdge) UnmarshalJSON(data []byte) error {
	type plain GraphAddEdge
	aux := struct {
		*plain
		Properties value.Box `json:"properties"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Properties = aux.Properties.V
	return nil
}

// GraphRemoveEdge removes an edge. Produces Unit.
type GraphRemoveEdge struct {
	Branch   *string `json:"branch,omitempty"`
	Graph    string  `json:"graph"`
	Src      string  `json:"src"`
	Dst      string  `json:"dst"`
	EdgeType string  `json:"edge_type"`
}

// GraphNeighbors lists adjacent nodes. Produces GraphNeighbors.
type GraphNeighbors struct {
	Branch    *string    `json:"branch,omitempty"`
	Graph     string     `json:"graph"`
	NodeID    string     `json:"node_id"`
	Direction *Direction `json:"direction,omitempty"`
	EdgeType  *string    `json:"edge_type,omitempty"`
}

// GraphBfs runs a breadth-first traversal. Produces GraphBfs.
type GraphBfs struct {
	Branch    *string    `json:"branch,omitempty"`
	Graph     string     `json:"graph"`
	Start     string     `json:"start"`
	MaxDepth  uint64     `json:"max_depth"`
	MaxNodes  *uint64    `json:"max_nodes,omitempty"`
	EdgeTypes []string   `json:"edge_types,omitempty"`
	Direction *Direction `json:"direction,omitempty"`
}

func (VectorCreateCollection) Variant() string { return "VectorCreateCollection" }
func (VectorDeleteCollection) Variant() string { return "VectorDeleteCollection" }
func (VectorListCollections) Variant() string  { return "VectorListCollections" }
func (VectorCollectionStats) Variant() string  { return "VectorCollectionStats" }
func (VectorUpsert) Variant() string           { return "VectorUpsert" }
func (VectorGet) Variant() string              { return "VectorGet" }
func (VectorDelete) Variant() string           { return "VectorDelete" }
func (VectorSearch) Variant() string           { return "VectorSearch" }

func (GraphCreate) Variant() string     { return "GraphCreate" }
func (GraphDelete) Variant() string     { return "GraphDelete" }
func (GraphList) Variant() string       { return "GraphList" }
func (GraphAddNode) Variant() string    { return "GraphAddNode" }
func (GraphGetNode) Variant() string    { return "GraphGetNode" }
func (GraphRemoveNode) Variant() string { return "GraphRemoveNode" }
func (GraphListNodes) Variant() string  { return "GraphListNodes" }
func (GraphAddEdge) Variant() string    { return "GraphAddEdge" }
func (GraphRemoveEdge) Variant() string { return "GraphRemoveEdge" }
func (GraphNeighbors) Variant() string  { return "GraphNeighbors" }
func (GraphBfs) Variant() string        { return "GraphBfs" }

func (VectorCreateCollection) command() {}
func (VectorDeleteCollection) command() {}
func (VectorListCollections) command()  {}
func (VectorCollectionStats) command()  {}
func (VectorUpsert) command()           {}
func (VectorGet) command()              {}
func (VectorDelete) command()           {}
func (VectorSearch) command()           {}

func (GraphCreate) command()     {}
func (GraphDelete) command()     {}
func (GraphList) command()       {}
func (GraphAddNode) command()    {}
func (GraphGetNode) command()    {}
func (GraphRemoveNode) command() {}
func (GraphListNodes) command()  {}
func (GraphAddEdge) command()    {}
func (GraphRemoveEdge) command() {}
func (GraphNeighbors) command()  {}
func (GraphBfs) command()        {}
