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

// Graph is the property graph store. Graph commands are scoped by branch
// only; WithSpace and AsOf are ignored.
type Graph struct {
	c *bridge.Client
}

// Create creates a graph. cascadePolicy is optional.
func (s *Graph) Create(ctx context.Context, graph string, cascadePolicy *string, opts ...Option) error {
	_, err := bridge.Expect[protocol.OutUnit](ctx, s.c, protocol.GraphCreate{
		Branch: scopeOf(opts).branch(), Graph: graph, CascadePolicy: cascadePolicy,
	})
	return err
}

// Delete removes a graph with its nodes and edges.
func (s *Graph) Delete(ctx context.Context, graph string, opts ...Option) error {
	_, err := bridge.Expect[protocol.OutUnit](ctx, s.c, protocol.GraphDelete{
		Branch: scopeOf(opts).branch(), Graph: graph,
	})
	return err
}

// List returns the graph names on the branch.
func (s *Graph) List(ctx context.Context, opts ...Option) ([]string, error) {
	out, err := bridge.Expect[protocol.OutKeys](ctx, s.c, protocol.GraphList{
		Branch: scopeOf(opts).branch(),
	})
	return []string(out), err
}

// NodeParams are the optional parts of a node.
type NodeParams struct {
	EntityRef  *string
	Properties value.Value
	ObjectType *string
}

// AddNode creates or replaces a node.
func (s *Graph) AddNode(ctx context.Context, graph, nodeID string, p NodeParams, opts ...Option) error {
	_, err := bridge.Expect[protocol.OutUnit](ctx, s.c, protocol.GraphAddNode{
		Branch:     scopeOf(opts).branch(),
		Graph:      graph,
		NodeID:     nodeID,
		EntityRef:  p.EntityRef,
		Properties: p.Properties,
		ObjectType: p.ObjectType,
	})
	return err
}

// GetNode returns the node's data, or nil if the node does not exist.
func (s *Graph) GetNode(ctx context.Context, graph, nodeID string, opts ...Option) (value.Value, error) {
	out, err := bridge.Expect[protocol.OutMaybe](ctx, s.c, protocol.GraphGetNode{
		Branch: scopeOf(opts).branch(), Graph: graph, NodeID: nodeID,
	})
	return out.Value, err
}

// RemoveNode deletes a node. Its edges follow the graph's cascade policy.
func (s *Graph) RemoveNode(ctx context.Context, graph, nodeID string, opts ...Option) error {
	_, err := bridge.Expect[protocol.OutUnit](ctx, s.c, protocol.GraphRemoveNode{
		Branch: scopeOf(opts).branch(), Graph: graph, NodeID: nodeID,
	})
	return err
}

// ListNodes returns the node ids of a graph.
func (s *Graph) ListNodes(ctx context.Context, graph string, opts ...Option) ([]string, error) {
	out, err := bridge.Expect[protocol.OutKeys](ctx, s.c, protocol.GraphListNodes{
		Branch: scopeOf(opts).branch(), Graph: graph,
	})
	return []string(out), err
}

// EdgeParams are the optional parts of an edge.
type EdgeParams struct {
	Weight     *float64
	Properties value.Value
}

// AddEdge links src to dst with an edge of the given type.
func (s *Graph) AddEdge(ctx context.Context, graph, src, dst, edgeType string, p EdgeParams, opts ...Option) error {
	_, err := bridge.Expect[protocol.OutUnit](ctx, s.c, protocol.GraphAddEdge{
		Branch:     scopeOf(opts).branch(),
		Graph:      graph,
		Src:        src,
		Dst:        dst,
		EdgeType:   edgeType,
		Weight:     p.Weight,
		Properties: p.Properties,
	})
	return err
}

// RemoveEdge deletes the typed edge from src to dst.
func (s *Graph) RemoveEdge(ctx context.Context, graph, src, dst, edgeType string, opts ...Option) error {
	_, err := bridge.Expect[protocol.OutUnit](ctx, s.c, protocol.GraphRemoveEdge{
		Branch: scopeOf(opts).branch(), Graph: graph, Src: src, Dst: dst, EdgeType: edgeType,
	})
	return err
}

// Neighbors lists nodes adjacent to nodeID. direction and edgeType are
// optional filters.
func (s *Graph) Neighbors(ctx context.Context, graph, nodeID string, direction *protocol.Direction, edgeType *string, opts ...Option) ([]protocol.GraphNeighbor, error) {
	out, err := bridge.Expect[protocol.OutGraphNeighbors](ctx, s.c, protocol.GraphNeighbors{
		Branch:    scopeOf(opts).branch(),
		Graph:     graph,
		NodeID:    nodeID,
		Direction: direction,
		EdgeType:  edgeType,
	})
	return []protocol.GraphNeighbor(out), err
}

// BfsParams are the optional limits of a traversal.
type BfsParams struct {
	MaxNodes  *uint64
	EdgeTypes []string
	Direction *protocol.Direction
}

// BFS walks the graph breadth-first from start up to maxDepth hops.
func (s *Graph) BFS(ctx context.Context, graph, start string, maxDepth uint64, p BfsParams, opts ...Option) (protocol.GraphBfsResult, error) {
	out, err := bridge.Expect[protocol.OutGraphBfs](ctx, s.c, protocol.GraphBfs{
		Branch:    scopeOf(opts).branch(),
		Graph:     graph,
		Start:     start,
		MaxDepth:  maxDepth,
		MaxNodes:  p.MaxNodes,
		EdgeTypes: p.EdgeTypes,
		Direction: p.Direction,
	})
	return protocol.GraphBfsResult(out), err
}
