// SPDX-License-Identifier: MIT
//
// File: graph.go
// Role: arena storage for nodes and edges.
//
// Determinism:
//   - Nodes() and Edges() return items in insertion order; removals keep the
//     relative order of the survivors.
//
// Concurrency:
//   - Graph is not safe for concurrent use. The editor mutates it between
//     solves, the solver borrows it for the duration of one call.

package core

import (
	"fmt"

	"github.com/google/uuid"
)

// Graph owns a production network. Nodes live in a contiguous slice and are
// addressed by a stable slot within one edit generation; slot lookup by ID
// is O(1) through the index map. The zero value is an empty network ready
// to use.
type Graph struct {
	nodes []Node
	slots map[string]int // node ID → slot in nodes
	edges []Edge
}

// NewGraph returns an empty network.
func NewGraph() *Graph {
	return &Graph{slots: make(map[string]int)}
}

// NewNodeID returns a fresh random node identifier for editor-created nodes.
func NewNodeID() string {
	return uuid.NewString()
}

// AddNode appends n to the arena.
// Complexity: O(1) amortized.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrEmptyNodeID
	}
	if n.Spec == nil {
		return fmt.Errorf("core: AddNode(%q): %w", n.ID, ErrNilSpec)
	}
	if _, ok := g.slots[n.ID]; ok {
		return fmt.Errorf("core: AddNode(%q): %w", n.ID, ErrDuplicateNode)
	}
	if g.slots == nil {
		g.slots = make(map[string]int)
	}
	g.slots[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)

	return nil
}

// AddEdge appends e to the edge list. Both endpoints must exist.
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(e Edge) error {
	if e.Item == "" {
		return fmt.Errorf("core: AddEdge(%q→%q): %w", e.Source, e.Target, ErrEmptyItemID)
	}
	if _, ok := g.slots[e.Source]; !ok {
		return fmt.Errorf("core: AddEdge source %q: %w", e.Source, ErrNodeNotFound)
	}
	if _, ok := g.slots[e.Target]; !ok {
		return fmt.Errorf("core: AddEdge target %q: %w", e.Target, ErrNodeNotFound)
	}
	g.edges = append(g.edges, e)

	return nil
}

// Connect is a shorthand for AddEdge with zero demand and rate.
func (g *Graph) Connect(source, target, item string) error {
	return g.AddEdge(Edge{Source: source, Target: target, Item: item})
}

// RemoveNode deletes the node and every edge touching it.
// Complexity: O(V + E).
func (g *Graph) RemoveNode(id string) error {
	slot, ok := g.slots[id]
	if !ok {
		return fmt.Errorf("core: RemoveNode(%q): %w", id, ErrNodeNotFound)
	}
	g.nodes = append(g.nodes[:slot], g.nodes[slot+1:]...)
	delete(g.slots, id)
	for i := slot; i < len(g.nodes); i++ {
		g.slots[g.nodes[i].ID] = i
	}

	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.Source == id || e.Target == id {
			continue
		}
		kept = append(kept, e)
	}
	g.edges = kept

	return nil
}

// RemoveEdge deletes the edge at index i, preserving the order of the rest.
func (g *Graph) RemoveEdge(i int) error {
	if i < 0 || i >= len(g.edges) {
		return fmt.Errorf("core: RemoveEdge(%d): %w", i, ErrEdgeNotFound)
	}
	g.edges = append(g.edges[:i], g.edges[i+1:]...)

	return nil
}

// Node returns the live node with the given ID. The pointer stays valid
// until the next AddNode or RemoveNode.
func (g *Graph) Node(id string) (*Node, bool) {
	slot, ok := g.slots[id]
	if !ok {
		return nil, false
	}

	return &g.nodes[slot], true
}

// Slot returns the arena slot of a node ID.
func (g *Graph) Slot(id string) (int, bool) {
	slot, ok := g.slots[id]

	return slot, ok
}

// NodeAt returns the live node stored in slot i.
func (g *Graph) NodeAt(i int) *Node { return &g.nodes[i] }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// EdgeAt returns the live edge at index i.
func (g *Graph) EdgeAt(i int) *Edge { return &g.edges[i] }

// Nodes returns pointers to the live nodes in slot order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	for i := range g.nodes {
		out[i] = &g.nodes[i]
	}

	return out
}

// Edges returns the live edge slice. Callers may mutate Demand and Rate in
// place but must not append to or reslice it.
func (g *Graph) Edges() []Edge { return g.edges }

// Clone returns a deep copy with identical ordering.
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	out := &Graph{
		nodes: make([]Node, len(g.nodes)),
		slots: make(map[string]int, len(g.slots)),
		edges: append([]Edge(nil), g.edges...),
	}
	for i, n := range g.nodes {
		out.nodes[i] = n.clone()
		out.slots[n.ID] = i
	}

	return out
}
