// SPDX-License-Identifier: MIT
// Package dfs defines the vertex colouring and result types of the
// cycle-tolerant processing-order traversal.
package dfs

import "errors"

// VertexState represents the DFS visitation state of a node slot.
const (
	White = iota // White: the node has not been visited yet.
	Gray         // Gray: the node is on the explicit stack (in progress).
	Black        // Black: the node and all its descendants are finished.
)

// ErrGraphNil is returned when a nil graph or index is passed to ProcessingOrder.
var ErrGraphNil = errors.New("dfs: graph is nil")

// Order is a best-effort, sources-first traversal order of a network.
type Order struct {
	// Nodes lists node slots in reversed post-order: sources first, sinks last.
	// On a DAG this is a topological order; on cyclic graphs it is the
	// order in which the back-edges were cut.
	Nodes []int

	// BackEdges lists the indices of edges that closed a cycle during the
	// traversal (self-loops included), in discovery order.
	BackEdges []int
}

// Reverse returns a new slice with Nodes in sinks-first order.
func (o *Order) Reverse() []int {
	out := make([]int, len(o.Nodes))
	for i := range o.Nodes {
		out[i] = o.Nodes[len(o.Nodes)-1-i]
	}

	return out
}

// Cyclic reports whether any back-edge was found.
func (o *Order) Cyclic() bool { return len(o.BackEdges) > 0 }
