// SPDX-License-Identifier: MIT
// Package dfs computes the processing order the solver walks in both
// directions.
//
// ProcessingOrder runs a depth-first search from every true source (a node
// without incoming edges), then from every node still unvisited (pure
// cycles), and reverses the finished post-order. A successor that is still
// Gray is a back-edge: it is recorded and skipped, never reported as an
// error.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V) for colours and the explicit stack
package dfs

import "github.com/katalvlaran/flowplan/core"

// frame is one entry of the explicit DFS stack: the node slot and the
// position of the next outgoing edge to explore.
type frame struct {
	slot int
	next int
}

// orderWalker encapsulates state during the traversal.
type orderWalker struct {
	graph *core.Graph
	index *core.Index
	state []int // colour per slot
	post  []int // finished slots
	back  []int // back-edge indices
	stack []frame
}

// ProcessingOrder returns the sources-first traversal order of g.
// idx must be core.BuildIndex(g); callers that already hold the index pass it
// to avoid rebuilding.
func ProcessingOrder(g *core.Graph, idx *core.Index) (*Order, error) {
	// 1. Validate inputs
	if g == nil || idx == nil {
		return nil, ErrGraphNil
	}

	n := g.NodeCount()
	w := &orderWalker{
		graph: g,
		index: idx,
		state: make([]int, n),
		post:  make([]int, 0, n),
	}

	// 2. Roots: true sources, in slot order
	for slot := 0; slot < n; slot++ {
		if len(idx.Nodes[slot].In) == 0 {
			w.visit(slot)
		}
	}

	// 3. Sweep what is left (nodes reachable only through cycles)
	for slot := 0; slot < n; slot++ {
		if w.state[slot] == White {
			w.visit(slot)
		}
	}

	// 4. Reverse post-order to obtain sources first
	for i, j := 0, len(w.post)-1; i < j; i, j = i+1, j-1 {
		w.post[i], w.post[j] = w.post[j], w.post[i]
	}

	return &Order{Nodes: w.post, BackEdges: w.back}, nil
}

// visit explores everything reachable from root that is still White.
func (w *orderWalker) visit(root int) {
	if w.state[root] != White {
		return
	}
	w.state[root] = Gray
	w.stack = append(w.stack[:0], frame{slot: root})

	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]
		out := w.index.Nodes[top.slot].Out

		// all successors explored: finish the node
		if top.next >= len(out) {
			w.state[top.slot] = Black
			w.post = append(w.post, top.slot)
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}

		ei := out[top.next]
		top.next++
		succ, ok := w.graph.Slot(w.graph.EdgeAt(ei).Target)
		if !ok {
			continue
		}

		switch w.state[succ] {
		case White:
			w.state[succ] = Gray
			w.stack = append(w.stack, frame{slot: succ})
		case Gray:
			// back-edge: part of a cycle, cut it here
			w.back = append(w.back, ei)
		}
	}
}
