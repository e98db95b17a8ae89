// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/flowplan/core"
)

// queueItem pairs a node slot with its depth.
type queueItem struct {
	slot  int
	depth int
}

// walker encapsulates mutable walk state.
type walker struct {
	graph *core.Graph
	index *core.Index
	opts  Options
	ctx   context.Context
	queue []queueItem
	res   *Result
}

// Walk runs a multi-source breadth-first search over g from the nodes
// named by starts, following edges in the configured Direction.
//
// idx may be nil, in which case it is built from g. Duplicate start IDs
// are visited once. Self-loops never add anything.
//
// Returns ErrGraphNil, ErrNoStart or ErrStartNotFound for invalid input,
// ErrOptionViolation for bad options, the context error on cancellation,
// or the error returned by OnVisit.
func Walk(g *core.Graph, idx *core.Index, starts []string, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if len(starts) == 0 {
		return nil, ErrNoStart
	}
	if idx == nil {
		idx = core.BuildIndex(g)
	}

	n := g.NodeCount()
	w := &walker{
		graph: g,
		index: idx,
		opts:  o,
		ctx:   o.Ctx,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Order:  make([]int, 0, n),
			Depth:  make(map[int]int, n),
			Parent: make(map[int]int),
			Via:    make(map[int]int),
		},
	}

	for _, id := range starts {
		slot, ok := g.Slot(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrStartNotFound, id)
		}
		if !w.res.Reached(slot) {
			w.enqueue(slot, 0)
		}
	}

	return w.res, w.loop()
}

// SupplyChain returns every node whose output can reach id: its supply chain,
// id included.
func SupplyChain(g *core.Graph, idx *core.Index, id string, opts ...Option) (*Result, error) {
	return Walk(g, idx, []string{id}, append(opts, WithDirection(Upstream))...)
}

// Consumers returns every node that can receive something from id, id
// included.
func Consumers(g *core.Graph, idx *core.Index, id string, opts ...Option) (*Result, error) {
	return Walk(g, idx, []string{id}, append(opts, WithDirection(Downstream))...)
}

func (w *walker) enqueue(slot, depth int) {
	w.res.Depth[slot] = depth
	w.queue = append(w.queue, queueItem{slot: slot, depth: depth})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.slot)
		node := w.graph.NodeAt(item.slot)
		if err := w.opts.OnVisit(node, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %q: %w", node.ID, err)
		}
		w.expand(item)
	}

	return nil
}

// expand enqueues every unseen neighbour of item reachable through an
// allowed edge within MaxDepth.
func (w *walker) expand(item queueItem) {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}

	adj := &w.index.Nodes[item.slot]
	edges := adj.Out
	if w.opts.Direction == Upstream {
		edges = adj.In
	}
	for _, ei := range edges {
		e := w.graph.EdgeAt(ei)
		if !w.opts.FilterEdge(*e) {
			continue
		}
		id := e.Target
		if w.opts.Direction == Upstream {
			id = e.Source
		}
		nbr, ok := w.graph.Slot(id)
		if !ok || w.res.Reached(nbr) {
			continue
		}
		w.res.Parent[nbr] = item.slot
		w.res.Via[nbr] = ei
		w.enqueue(nbr, next)
	}
}
