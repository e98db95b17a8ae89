// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/flowplan/core"
)

// Sentinel errors for walk execution.
var (
	// ErrStartNotFound is returned when a start ID is absent from the graph.
	ErrStartNotFound = errors.New("bfs: start node not found")

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrNoStart is returned when Walk is called without any start ID.
	ErrNoStart = errors.New("bfs: no start node")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Direction selects which way edges are followed.
type Direction uint8

const (
	// Downstream follows edges from source to target: who consumes what
	// the start nodes make.
	Downstream Direction = iota
	// Upstream follows edges from target to source: the supply chain
	// feeding the start nodes.
	Upstream
)

// String returns "downstream" or "upstream".
func (d Direction) String() string {
	if d == Upstream {
		return "upstream"
	}

	return "downstream"
}

// Option configures Walk via functional arguments.
// If an Option is invalid (e.g. negative depth), it is recorded internally
// and surfaced as ErrOptionViolation when Walk is invoked.
type Option func(*Options)

// Options holds the walk parameters.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// Direction of travel; Downstream by default.
	Direction Direction

	// MaxDepth, if > 0, stops exploring beyond this many edges.
	MaxDepth int

	// FilterEdge can skip edges by returning false.
	FilterEdge func(e core.Edge) bool

	// OnVisit is called once per reached node. Returning an error aborts
	// the walk and propagates that error.
	OnVisit func(n *core.Node, depth int) error

	err error
}

// DefaultOptions returns background context, Downstream, no depth limit,
// every edge allowed and a no-op OnVisit.
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		Direction:  Downstream,
		FilterEdge: func(core.Edge) bool { return true },
		OnVisit:    func(*core.Node, int) error { return nil },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithDirection sets the direction of travel.
func WithDirection(d Direction) Option {
	return func(o *Options) {
		if d > Upstream {
			o.err = fmt.Errorf("%w: unknown direction %d", ErrOptionViolation, d)
			return
		}
		o.Direction = d
	}
}

// WithMaxDepth stops the walk at the given depth.
//
//	d > 0: limit to depth d
//	d == 0: no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithItems only follows edges carrying one of items.
func WithItems(items ...string) Option {
	allowed := make(map[string]bool, len(items))
	for _, it := range items {
		allowed[it] = true
	}

	return WithFilterEdge(func(e core.Edge) bool { return allowed[e.Item] })
}

// WithFilterEdge skips edges for which fn returns false.
func WithFilterEdge(fn func(e core.Edge) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterEdge = fn
		}
	}
}

// WithOnVisit registers a callback run once per reached node.
func WithOnVisit(fn func(n *core.Node, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// Result holds the outcome of a walk:
//   - Order: reached node slots, in visit sequence (starts first).
//   - Depth: slot → number of edges from the nearest start.
//   - Parent: slot → slot it was first reached from.
//   - Via: slot → index of the edge it was first reached through.
type Result struct {
	Order  []int
	Depth  map[int]int
	Parent map[int]int
	Via    map[int]int
}

// Reached reports whether slot was visited.
func (r *Result) Reached(slot int) bool {
	_, ok := r.Depth[slot]

	return ok
}

// IDs returns the node IDs of Order.
func (r *Result) IDs(g *core.Graph) []string {
	ids := make([]string, len(r.Order))
	for i, slot := range r.Order {
		ids[i] = g.NodeAt(slot).ID
	}

	return ids
}

// PathTo returns the edge indices leading from a start node to slot, in
// travel order. It fails when slot was not reached.
func (r *Result) PathTo(slot int) ([]int, error) {
	if !r.Reached(slot) {
		return nil, fmt.Errorf("bfs: slot %d not reached", slot)
	}
	path := make([]int, 0, r.Depth[slot])
	for cur := slot; ; {
		ei, ok := r.Via[cur]
		if !ok {
			break
		}
		path = append(path, ei)
		cur = r.Parent[cur]
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
