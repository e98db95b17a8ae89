// SPDX-License-Identifier: MIT

package flow

import (
	"github.com/katalvlaran/flowplan/catalog"
	"github.com/katalvlaran/flowplan/core"
	"github.com/katalvlaran/flowplan/dfs"
)

// solver holds the state of one Solve call. It borrows the graph for the
// duration of the call and keeps nothing afterwards.
type solver struct {
	g     *core.Graph
	index *core.Index
	order *dfs.Order
	opts  Options

	recipes   catalog.RecipeTable
	machines  catalog.MachineTable
	gatherers catalog.GathererTable

	plans  []plan           // by node slot
	manual []core.ItemRates // Manual snapshot taken at reset, by slot
	inCap  []core.ItemRates // input ceilings, by slot
	outCap []core.ItemRates // output ceilings, by slot
}

// Solve computes the flow equilibrium of g in place and returns g.
//
// machines and gatherers may be nil. Nodes referencing unknown recipes or
// gatherers contribute nothing; unknown machines run at speed 1.
//
// Steps:
//  1. Index edges by node and item; build the processing order.
//  2. Reset every per-solve field, snapshot Manual, seed self-loops.
//  3. Repeat backward (sinks first) and forward (sources first) passes
//     until every edge Demand/Rate moves by at most the tolerance, or the
//     round ceiling is hit.
//  4. Finalize per-item flow records on every node.
//
// Solve never fails: degenerate input resolves to zeroed, inert output.
// It is synchronous and deterministic; callers must not run it
// concurrently on the same graph.
func Solve(
	g *core.Graph,
	recipes catalog.RecipeTable,
	machines catalog.MachineTable,
	gatherers catalog.GathererTable,
	opts ...Option,
) *core.Graph {
	if g == nil {
		return nil
	}

	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	s := &solver{
		g:         g,
		opts:      o,
		recipes:   recipes,
		machines:  machines,
		gatherers: gatherers,
	}
	s.prepare()
	s.reset()
	st := s.converge()
	s.finalize()

	if o.Stats != nil {
		*o.Stats = st
	}
	if o.Logger != nil {
		o.Logger.Printf("flow: solved %d nodes, %d edges in %d rounds (converged=%t, max delta %.3g)",
			g.NodeCount(), g.EdgeCount(), st.Rounds, st.Converged, st.MaxDelta)
	}

	return g
}

// SolveCatalog is Solve with the tables of c.
func SolveCatalog(g *core.Graph, c *catalog.Catalog, opts ...Option) *core.Graph {
	if c == nil {
		return Solve(g, nil, nil, nil, opts...)
	}

	return Solve(g, c.Recipes, c.Machines, c.Gatherers, opts...)
}

// prepare builds the index, the processing order and the node plans.
func (s *solver) prepare() {
	s.index = core.BuildIndex(s.g)
	// index and graph are non-nil here, so the traversal cannot fail
	s.order, _ = dfs.ProcessingOrder(s.g, s.index)

	n := s.g.NodeCount()
	s.plans = make([]plan, n)
	s.manual = make([]core.ItemRates, n)
	s.inCap = make([]core.ItemRates, n)
	s.outCap = make([]core.ItemRates, n)
	for slot := 0; slot < n; slot++ {
		s.plans[slot] = s.resolvePlan(s.g.NodeAt(slot), &s.index.Nodes[slot])
	}
}

// reset clears per-solve state and seeds self-loops.
func (s *solver) reset() {
	for slot := 0; slot < s.g.NodeCount(); slot++ {
		n := s.g.NodeAt(slot)
		s.manual[slot] = n.Manual.Clone()
		if s.manual[slot] == nil {
			s.manual[slot] = core.ItemRates{}
		}
		n.ResetSolveState()
		s.inCap[slot] = core.ItemRates{}
		s.outCap[slot] = core.ItemRates{}
	}

	edges := s.g.Edges()
	for i := range edges {
		edges[i].Demand = 0
		edges[i].Rate = 0
		if edges[i].SelfLoop() {
			edges[i].Rate = SelfLoopSeed
		}
	}
}

// converge runs backward+forward rounds to a fixed point.
func (s *solver) converge() Stats {
	st := Stats{BackEdges: len(s.order.BackEdges)}
	edges := s.g.Edges()
	prevDemand := make([]float64, len(edges))
	prevRate := make([]float64, len(edges))
	sinksFirst := s.order.Reverse()

	for round := 1; round <= s.opts.MaxIterations; round++ {
		for i := range edges {
			prevDemand[i] = edges[i].Demand
			prevRate[i] = edges[i].Rate
		}

		for _, slot := range sinksFirst {
			s.plans[slot].backward(s, slot)
		}
		for _, slot := range s.order.Nodes {
			s.plans[slot].forward(s, slot)
		}

		var maxDelta float64
		for i := range edges {
			if d := relDiff(edges[i].Demand, prevDemand[i]); d > maxDelta {
				maxDelta = d
			}
			if d := relDiff(edges[i].Rate, prevRate[i]); d > maxDelta {
				maxDelta = d
			}
		}

		st.Rounds = round
		st.MaxDelta = maxDelta
		if s.opts.Logger != nil {
			s.opts.Logger.Printf("flow: round %d max delta %.3g", round, maxDelta)
		}
		if s.opts.OnRound != nil {
			s.opts.OnRound(Round{N: round, MaxDelta: maxDelta})
		}
		if maxDelta <= s.opts.Tolerance {
			st.Converged = true
			break
		}
	}

	return st
}
