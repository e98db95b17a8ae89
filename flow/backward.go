// SPDX-License-Identifier: MIT

package flow

import (
	"math"

	"github.com/katalvlaran/flowplan/core"
)

// distributeDemand spreads the node's per-item Demand over its incoming
// edges. A single edge takes everything; several edges split by their rate
// from the previous round, or evenly when all those rates are ~0. Incoming
// items the node does not demand get zero.
func (s *solver) distributeDemand(slot int) {
	n := s.g.NodeAt(slot)
	adj := &s.index.Nodes[slot]

	for _, item := range adj.InItems {
		edges := adj.InByItem[item]
		total := finite(n.Demand[item])

		if len(edges) == 1 {
			s.g.EdgeAt(edges[0]).Demand = total
			continue
		}

		prev := sumRate(s.g, edges)
		for _, ei := range edges {
			e := s.g.EdgeAt(ei)
			if prev <= Epsilon {
				e.Demand = total / float64(len(edges))
				continue
			}
			e.Demand = finite(total * e.Rate / prev)
		}
	}
}

// goal returns max(Σ outgoing demand, manual target) for item at slot.
func (s *solver) goal(slot int, item string) float64 {
	out := sumDemand(s.g, s.index.Nodes[slot].OutByItem[item])

	return math.Max(out, finite(s.manual[slot][item]))
}

// backward for a recipe: one throughput scale, driven by the most
// constraining output, applied uniformly to every input.
func (p recipePlan) backward(s *solver, slot int) {
	n := s.g.NodeAt(slot)
	n.Demand = core.ItemRates{}
	n.Requested = core.ItemRates{}

	if p.valid {
		var scale float64
		for i, line := range p.recipe.Outputs {
			if r := p.outRates[i]; r > Epsilon {
				scale = math.Max(scale, s.goal(slot, line.ItemID)/r)
			}
		}
		scale = finite(scale)

		for i, line := range p.recipe.Outputs {
			n.Requested[line.ItemID] += scale * p.outRates[i]
		}
		if !p.unfed {
			for i, line := range p.recipe.Inputs {
				n.Demand[line.ItemID] += scale * p.inRates[i]
			}
		}
	}

	s.distributeDemand(slot)
}

// backward for a terminal consumer: demand what downstream or the user asks.
func (consumerPlan) backward(s *solver, slot int) {
	n := s.g.NodeAt(slot)
	adj := &s.index.Nodes[slot]
	n.Demand = core.ItemRates{}
	n.Requested = core.ItemRates{}

	for _, item := range unionKeys(adjItems(adj), s.manual[slot]) {
		v := s.goal(slot, item)
		n.Demand[item] = v
		n.Requested[item] = v
	}

	s.distributeDemand(slot)
}

// backward for an external source: request what downstream asks.
func (sourcePlan) backward(s *solver, slot int) {
	n := s.g.NodeAt(slot)
	adj := &s.index.Nodes[slot]
	n.Demand = core.ItemRates{}
	n.Requested = core.ItemRates{}

	for _, item := range adj.OutItems {
		n.Requested[item] = sumDemand(s.g, adj.OutByItem[item])
	}
}

// backward for a gatherer: downstream demand, or full capacity when its
// output goes nowhere.
func (p gathererPlan) backward(s *solver, slot int) {
	n := s.g.NodeAt(slot)
	n.Demand = core.ItemRates{}
	n.Requested = core.ItemRates{}

	if p.valid {
		if out := s.index.Nodes[slot].OutByItem[p.item]; len(out) > 0 {
			n.Requested[p.item] = sumDemand(s.g, out)
		} else {
			n.Requested[p.item] = p.capacity
		}
	}

	s.distributeDemand(slot)
}

// backward for a junction: pass downstream demand (or the manual value)
// straight upstream.
func (logisticsPlan) backward(s *solver, slot int) {
	n := s.g.NodeAt(slot)
	adj := &s.index.Nodes[slot]
	n.Demand = core.ItemRates{}
	n.Requested = core.ItemRates{}

	for _, item := range unionKeys(adjItems(adj), s.manual[slot]) {
		v := s.goal(slot, item)
		n.Demand[item] = v
		n.Requested[item] = v
	}

	s.distributeDemand(slot)
}

func (inertPlan) backward(s *solver, slot int) {
	n := s.g.NodeAt(slot)
	n.Demand = core.ItemRates{}
	n.Requested = core.ItemRates{}
	s.distributeDemand(slot)
}
