// SPDX-License-Identifier: MIT

package flow

import (
	"math"

	"github.com/katalvlaran/flowplan/core"
)

// beginForward resets the forward-owned fields of slot and records the raw
// quantity delivered per incoming item.
func (s *solver) beginForward(slot int) *core.Node {
	n := s.g.NodeAt(slot)
	adj := &s.index.Nodes[slot]
	n.Supply = core.ItemRates{}
	n.Output = core.ItemRates{}
	n.Capacity = core.ItemRates{}
	n.Delivered = core.ItemRates{}
	s.inCap[slot] = core.ItemRates{}
	s.outCap[slot] = core.ItemRates{}

	for _, item := range adj.InItems {
		n.Delivered[item] = sumRate(s.g, adj.InByItem[item])
	}

	return n
}

// consume clamps the delivered quantity of item to ceiling and, when it
// clamps, scales every incoming edge of that item down so their rates
// reflect what is actually consumed. It returns the consumed quantity.
func (s *solver) consume(slot int, item string, ceiling float64) float64 {
	n := s.g.NodeAt(slot)
	delivered := n.Delivered[item]
	consumed := math.Min(delivered, finite(ceiling))
	if consumed < delivered {
		f := ratio(consumed, delivered, 0)
		for _, ei := range s.index.Nodes[slot].InByItem[item] {
			e := s.g.EdgeAt(ei)
			e.Rate = finite(e.Rate * f)
		}
	}

	return consumed
}

// sendOutputs water-fills every output item across its outgoing edges.
// Items the node does not produce leave on zero-rate edges.
func (s *solver) sendOutputs(slot int) {
	n := s.g.NodeAt(slot)
	adj := &s.index.Nodes[slot]

	for _, item := range adj.OutItems {
		edges := adj.OutByItem[item]
		caps := make([]float64, len(edges))
		for i, ei := range edges {
			caps[i] = s.g.EdgeAt(ei).Demand
		}
		rates := WaterFill(n.Output[item], caps)
		for i, ei := range edges {
			s.g.EdgeAt(ei).Rate = finite(rates[i])
		}
	}
}

// zeroIncoming marks every incoming edge as carrying nothing.
func (s *solver) zeroIncoming(slot int) {
	for _, ei := range s.index.Nodes[slot].In {
		s.g.EdgeAt(ei).Rate = 0
	}
}

// forward for a recipe: clamp inputs to capacity, derive satisfaction from
// the worst-supplied input, scale outputs by it. An unfed recipe demands no
// input, so it stays fully satisfied and only the output ceiling applies.
func (p recipePlan) forward(s *solver, slot int) {
	n := s.beginForward(slot)

	if !p.valid {
		// degenerate machine speed or craft time
		n.Satisfaction = 0
		s.zeroIncoming(slot)
		s.sendOutputs(slot)

		return
	}

	inCap, outCap := s.inCap[slot], s.outCap[slot]
	for i, line := range p.recipe.Inputs {
		inCap[line.ItemID] += p.inRates[i] * p.machines
	}
	for i, line := range p.recipe.Outputs {
		outCap[line.ItemID] += p.outRates[i] * p.machines
	}

	sat := 1.0
	for _, item := range s.index.Nodes[slot].InItems {
		if !p.inputs[item] {
			// not an ingredient: nothing is consumed
			s.consume(slot, item, 0)
		}
	}
	for _, item := range unionKeys(nil, inCap) {
		consumed := s.consume(slot, item, inCap[item])
		n.Supply[item] = consumed
		if demand := n.Demand[item]; demand > Epsilon {
			sat = math.Min(sat, consumed/demand)
		}
	}
	n.Satisfaction = clamp01(sat)

	for _, item := range unionKeys(nil, outCap) {
		n.Output[item] = math.Min(n.Requested[item]*n.Satisfaction, outCap[item])
	}
	mergeCapacity(n, inCap, outCap)
	s.sendOutputs(slot)
}

// forward for a terminal consumer: take everything delivered.
func (consumerPlan) forward(s *solver, slot int) {
	n := s.beginForward(slot)

	sat := 1.0
	for _, item := range n.Delivered.Keys() {
		n.Supply[item] = n.Delivered[item]
		s.inCap[slot][item] = n.Delivered[item]
	}
	for _, item := range n.Requested.Keys() {
		if req := n.Requested[item]; req > Epsilon {
			sat = math.Min(sat, n.Supply[item]/req)
		}
	}
	n.Satisfaction = clamp01(sat)
	mergeCapacity(n, s.inCap[slot], nil)
	s.sendOutputs(slot)
}

// forward for an external source: output what downstream asks, up to the
// manual yield ceiling.
func (sourcePlan) forward(s *solver, slot int) {
	n := s.beginForward(slot)
	adj := &s.index.Nodes[slot]

	for _, item := range adj.OutItems {
		want := sumDemand(s.g, adj.OutByItem[item])
		ceiling := math.Inf(1)
		if m := s.manual[slot][item]; m > Epsilon {
			ceiling = m
		}
		n.Output[item] = math.Min(want, ceiling)
		if math.IsInf(ceiling, 1) {
			s.outCap[slot][item] = n.Output[item]
		} else {
			s.outCap[slot][item] = ceiling
		}
	}
	n.Satisfaction = 1
	mergeCapacity(n, nil, s.outCap[slot])
	s.sendOutputs(slot)
}

// forward for a gatherer: extract up to capacity.
func (p gathererPlan) forward(s *solver, slot int) {
	n := s.beginForward(slot)
	s.zeroIncoming(slot)

	if !p.valid {
		n.Satisfaction = 0
		s.sendOutputs(slot)

		return
	}

	s.outCap[slot][p.item] = p.capacity
	n.Output[p.item] = math.Min(n.Requested[p.item], p.capacity)
	n.Satisfaction = 1
	mergeCapacity(n, nil, s.outCap[slot])
	s.sendOutputs(slot)
}

// forward for a junction: output equals input, item by item.
func (logisticsPlan) forward(s *solver, slot int) {
	n := s.beginForward(slot)

	for _, item := range n.Delivered.Keys() {
		d := n.Delivered[item]
		n.Supply[item] = d
		n.Output[item] = d
		s.inCap[slot][item] = d
		s.outCap[slot][item] = d
	}
	n.Satisfaction = clamp01(ratio(n.Output.Sum(), n.Requested.Sum(), 1))
	mergeCapacity(n, s.inCap[slot], s.outCap[slot])
	s.sendOutputs(slot)
}

func (inertPlan) forward(s *solver, slot int) {
	n := s.beginForward(slot)
	n.Satisfaction = 0
	s.zeroIncoming(slot)
	s.sendOutputs(slot)
}

// mergeCapacity publishes the node's ceilings; for an item that is both an
// input and an output the output ceiling wins.
func mergeCapacity(n *core.Node, in, out core.ItemRates) {
	for k, v := range in {
		n.Capacity[k] = v
	}
	for k, v := range out {
		n.Capacity[k] = v
	}
}
