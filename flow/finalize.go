// SPDX-License-Identifier: MIT

package flow

import (
	"sort"

	"github.com/katalvlaran/flowplan/core"
)

// finalize derives Node.Flows from the converged state.
//
// Items covered: the union of Demand/Supply/Output/Requested keys and every
// item of the node's recipe or gatherer definition. Records are sorted by
// item ID, inputs before outputs; an item that is both an ingredient and a
// product of the node's recipe gets one record of each direction.
func (s *solver) finalize() {
	for slot := 0; slot < s.g.NodeCount(); slot++ {
		n := s.g.NodeAt(slot)
		p := s.plans[slot]
		items := unionKeys(p.definitionItems(), n.Demand, n.Supply, n.Output, n.Requested)

		flows := make([]core.ItemFlow, 0, len(items))
		for _, item := range items {
			dir := p.direction(item)
			flows = append(flows, s.flowRecord(slot, item, dir))
			if rp, ok := p.(recipePlan); ok && dir == core.Input && rp.outputs[item] {
				flows = append(flows, s.flowRecord(slot, item, core.Output))
			}
		}
		sort.SliceStable(flows, func(i, j int) bool {
			if flows[i].ItemID != flows[j].ItemID {
				return flows[i].ItemID < flows[j].ItemID
			}

			return flows[i].Direction < flows[j].Direction
		})
		n.Flows = flows
	}
}

func (s *solver) flowRecord(slot int, item string, dir core.Direction) core.ItemFlow {
	n := s.g.NodeAt(slot)
	if dir == core.Output {
		return core.ItemFlow{
			ItemID:    item,
			Direction: core.Output,
			Demand:    n.Requested[item],
			Actual:    n.Output[item],
			Capacity:  s.outCap[slot][item],
			Sent:      sumRate(s.g, s.index.Nodes[slot].OutByItem[item]),
		}
	}

	// availability from upstream, falling back to the computed need when
	// nothing was delivered
	demand, ok := n.Delivered[item]
	if !ok {
		demand = n.Demand[item]
	}
	actual := n.Supply[item]

	return core.ItemFlow{
		ItemID:    item,
		Direction: core.Input,
		Demand:    demand,
		Actual:    actual,
		Capacity:  s.inCap[slot][item],
		Sent:      actual,
	}
}
