// SPDX-License-Identifier: MIT

package flow

import (
	"math"

	"github.com/katalvlaran/flowplan/catalog"
	"github.com/katalvlaran/flowplan/core"
)

// plan is the per-solve behaviour of one node, resolved once from its Spec
// and the catalog tables. Each variant implements both passes.
type plan interface {
	// backward computes Demand/Requested from downstream edge demands.
	backward(s *solver, slot int)

	// forward computes Supply/Output/Capacity/Satisfaction from delivered
	// edge rates and sets the node's outgoing edge rates.
	forward(s *solver, slot int)

	// direction classifies an item for the result finalizer.
	direction(item string) core.Direction

	// definitionItems lists the items of the node's catalog definition.
	definitionItems() []string
}

// resolvePlan maps a node onto its plan variant. Unknown catalog references
// resolve to inertPlan.
func (s *solver) resolvePlan(n *core.Node, adj *core.Adjacency) plan {
	switch spec := n.Spec.(type) {
	case core.Production:
		if spec.RecipeID == "" {
			if len(adj.In) == 0 {
				return sourcePlan{}
			}

			return consumerPlan{}
		}
		rc, ok := s.recipes[spec.RecipeID]
		if !ok {
			return inertPlan{}
		}
		speed := s.machines.ResolveSpeed(spec.MachineID, rc.DefaultMachineID)
		p := newRecipePlan(rc, speed, spec.Machines())
		p.unfed = len(adj.In) == 0

		return p

	case core.Gatherer:
		def, ok := s.gatherers[spec.GathererID]
		if !ok {
			return inertPlan{}
		}
		speed := s.machines.ResolveSpeed(spec.MachineID, def.MachineID)
		capacity := def.ExtractionRate * spec.YieldMultiplier() * speed
		valid := speed > 0 && !math.IsInf(speed, 0) && !math.IsNaN(capacity) && !math.IsInf(capacity, 0)

		return gathererPlan{item: def.OutputItemID, capacity: finite(capacity), valid: valid}

	case core.Logistics:
		return logisticsPlan{}

	default:
		return inertPlan{}
	}
}

// recipePlan runs a catalog recipe on MachineCount machines.
type recipePlan struct {
	recipe   catalog.Recipe
	machines float64
	valid    bool // effective craft time is positive and finite

	// unfed is a recipe node without incoming edges. It runs as a pure
	// source: no input demand, output capped by recipe capacity.
	unfed bool

	// per-machine rates by line, aligned with recipe.Inputs/Outputs
	inRates  []float64
	outRates []float64

	inputs  map[string]bool
	outputs map[string]bool
}

func newRecipePlan(rc catalog.Recipe, speed, machines float64) recipePlan {
	p := recipePlan{
		recipe:   rc,
		machines: machines,
		valid:    true,
		inRates:  make([]float64, len(rc.Inputs)),
		outRates: make([]float64, len(rc.Outputs)),
		inputs:   make(map[string]bool, len(rc.Inputs)),
		outputs:  make(map[string]bool, len(rc.Outputs)),
	}
	for i, line := range rc.Inputs {
		r, ok := rc.PerMachineRate(line.Amount, speed)
		p.valid = p.valid && ok
		p.inRates[i] = r
		p.inputs[line.ItemID] = true
	}
	for i, line := range rc.Outputs {
		r, ok := rc.PerMachineRate(line.Amount, speed)
		p.valid = p.valid && ok
		p.outRates[i] = r
		p.outputs[line.ItemID] = true
	}
	// a recipe without lines still needs a usable craft time
	if _, ok := rc.PerMachineRate(1, speed); !ok {
		p.valid = false
	}

	return p
}

func (p recipePlan) direction(item string) core.Direction {
	if p.outputs[item] && !p.inputs[item] {
		return core.Output
	}

	return core.Input
}

func (p recipePlan) definitionItems() []string {
	items := make([]string, 0, len(p.recipe.Inputs)+len(p.recipe.Outputs))
	for _, line := range p.recipe.Inputs {
		items = append(items, line.ItemID)
	}
	for _, line := range p.recipe.Outputs {
		items = append(items, line.ItemID)
	}

	return items
}

// consumerPlan is a recipe-less production node with inputs: a terminal sink.
type consumerPlan struct{}

func (consumerPlan) direction(string) core.Direction { return core.Input }
func (consumerPlan) definitionItems() []string       { return nil }

// sourcePlan is a recipe-less production node without inputs: an external
// supply whose per-item yield ceiling is its Manual value (unbounded when
// unset).
type sourcePlan struct{}

func (sourcePlan) direction(string) core.Direction { return core.Output }
func (sourcePlan) definitionItems() []string       { return nil }

// gathererPlan extracts one item.
type gathererPlan struct {
	item     string
	capacity float64 // extractionRate × veins × speed
	valid    bool
}

func (p gathererPlan) direction(item string) core.Direction {
	if item == p.item {
		return core.Output
	}

	return core.Input
}

func (p gathererPlan) definitionItems() []string { return []string{p.item} }

// logisticsPlan passes every item through unchanged.
type logisticsPlan struct{}

func (logisticsPlan) direction(string) core.Direction { return core.Output }
func (logisticsPlan) definitionItems() []string       { return nil }

// inertPlan is a node referencing an unknown recipe or gatherer. It demands
// nothing, produces nothing and zeroes every edge it touches.
type inertPlan struct{}

func (inertPlan) direction(string) core.Direction { return core.Input }
func (inertPlan) definitionItems() []string       { return nil }
