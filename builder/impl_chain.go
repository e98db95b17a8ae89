// SPDX-License-Identifier: MIT
// Package: flowplan/builder
//
// impl_chain.go - Chain(depth, inPerOut, sinkDemand).
//
// Topology:
//
//	gatherer → stage1 → stage2 → … → stage<depth> → sink
//
// Every stage turns inPerOut units of the previous item into one unit of
// the next. The sink asks for sinkDemand of the last item, so the solved
// demand on the gatherer edge is sinkDemand × inPerOut^depth. Stages and
// the gatherer are sized with cfg.headroom so nothing constrains the flow.
//
// Complexity: O(depth).

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/flowplan/catalog"
	"github.com/katalvlaran/flowplan/core"
)

const (
	methodChain   = "Chain"
	minChainDepth = 1
)

// Chain returns a Constructor for a linear production chain of depth
// recipe stages between one gatherer and one sink.
func Chain(depth int, inPerOut, sinkDemand float64) Constructor {
	return func(net *Network, cfg builderConfig) error {
		// 1. Validate parameters
		if depth < minChainDepth {
			return fmt.Errorf("%s: depth=%d < min=%d: %w", methodChain, depth, minChainDepth, ErrTooFewNodes)
		}
		if !positiveFinite(inPerOut) {
			return fmt.Errorf("%s: inPerOut=%g: %w", methodChain, inPerOut, ErrBadRate)
		}
		if sinkDemand < 0 || math.IsInf(sinkDemand, 0) || math.IsNaN(sinkDemand) {
			return fmt.Errorf("%s: sinkDemand=%g: %w", methodChain, sinkDemand, ErrBadRate)
		}

		// 2. Raw supply sized for the whole chain
		item := net.newItem()
		root := sinkDemand * math.Pow(inPerOut, float64(depth))
		gdef := net.newGatherer(cfg, item, math.Max(root, 1)*cfg.headroom)
		prev, err := net.addNode(methodChain, cfg, "source "+item, core.Gatherer{GathererID: gdef, MachineID: defaultExtractorID}, nil)
		if err != nil {
			return err
		}
		net.Sources = append(net.Sources, prev)

		// 3. Stages, upstream to downstream
		for k := 1; k <= depth; k++ {
			next := net.newItem()
			rid := net.newRecipe(cfg,
				[]catalog.ItemAmount{{ItemID: item, Amount: inPerOut}},
				[]catalog.ItemAmount{{ItemID: next, Amount: 1}})
			out := sinkDemand * math.Pow(inPerOut, float64(depth-k))
			spec := core.Production{
				RecipeID:     rid,
				MachineID:    defaultMachineID,
				MachineCount: machinesFor(cfg, out),
			}
			id, err := net.addNode(methodChain, cfg, fmt.Sprintf("stage %d", k), spec, nil)
			if err != nil {
				return err
			}
			if err := net.connect(methodChain, prev, id, item); err != nil {
				return err
			}
			net.Stages = append(net.Stages, id)
			prev, item = id, next
		}

		// 4. Sink
		sink, err := net.addNode(methodChain, cfg, "sink "+item, core.Production{}, core.ItemRates{item: sinkDemand})
		if err != nil {
			return err
		}
		net.Sinks = append(net.Sinks, sink)

		return net.connect(methodChain, prev, sink, item)
	}
}

// machinesFor sizes a stage producing rate units/s of one-unit crafts with
// cfg.headroom spare capacity.
func machinesFor(cfg builderConfig, rate float64) float64 {
	perMachine := cfg.speed / cfg.craftTime

	return math.Max(rate/perMachine, 1) * cfg.headroom
}
