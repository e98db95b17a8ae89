// SPDX-License-Identifier: MIT
// Package: flowplan/builder
//
// impl_feedback.go - SelfFeeding(sinkDemand).
//
// Topology:
//
//	gatherer(B) → breeder ⟲ (A) → sink(A)
//
// The breeder runs 1 A + 1 B → 2 A and feeds part of its own output back
// through a self-loop. The loop starts empty apart from the solver's seed,
// which makes this the smallest fixture for cycle handling.
//
// Complexity: O(1).

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/flowplan/catalog"
	"github.com/katalvlaran/flowplan/core"
)

const methodSelfFeeding = "SelfFeeding"

// SelfFeeding returns a Constructor for a breeder recipe with a self-loop.
func SelfFeeding(sinkDemand float64) Constructor {
	return func(net *Network, cfg builderConfig) error {
		if sinkDemand < 0 || math.IsInf(sinkDemand, 0) || math.IsNaN(sinkDemand) {
			return fmt.Errorf("%s: sinkDemand=%g: %w", methodSelfFeeding, sinkDemand, ErrBadRate)
		}

		bred := net.newItem()
		feed := net.newItem()
		rid := net.newRecipe(cfg,
			[]catalog.ItemAmount{{ItemID: bred, Amount: 1}, {ItemID: feed, Amount: 1}},
			[]catalog.ItemAmount{{ItemID: bred, Amount: 2}})
		gdef := net.newGatherer(cfg, feed, math.Max(sinkDemand, 1)*cfg.headroom)

		src, err := net.addNode(methodSelfFeeding, cfg, "source "+feed, core.Gatherer{GathererID: gdef, MachineID: defaultExtractorID}, nil)
		if err != nil {
			return err
		}
		breeder, err := net.addNode(methodSelfFeeding, cfg, "breeder", core.Production{
			RecipeID:     rid,
			MachineID:    defaultMachineID,
			MachineCount: machinesFor(cfg, 2*sinkDemand),
		}, nil)
		if err != nil {
			return err
		}
		sink, err := net.addNode(methodSelfFeeding, cfg, "sink "+bred, core.Production{}, core.ItemRates{bred: sinkDemand})
		if err != nil {
			return err
		}

		for _, e := range [][3]string{
			{src, breeder, feed},
			{breeder, breeder, bred},
			{breeder, sink, bred},
		} {
			if err := net.connect(methodSelfFeeding, e[0], e[1], e[2]); err != nil {
				return err
			}
		}
		net.Sources = append(net.Sources, src)
		net.Stages = append(net.Stages, breeder)
		net.Sinks = append(net.Sinks, sink)

		return nil
	}
}
