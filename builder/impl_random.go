// SPDX-License-Identifier: MIT
// Package: flowplan/builder
//
// impl_random.go - RandomLayered(layers, width).
//
// Topology:
//   - layer 0: width gatherers, one fresh item each, capacity ~U[1,10);
//   - layers 1..layers: width recipe nodes; each consumes 1..2 distinct
//     items of the previous layer (amount 1..3) and makes one fresh item
//     (amount 1..2) on 1..4 machines;
//   - every last-layer node feeds a logistics junction which feeds a sink
//     asking for ~U[1,5) of that item.
//
// Determinism: all draws come from cfg.rng in a fixed order.
// Complexity: O(layers × width).

package builder

import (
	"fmt"

	"github.com/katalvlaran/flowplan/catalog"
	"github.com/katalvlaran/flowplan/core"
)

const (
	methodRandomLayered = "RandomLayered"
	minLayers           = 1
	minWidth            = 1
	maxRecipeInputs     = 2
)

// RandomLayered returns a Constructor for a random layered DAG.
func RandomLayered(layers, width int) Constructor {
	return func(net *Network, cfg builderConfig) error {
		// 1. Validate
		if layers < minLayers {
			return fmt.Errorf("%s: layers=%d < min=%d: %w", methodRandomLayered, layers, minLayers, ErrTooFewNodes)
		}
		if width < minWidth {
			return fmt.Errorf("%s: width=%d < min=%d: %w", methodRandomLayered, width, minWidth, ErrTooFewNodes)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandomLayered, ErrNeedRandSource)
		}
		rng := cfg.rng

		// 2. Gatherer layer
		prevIDs := make([]string, width)
		prevItems := make([]string, width)
		for i := 0; i < width; i++ {
			item := net.newItem()
			gdef := net.newGatherer(cfg, item, 1+9*rng.Float64())
			id, err := net.addNode(methodRandomLayered, cfg, "source "+item, core.Gatherer{GathererID: gdef, MachineID: defaultExtractorID}, nil)
			if err != nil {
				return err
			}
			net.Sources = append(net.Sources, id)
			prevIDs[i], prevItems[i] = id, item
		}

		// 3. Recipe layers
		fanIn := maxRecipeInputs
		if width < fanIn {
			fanIn = width
		}
		for l := 1; l <= layers; l++ {
			ids := make([]string, width)
			items := make([]string, width)
			for i := 0; i < width; i++ {
				picks := rng.Perm(width)[:1+rng.Intn(fanIn)]
				in := make([]catalog.ItemAmount, len(picks))
				for k, p := range picks {
					in[k] = catalog.ItemAmount{ItemID: prevItems[p], Amount: float64(1 + rng.Intn(3))}
				}
				item := net.newItem()
				rid := net.newRecipe(cfg, in, []catalog.ItemAmount{{ItemID: item, Amount: float64(1 + rng.Intn(2))}})
				spec := core.Production{RecipeID: rid, MachineID: defaultMachineID, MachineCount: float64(1 + rng.Intn(4))}

				id, err := net.addNode(methodRandomLayered, cfg, fmt.Sprintf("L%d/%d", l, i), spec, nil)
				if err != nil {
					return err
				}
				for _, p := range picks {
					if err := net.connect(methodRandomLayered, prevIDs[p], id, prevItems[p]); err != nil {
						return err
					}
				}
				net.Stages = append(net.Stages, id)
				ids[i], items[i] = id, item
			}
			prevIDs, prevItems = ids, items
		}

		// 4. Junction and sink per last-layer product
		for i, item := range prevItems {
			bus, err := net.addNode(methodRandomLayered, cfg, "bus "+item, core.Logistics{}, nil)
			if err != nil {
				return err
			}
			sink, err := net.addNode(methodRandomLayered, cfg, "sink "+item, core.Production{}, core.ItemRates{item: 1 + 4*rng.Float64()})
			if err != nil {
				return err
			}
			if err := net.connect(methodRandomLayered, prevIDs[i], bus, item); err != nil {
				return err
			}
			if err := net.connect(methodRandomLayered, bus, sink, item); err != nil {
				return err
			}
			net.Sinks = append(net.Sinks, sink)
		}

		return nil
	}
}
