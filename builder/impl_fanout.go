// SPDX-License-Identifier: MIT
// Package: flowplan/builder
//
// impl_fanout.go - FanOut(capacity, demands...).
//
// Topology: one gatherer of the given capacity feeding len(demands) sinks
// of one item. With capacity ≥ Σdemands every sink is served in full;
// below that each sink receives demand × capacity/Σdemands.
//
// Complexity: O(len(demands)).

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/flowplan/core"
)

const (
	methodFanOut   = "FanOut"
	minFanOutSinks = 1
)

// FanOut returns a Constructor for a single supply split across sinks.
func FanOut(capacity float64, demands ...float64) Constructor {
	return func(net *Network, cfg builderConfig) error {
		if len(demands) < minFanOutSinks {
			return fmt.Errorf("%s: sinks=%d < min=%d: %w", methodFanOut, len(demands), minFanOutSinks, ErrTooFewNodes)
		}
		if capacity < 0 || math.IsInf(capacity, 0) || math.IsNaN(capacity) {
			return fmt.Errorf("%s: capacity=%g: %w", methodFanOut, capacity, ErrBadRate)
		}
		for i, d := range demands {
			if d < 0 || math.IsInf(d, 0) || math.IsNaN(d) {
				return fmt.Errorf("%s: demands[%d]=%g: %w", methodFanOut, i, d, ErrBadRate)
			}
		}

		item := net.newItem()
		gdef := net.newGatherer(cfg, item, capacity)
		src, err := net.addNode(methodFanOut, cfg, "source "+item, core.Gatherer{GathererID: gdef, MachineID: defaultExtractorID}, nil)
		if err != nil {
			return err
		}
		net.Sources = append(net.Sources, src)

		for i, d := range demands {
			sink, err := net.addNode(methodFanOut, cfg, fmt.Sprintf("sink %d", i), core.Production{}, core.ItemRates{item: d})
			if err != nil {
				return err
			}
			if err := net.connect(methodFanOut, src, sink, item); err != nil {
				return err
			}
			net.Sinks = append(net.Sinks, sink)
		}

		return nil
	}
}
