// SPDX-License-Identifier: MIT
// Package: flowplan/builder
//
// options.go - functional options for BuildNetwork.
//
// Option constructors validate their argument and panic on meaningless
// input; constructors themselves only return errors.

package builder

import (
	"math"
	"math/rand"
)

// BuilderOption customizes the builderConfig before any constructor runs.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the node ID generator. Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}

	return func(c *builderConfig) { c.idFn = fn }
}

// WithRand provides an explicit RNG for RandomLayered. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *builderConfig) { c.rng = r }
}

// WithSeed installs a new RNG seeded with seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithMachineSpeed sets the speed of the generated machines. Panics unless
// speed is positive and finite.
func WithMachineSpeed(speed float64) BuilderOption {
	if !positiveFinite(speed) {
		panic("builder: WithMachineSpeed requires a positive finite speed")
	}

	return func(c *builderConfig) { c.speed = speed }
}

// WithCraftTime sets the craft time of generated recipes. Panics unless t
// is positive and finite.
func WithCraftTime(t float64) BuilderOption {
	if !positiveFinite(t) {
		panic("builder: WithCraftTime requires a positive finite time")
	}

	return func(c *builderConfig) { c.craftTime = t }
}

// WithHeadroom sets the machine over-provisioning factor used by Chain and
// SelfFeeding. A factor of 1 sizes every stage exactly to its demand.
// Panics when factor < 1 or not finite.
func WithHeadroom(factor float64) BuilderOption {
	if !(factor >= 1) || math.IsInf(factor, 0) {
		panic("builder: WithHeadroom requires a finite factor ≥ 1")
	}

	return func(c *builderConfig) { c.headroom = factor }
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
