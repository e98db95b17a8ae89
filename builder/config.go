// SPDX-License-Identifier: MIT
// Package: flowplan/builder
//
// config.go - resolved configuration shared by all constructors.

package builder

import "math/rand"

const (
	defaultCraftTime    = 1.0 // seconds per craft of generated recipes
	defaultMachineSpeed = 1.0
	defaultHeadroom     = 2.0 // machine count multiplier for unconstrained stages
	defaultMachineID    = "assembler"
	defaultExtractorID  = "extractor"
)

// builderConfig is resolved once per BuildNetwork call and passed by value
// to every constructor.
type builderConfig struct {
	idFn      IDFn       // node index → node ID
	rng       *rand.Rand // nil unless WithSeed/WithRand
	speed     float64    // speed of the generated machines
	craftTime float64    // craft time of generated recipes
	headroom  float64    // Chain/SelfFeeding machine over-provisioning
}

// newBuilderConfig applies opts over the defaults; last option wins.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:      DefaultIDFn,
		speed:     defaultMachineSpeed,
		craftTime: defaultCraftTime,
		headroom:  defaultHeadroom,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
