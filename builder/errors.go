// SPDX-License-Identifier: MIT
// Package: flowplan/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only package-level sentinels are exposed; callers branch with errors.Is.
//   - Constructors attach context with %w ("Chain: depth=0 < min=1: ...").
//   - Option constructors panic on meaningless input; constructors never do.

package builder

import "errors"

// ErrTooFewNodes indicates that a size parameter (depth, layers, width,
// number of sinks) is below the constructor's minimum.
var ErrTooFewNodes = errors.New("builder: parameter too small")

// ErrBadRate indicates a negative, zero or non-finite rate, amount or
// capacity where a positive finite one is required.
var ErrBadRate = errors.New("builder: invalid rate")

// ErrNeedRandSource indicates that a stochastic constructor ran without an
// RNG (use WithSeed or WithRand).
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates that the network could not be assembled,
// typically because a generated ID collided with an existing node or
// catalog entry.
var ErrConstructFailed = errors.New("builder: construction failed")
