// SPDX-License-Identifier: MIT

package flow

import (
	"log"
	"math"
)

// Solver constants. Their values are part of the solver's observable
// behaviour: changing them changes converged edge rates.
const (
	// Epsilon guards every denominator and marks quantities treated as zero.
	Epsilon = 1e-9

	// Tolerance is the relative edge-value change under which a round is
	// considered stable.
	Tolerance = 1e-6

	// MaxIterations caps the number of backward+forward rounds.
	MaxIterations = 100

	// SelfLoopSeed is the rate given to every self-loop edge before the
	// first round so feedback recipes have something to consume.
	SelfLoopSeed = 1e-6
)

// Round describes one finished backward+forward round.
type Round struct {
	N        int     // 1-based round number
	MaxDelta float64 // largest relative edge change against the previous round
}

// Stats reports how a solve ended. Non-convergence is not an error: the
// solver keeps the state reached at the cutoff.
type Stats struct {
	Rounds    int
	Converged bool
	MaxDelta  float64
	BackEdges int // edges cut by the processing order (cycles)
}

// Option configures a solve.
type Option func(*Options)

// Options holds the solver knobs.
//   - MaxIterations: round ceiling (default 100).
//   - Tolerance: relative convergence threshold (default 1e-6).
//   - Logger: if non-nil, every round and the final outcome are logged.
//   - OnRound: if non-nil, invoked after every round.
//   - Stats: if non-nil, filled in when the solve returns.
type Options struct {
	MaxIterations int
	Tolerance     float64
	Logger        *log.Logger
	OnRound       func(Round)
	Stats         *Stats
}

// DefaultOptions returns the reference configuration.
func DefaultOptions() Options {
	return Options{
		MaxIterations: MaxIterations,
		Tolerance:     Tolerance,
	}
}

// WithMaxIterations overrides the round ceiling. Values < 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n >= 1 {
			o.MaxIterations = n
		}
	}
}

// WithTolerance overrides the convergence threshold. Non-positive or
// non-finite values are ignored.
func WithTolerance(t float64) Option {
	return func(o *Options) {
		if t > 0 && !math.IsInf(t, 0) {
			o.Tolerance = t
		}
	}
}

// WithLogger enables a per-round trace on l.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithOnRound installs a hook called after every round.
func WithOnRound(fn func(Round)) Option {
	return func(o *Options) { o.OnRound = fn }
}

// WithStats makes the solver report its outcome into st.
func WithStats(st *Stats) Option {
	return func(o *Options) { o.Stats = st }
}
