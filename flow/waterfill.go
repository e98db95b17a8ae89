// SPDX-License-Identifier: MIT

package flow

import "math"

// WaterFill splits pool across outlets whose caps are the downstream
// demands. A cap ≤ Epsilon marks an overflow outlet with unlimited room.
//
// Each round hands every still-open outlet a share of the remaining pool
// weighted by its cap (overflow outlets weigh as much as the largest cap, or
// 1 when no outlet is capped); an outlet that reaches its cap takes only
// what fits and closes. Rounds repeat until the pool is exhausted or every
// outlet is closed. As a result:
//
//   - with enough supply every capped outlet receives exactly its demand;
//   - an over-subscribed fan-out gives each outlet cap × pool/Σcaps;
//   - an overflow outlet never receives less than a capped one in the same
//     round.
//
// Whatever is left when every outlet is closed is not sent.
//
// Complexity: O(k²) worst case for k outlets, each round closes at least
// one outlet or drains the pool.
func WaterFill(pool float64, caps []float64) []float64 {
	rates := make([]float64, len(caps))
	pool = finite(pool)
	if pool <= Epsilon || len(caps) == 0 {
		return rates
	}

	// 1. Weights: capped outlets by demand, overflow outlets by the largest cap
	var maxCap float64
	for _, c := range caps {
		if c > Epsilon {
			maxCap = math.Max(maxCap, c)
		}
	}
	overflowWeight := maxCap
	if overflowWeight <= Epsilon {
		overflowWeight = 1
	}

	open := make([]int, 0, len(caps))
	for i := range caps {
		open = append(open, i)
	}

	// 2. Fill rounds
	for pool > Epsilon && len(open) > 0 {
		var totalWeight float64
		for _, i := range open {
			totalWeight += weight(caps[i], overflowWeight)
		}

		next := open[:0]
		var given float64
		closed := false
		for _, i := range open {
			share := pool * weight(caps[i], overflowWeight) / totalWeight
			if caps[i] > Epsilon {
				room := caps[i] - rates[i]
				if room <= share {
					rates[i] += room
					given += room
					closed = true
					continue
				}
			}
			rates[i] += share
			given += share
			next = append(next, i)
		}
		pool -= given
		open = next

		// nobody closed: the whole pool was handed out in this round
		if !closed {
			break
		}
	}

	return rates
}

func weight(c, overflow float64) float64 {
	if c > Epsilon {
		return c
	}

	return overflow
}
