// SPDX-License-Identifier: MIT

package flow

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/katalvlaran/flowplan/core"
)

// relDiff returns |a−b| / max(|a|,|b|), or 0 when both are within Epsilon
// of zero.
func relDiff(a, b float64) float64 {
	m := math.Max(math.Abs(a), math.Abs(b))
	if m <= Epsilon {
		return 0
	}

	return math.Abs(a-b) / m
}

// ratio returns num/den, or def when den is within Epsilon of zero.
func ratio(num, den, def float64) float64 {
	if math.Abs(den) <= Epsilon {
		return def
	}

	return num / den
}

// clamp01 bounds v to [0,1]; NaN becomes 0.
func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// finite replaces NaN, infinities and negatives with 0 so edge rates stay
// finite and non-negative.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}

	return v
}

// sumDemand totals the Demand of the given edges.
func sumDemand(g *core.Graph, edges []int) float64 {
	return lo.SumBy(edges, func(ei int) float64 { return g.EdgeAt(ei).Demand })
}

// sumRate totals the Rate of the given edges.
func sumRate(g *core.Graph, edges []int) float64 {
	return lo.SumBy(edges, func(ei int) float64 { return g.EdgeAt(ei).Rate })
}

// unionKeys returns the sorted union of item IDs across maps and extra IDs.
func unionKeys(extra []string, maps ...core.ItemRates) []string {
	keys := append([]string(nil), extra...)
	for _, m := range maps {
		keys = append(keys, lo.Keys(map[string]float64(m))...)
	}
	keys = lo.Uniq(keys)
	sort.Strings(keys)

	return keys
}

// adjItems returns the incoming and outgoing item IDs of a node in a fresh
// slice.
func adjItems(adj *core.Adjacency) []string {
	out := make([]string, 0, len(adj.InItems)+len(adj.OutItems))
	out = append(out, adj.InItems...)

	return append(out, adj.OutItems...)
}
