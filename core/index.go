// SPDX-License-Identifier: MIT

package core

import "sort"

// Adjacency lists the edges touching one node, as indices into Graph.Edges.
type Adjacency struct {
	In  []int // incoming edges, in edge order
	Out []int // outgoing edges, in edge order

	InByItem  map[string][]int
	OutByItem map[string][]int

	InItems  []string // sorted keys of InByItem
	OutItems []string // sorted keys of OutByItem
}

// Index is the per-node edge lookup built once per solve.
type Index struct {
	Nodes []Adjacency // by node slot
}

// BuildIndex groups the edges of g by endpoint and item.
// A self-loop appears in both In and Out of its node.
//
// Complexity:
//
//	Time:   O(V + E + Σ items·log items) for the sorted key lists.
//	Memory: O(V + E).
func BuildIndex(g *Graph) *Index {
	idx := &Index{Nodes: make([]Adjacency, len(g.nodes))}
	for i := range idx.Nodes {
		idx.Nodes[i] = Adjacency{
			InByItem:  make(map[string][]int),
			OutByItem: make(map[string][]int),
		}
	}

	for ei, e := range g.edges {
		src, ok := g.slots[e.Source]
		if !ok {
			continue
		}
		dst, ok := g.slots[e.Target]
		if !ok {
			continue
		}
		out := &idx.Nodes[src]
		out.Out = append(out.Out, ei)
		out.OutByItem[e.Item] = append(out.OutByItem[e.Item], ei)

		in := &idx.Nodes[dst]
		in.In = append(in.In, ei)
		in.InByItem[e.Item] = append(in.InByItem[e.Item], ei)
	}

	for i := range idx.Nodes {
		a := &idx.Nodes[i]
		a.InItems = sortedKeys(a.InByItem)
		a.OutItems = sortedKeys(a.OutByItem)
	}

	return idx
}

// Successors returns the target slots of the outgoing edges of slot, in
// edge order. Duplicates are kept.
func (idx *Index) Successors(g *Graph, slot int) []int {
	out := make([]int, 0, len(idx.Nodes[slot].Out))
	for _, ei := range idx.Nodes[slot].Out {
		out = append(out, g.slots[g.edges[ei].Target])
	}

	return out
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
