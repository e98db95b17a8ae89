// Package bfs walks a factory network breadth-first along its item edges,
// answering reachability questions the flow solver itself does not ask:
// which nodes feed a given sink, which consumers a given mine supplies, and
// how many hops separate them.
//
// What
//
//   - Multi-source search from one or more node IDs.
//   - Direction: Downstream (source → target) or Upstream (target → source).
//   - Result: visit Order (node slots), Depth per slot, Parent and Via
//     (the first edge used to reach each slot) for path reconstruction.
//   - Edge filtering by item (WithItems) or by predicate (WithFilterEdge).
//   - MaxDepth limit, OnVisit hook, context cancellation.
//
// Determinism
//
//	Neighbours are taken from core.Index in edge order, so the visit
//	sequence is reproducible for a given graph.
//
// Complexity (V = nodes, E = edges)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Usage
//
//	// supply chain of the "sink" node, ore edges only
//	res, err := bfs.SupplyChain(g, nil, "sink", bfs.WithItems("ore", "ingot"))
//	if err != nil {
//	    // ErrGraphNil, ErrNoStart, ErrStartNotFound, ErrOptionViolation,
//	    // ctx.Err() or a wrapped OnVisit error
//	}
//	for _, slot := range res.Order {
//	    fmt.Println(g.NodeAt(slot).ID, res.Depth[slot])
//	}
//
// The flowsolve command uses SupplyChain for its -focus flag.
package bfs
