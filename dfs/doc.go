// Package dfs implements the cycle-tolerant depth-first traversal that gives
// the flow solver its processing order.
//
// What:
//
//   - ProcessingOrder: explicit-stack DFS over a core.Graph using vertex
//     colouring (White, Gray, Black). Roots are true sources first, then any
//     node left unvisited, so pure cycles are covered. Back-edges (a Gray
//     successor) are skipped and recorded instead of failing.
//   - Order.Nodes: reversed post-order, sources first. The solver's forward
//     pass walks it as-is and the backward pass walks Order.Reverse().
//
// Why:
//
//   - On a DAG the order is topological, so a single backward+forward round
//     already reaches the fixed point.
//   - On cyclic networks (byproduct loops, self-feeding recipes) it is a
//     convergence accelerant only; correctness comes from repeating rounds.
//   - No recursion: chains of any depth are safe.
//
// Complexity:
//
//   - ProcessingOrder: Time O(V+E), Memory O(V)
//
// Errors:
//
//   - ErrGraphNil  graph or index pointer is nil
package dfs
