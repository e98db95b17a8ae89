// Package flowplan is a production-planning toolkit for factory networks:
// machines, mines and conveyor junctions connected by item edges, solved
// for the rates at which everything actually flows.
//
// 🚀 What is flowplan?
//
//	A deterministic, single-threaded flow-equilibrium solver plus the data
//	plumbing around it:
//		• Model: nodes (production, gatherer, logistics) and item edges
//		• Catalog: recipes, machines and gatherers loaded from a JSON data pack
//		• Solver: demand flows backward, supply flows forward, repeated to a
//		  fixed point, byproduct loops and self-feeding recipes included
//		• Snapshots: JSON or MessagePack, plain, gzip or zstd
//		• Reachability: supply chains and consumers of any node
//		• Fixtures: generated chains, fan-outs, loops and random layered nets
//
// ✨ Why flowplan?
//
//   - Bottlenecks propagate: one short mine shows up at every stage after it
//   - Never fails on bad data: unknown references go inert, ratios are guarded
//   - Same input, same output, every time
//
// Packages:
//
//	core/          Graph, Node, Edge, ItemRates and the per-solve edge index
//	catalog/       recipe, machine and gatherer tables, data-pack loader
//	dfs/           cycle-tolerant processing order (back-edges are cut, not errors)
//	flow/          Solve, water-fill distribution, solver options and stats
//	bfs/           supply-chain and consumer walks
//	snapshot/      graph persistence with pluggable codec and compression
//	builder/       network generators for tests, examples and benchmarks
//	cmd/flowsolve  command-line front end
//
// Quick ASCII example:
//
//	mine ──ore──▶ smelter ──ingot──▶ sink (1 ingot/s)
//
//	solves to ore 2/s on the first edge, ingot 1/s on the second and
//	satisfaction 1 everywhere when the smelter needs 2 ore per ingot.
//
//	go get github.com/katalvlaran/flowplan
package flowplan
