// Package flow implements the flow-equilibrium solver of a factory network:
// for every node of a *core.Graph it determines how much of each item the
// node requests from upstream, how much it receives, how much it can
// physically produce, what it actually produces, and its satisfaction ratio,
// simultaneously across the whole network, cycles included.
//
// The solve is a fixed-point iteration over two passes:
//
//   - Backward (demand propagation), sinks first: each node turns the demand
//     on its outgoing edges (or a manual target) into required inputs and
//     spreads them over its incoming edges, proportionally to last round's
//     rates (evenly on the first round).
//
//   - Method: recipes use one throughput scale per node, driven by the most
//     constraining output.
//
//   - Forward (supply propagation), sources first: each node clamps what it
//     receives to its capacity (scaling the incoming edges down to match),
//     derives satisfaction from its worst-supplied input and water-fills its
//     output across outgoing edges capped by their demand.
//
//   - Method: see WaterFill.
//
// Rounds repeat until no edge Demand or Rate moves by more than Tolerance
// (relative), or MaxIterations is reached. The traversal order from package
// dfs makes acyclic networks settle after the first round; cyclic networks
// (byproduct loops, self-feeding recipes) settle over several rounds.
//
// # Node behaviour
//
//	Production + recipe   capacity = amount / (craftTime/speed) × machines;
//	                      without incoming edges it runs as a source
//	Production, no recipe consumer (with inputs) or external source (without)
//	Gatherer              capacity = extractionRate × veins × speed
//	Logistics             output = delivered, per item
//
// # API
//
//	func Solve(g *core.Graph,
//	    recipes catalog.RecipeTable,
//	    machines catalog.MachineTable,     // may be nil
//	    gatherers catalog.GathererTable,   // may be nil
//	    opts ...Option) *core.Graph
//
//	func SolveCatalog(g *core.Graph, c *catalog.Catalog, opts ...Option) *core.Graph
//
// Options: WithMaxIterations, WithTolerance, WithLogger, WithOnRound,
// WithStats.
//
// # Errors
//
// None. Unknown recipe or gatherer references make a node inert (zero
// demand, zero output, zero-rate edges). A non-positive or non-finite
// effective machine speed forces satisfaction to 0. Every ratio guards its
// denominator with Epsilon. Non-convergence is only visible through Stats.
//
// # Concurrency
//
// Solve is synchronous and single-threaded and mutates the graph in place.
// Given the same graph and tables it always produces the same result.
package flow
