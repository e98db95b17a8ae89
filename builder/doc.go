// Package builder generates factory-network fixtures for tests, examples
// and benchmarks: a core.Graph together with the catalog.Catalog its nodes
// reference.
//
// It keeps the functional-options shape used across the module:
//
//   - BuildNetwork(bopts, cons...) is the only entry point. It creates an
//     empty graph and catalog, resolves the options and applies the
//     constructors in order.
//   - Constructors: Chain, FanOut, SelfFeeding, RandomLayered.
//   - Options: WithIDScheme, WithSeed, WithRand, WithMachineSpeed,
//     WithCraftTime, WithHeadroom.
//   - ID schemes (IDFn): DefaultIDFn ("0","1",…), SymbolNumberIDFn(prefix)
//     ("n0","n1",…), UUIDIDFn(namespace) (stable version-5 UUIDs).
//
// Generated catalogs register two machines, "assembler" for recipes and
// "extractor" for gatherers, both running at the configured speed.
// Item and recipe IDs are "item<k>" and "recipe<k>", numbered across the
// whole network.
//
// Errors:
//
//	ErrTooFewNodes     - size parameter below the constructor minimum.
//	ErrBadRate         - negative, zero or non-finite rate where one is required.
//	ErrNeedRandSource  - RandomLayered without WithSeed/WithRand.
//	ErrConstructFailed - generated node ID collided with an existing one.
//
// Option constructors panic on meaningless input (nil functions,
// non-positive speeds); constructors only return errors.
package builder
