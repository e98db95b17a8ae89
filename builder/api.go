// SPDX-License-Identifier: MIT
// Package: flowplan/builder
//
// api.go - public entry point and the Network under construction.
//
// Contract:
//   - One orchestrator: BuildNetwork(bopts, cons...). It creates an empty
//     graph and catalog, resolves the config, runs cons in order.
//   - Constructors validate early and return sentinel errors; they never panic.
//   - Same options, seed and constructor order ⇒ identical networks.

package builder

import (
	"fmt"

	"github.com/katalvlaran/flowplan/catalog"
	"github.com/katalvlaran/flowplan/core"
)

// Network is a generated factory network: the graph, the catalog its nodes
// reference, and the IDs of notable nodes grouped by role. Role slices
// accumulate across constructors in creation order.
type Network struct {
	Graph   *core.Graph
	Catalog *catalog.Catalog

	Sources []string // gatherers
	Stages  []string // recipe-running production nodes
	Sinks   []string // terminal consumers carrying a Manual demand

	nodes   int // next node index handed to cfg.idFn
	items   int
	recipes int
}

// Constructor adds one topology to net using the resolved config.
type Constructor func(net *Network, cfg builderConfig) error

// BuildNetwork creates an empty network, resolves bopts and applies all
// constructors in order. The first constructor error is returned wrapped as
// "BuildNetwork: %w"; the partial network is discarded.
//
// Complexity: O(len(bopts)) + Σ cost of each constructor.
func BuildNetwork(bopts []BuilderOption, cons ...Constructor) (*Network, error) {
	cfg := newBuilderConfig(bopts...)
	net := &Network{
		Graph:   core.NewGraph(),
		Catalog: catalog.New(),
	}
	net.Catalog.Machines[defaultMachineID] = catalog.Machine{ID: defaultMachineID, Name: "Assembler", Speed: cfg.speed}
	net.Catalog.Machines[defaultExtractorID] = catalog.Machine{ID: defaultExtractorID, Name: "Extractor", Speed: cfg.speed}

	for _, c := range cons {
		if err := c(net, cfg); err != nil {
			return nil, fmt.Errorf("BuildNetwork: %w", err)
		}
	}

	return net, nil
}

// newItem registers a fresh catalog item and returns its ID.
func (net *Network) newItem() string {
	id := fmt.Sprintf("item%d", net.items)
	net.items++
	net.Catalog.Items[id] = catalog.Item{ID: id, Name: id}

	return id
}

// newRecipe registers a recipe on the default machine and returns its ID.
func (net *Network) newRecipe(cfg builderConfig, in, out []catalog.ItemAmount) string {
	id := fmt.Sprintf("recipe%d", net.recipes)
	net.recipes++
	net.Catalog.Recipes[id] = catalog.Recipe{
		ID:               id,
		Name:             id,
		Inputs:           in,
		Outputs:          out,
		CraftTime:        cfg.craftTime,
		DefaultMachineID: defaultMachineID,
	}

	return id
}

// newGatherer registers a gatherer definition whose capacity on one vein of
// the configured machine equals capacity.
func (net *Network) newGatherer(cfg builderConfig, item string, capacity float64) string {
	id := "gather-" + item
	net.Catalog.Gatherers[id] = catalog.Gatherer{
		ID:             id,
		Name:           id,
		MachineID:      defaultExtractorID,
		OutputItemID:   item,
		OutputAmount:   1,
		ExtractionRate: capacity / cfg.speed,
	}

	return id
}

// addNode stores a node under the next generated ID.
func (net *Network) addNode(method string, cfg builderConfig, name string, spec core.Spec, manual core.ItemRates) (string, error) {
	id := cfg.idFn(net.nodes)
	net.nodes++
	if err := net.Graph.AddNode(core.Node{ID: id, Name: name, Spec: spec, Manual: manual}); err != nil {
		return "", fmt.Errorf("%s: AddNode(%s): %v: %w", method, id, err, ErrConstructFailed)
	}

	return id, nil
}

// connect adds an item edge, wrapping failures with method context.
func (net *Network) connect(method, from, to, item string) error {
	if err := net.Graph.Connect(from, to, item); err != nil {
		return fmt.Errorf("%s: Connect(%s→%s): %v: %w", method, from, to, err, ErrConstructFailed)
	}

	return nil
}
