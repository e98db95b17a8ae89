// SPDX-License-Identifier: MIT

package snapshot

import (
	"fmt"

	"github.com/katalvlaran/flowplan/core"
)

// FromGraph flattens g in node-slot and edge order.
func FromGraph(g *core.Graph) Document {
	doc := Document{
		Version: Version,
		Nodes:   make([]NodeDoc, 0, g.NodeCount()),
		Edges:   make([]EdgeDoc, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		nd := NodeDoc{
			ID:           n.ID,
			Name:         n.Name,
			Kind:         n.Kind().String(),
			Manual:       n.Manual.Clone(),
			Demand:       n.Demand.Clone(),
			Supply:       n.Supply.Clone(),
			Output:       n.Output.Clone(),
			Requested:    n.Requested.Clone(),
			Capacity:     n.Capacity.Clone(),
			Satisfaction: n.Satisfaction,
		}
		switch spec := n.Spec.(type) {
		case core.Production:
			nd.RecipeID = spec.RecipeID
			nd.MachineID = spec.MachineID
			nd.MachineCount = spec.MachineCount
		case core.Gatherer:
			nd.GathererID = spec.GathererID
			nd.MachineID = spec.MachineID
			nd.MachineCount = spec.MachineCount
			nd.Veins = spec.Veins
		}
		for _, f := range n.Flows {
			nd.Flows = append(nd.Flows, FlowDoc{
				Item:      f.ItemID,
				Direction: f.Direction.String(),
				Demand:    f.Demand,
				Actual:    f.Actual,
				Capacity:  f.Capacity,
				Sent:      f.Sent,
			})
		}
		doc.Nodes = append(doc.Nodes, nd)
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, EdgeDoc(e))
	}

	return doc
}

// Graph rebuilds the network. Errors from core (duplicate IDs, dangling
// edges) are wrapped with the offending node or edge.
func (d Document) Graph() (*core.Graph, error) {
	if d.Version > Version {
		return nil, fmt.Errorf("snapshot: version %d: %w", d.Version, ErrUnsupportedVersion)
	}

	g := core.NewGraph()
	for i, nd := range d.Nodes {
		spec, err := nd.spec()
		if err != nil {
			return nil, fmt.Errorf("snapshot: node %d (%q): %w", i, nd.ID, err)
		}
		n := core.Node{
			ID:           nd.ID,
			Name:         nd.Name,
			Spec:         spec,
			Manual:       core.ItemRates(nd.Manual),
			Demand:       core.ItemRates(nd.Demand),
			Supply:       core.ItemRates(nd.Supply),
			Output:       core.ItemRates(nd.Output),
			Requested:    core.ItemRates(nd.Requested),
			Capacity:     core.ItemRates(nd.Capacity),
			Satisfaction: nd.Satisfaction,
		}
		for _, f := range nd.Flows {
			dir := core.Input
			if f.Direction == core.Output.String() {
				dir = core.Output
			}
			n.Flows = append(n.Flows, core.ItemFlow{
				ItemID:    f.Item,
				Direction: dir,
				Demand:    f.Demand,
				Actual:    f.Actual,
				Capacity:  f.Capacity,
				Sent:      f.Sent,
			})
		}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("snapshot: node %d: %w", i, err)
		}
	}
	for i, ed := range d.Edges {
		if err := g.AddEdge(core.Edge(ed)); err != nil {
			return nil, fmt.Errorf("snapshot: edge %d: %w", i, err)
		}
	}

	return g, nil
}

func (nd NodeDoc) spec() (core.Spec, error) {
	kind, ok := core.ParseKind(nd.Kind)
	if !ok {
		return nil, fmt.Errorf("kind %q: %w", nd.Kind, ErrUnknownKind)
	}
	switch kind {
	case core.KindGatherer:
		return core.Gatherer{
			GathererID:   nd.GathererID,
			MachineID:    nd.MachineID,
			Veins:        nd.Veins,
			MachineCount: nd.MachineCount,
		}, nil
	case core.KindLogistics:
		return core.Logistics{}, nil
	default:
		return core.Production{
			RecipeID:     nd.RecipeID,
			MachineID:    nd.MachineID,
			MachineCount: nd.MachineCount,
		}, nil
	}
}
