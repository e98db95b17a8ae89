package flow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowplan/catalog"
	"github.com/katalvlaran/flowplan/core"
)

// net is a hand-built network with its catalog.
type net struct {
	t   *testing.T
	g   *core.Graph
	cat *catalog.Catalog
}

func newNet(t *testing.T) *net {
	t.Helper()
	c := catalog.New()
	c.Machines["m1"] = catalog.Machine{ID: "m1", Speed: 1}

	return &net{t: t, g: core.NewGraph(), cat: c}
}

func amt(item string, n float64) catalog.ItemAmount {
	return catalog.ItemAmount{ItemID: item, Amount: n}
}

// recipe registers a recipe running on m1.
func (n *net) recipe(id string, craft float64, in, out []catalog.ItemAmount) {
	n.cat.Recipes[id] = catalog.Recipe{ID: id, Inputs: in, Outputs: out, CraftTime: craft, DefaultMachineID: "m1"}
}

// gatherer registers an extraction definition and a node using it.
func (n *net) gatherer(id, item string, rate float64) {
	n.cat.Gatherers["g-"+id] = catalog.Gatherer{ID: "g-" + id, OutputItemID: item, ExtractionRate: rate}
	n.node(id, core.Gatherer{GathererID: "g-" + id}, nil)
}

func (n *net) production(id, recipe string, machines float64) {
	n.node(id, core.Production{RecipeID: recipe, MachineCount: machines}, nil)
}

func (n *net) sink(id, item string, demand float64) {
	n.node(id, core.Production{}, core.ItemRates{item: demand})
}

func (n *net) node(id string, spec core.Spec, manual core.ItemRates) {
	n.t.Helper()
	require.NoError(n.t, n.g.AddNode(core.Node{ID: id, Name: id, Spec: spec, Manual: manual}))
}

func (n *net) connect(from, to, item string) {
	n.t.Helper()
	require.NoError(n.t, n.g.Connect(from, to, item))
}

// edge returns the first edge from→to carrying item.
func (n *net) edge(from, to, item string) *core.Edge {
	n.t.Helper()
	for i := 0; i < n.g.EdgeCount(); i++ {
		e := n.g.EdgeAt(i)
		if e.Source == from && e.Target == to && e.Item == item {
			return e
		}
	}
	require.FailNowf(n.t, "edge not found", "%s→%s (%s)", from, to, item)

	return nil
}

func (n *net) at(id string) *core.Node {
	n.t.Helper()
	node, ok := n.g.Node(id)
	require.True(n.t, ok, id)

	return node
}

// flowOf returns the flow record of item in direction dir.
func flowOf(t *testing.T, node *core.Node, item string, dir core.Direction) core.ItemFlow {
	t.Helper()
	for _, f := range node.Flows {
		if f.ItemID == item && f.Direction == dir {
			return f
		}
	}
	require.FailNowf(t, "flow not found", "%s %s on %s", dir, item, node.ID)

	return core.ItemFlow{}
}

// ingotNet is the reference scenario: 2 ore → 1 ingot in 1s on one
// machine, a 10 ore/s gatherer and a sink asking for 1 ingot/s.
func ingotNet(t *testing.T) *net {
	n := newNet(t)
	n.recipe("ingot", 1, []catalog.ItemAmount{amt("ore", 2)}, []catalog.ItemAmount{amt("ingot", 1)})
	n.gatherer("mine", "ore", 10)
	n.production("smelter", "ingot", 0)
	n.sink("sink", "ingot", 1)
	n.connect("mine", "smelter", "ore")
	n.connect("smelter", "sink", "ingot")

	return n
}

// requireSane asserts finite, non-negative rates and satisfactions in [0,1].
func requireSane(t *testing.T, g *core.Graph) {
	t.Helper()
	for _, e := range g.Edges() {
		require.GreaterOrEqual(t, e.Rate, 0.0)
		require.False(t, isBad(e.Rate), "%s→%s rate %v", e.Source, e.Target, e.Rate)
		require.False(t, isBad(e.Demand), "%s→%s demand %v", e.Source, e.Target, e.Demand)
	}
	for _, nd := range g.Nodes() {
		require.GreaterOrEqual(t, nd.Satisfaction, 0.0, nd.ID)
		require.LessOrEqual(t, nd.Satisfaction, 1.0, nd.ID)
	}
}

func isBad(v float64) bool { return v != v || v > 1e300 || v < -1e300 }
