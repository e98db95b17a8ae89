package flow_test

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/flowplan/builder"
	"github.com/katalvlaran/flowplan/catalog"
	"github.com/katalvlaran/flowplan/core"
	"github.com/katalvlaran/flowplan/flow"
)

const tol = 1e-9

// SolveSuite exercises the solver on small, hand-checked networks.
type SolveSuite struct {
	suite.Suite
}

// TestIngot is the reference scenario.
func (s *SolveSuite) TestIngot() {
	n := ingotNet(s.T())
	var st flow.Stats
	flow.SolveCatalog(n.g, n.cat, flow.WithStats(&st))

	smelter := n.at("smelter")
	require.InDelta(s.T(), 2.0, smelter.Demand["ore"], tol)
	require.InDelta(s.T(), 2.0, n.edge("mine", "smelter", "ore").Rate, tol)
	require.InDelta(s.T(), 1.0, smelter.Satisfaction, tol)
	require.InDelta(s.T(), 1.0, n.edge("smelter", "sink", "ingot").Rate, tol)
	require.InDelta(s.T(), 1.0, n.at("sink").Satisfaction, tol)

	require.True(s.T(), st.Converged)
	require.Equal(s.T(), 2, st.Rounds)
	require.Zero(s.T(), st.BackEdges)

	// flow records
	in := flowOf(s.T(), smelter, "ore", core.Input)
	require.InDelta(s.T(), 2.0, in.Demand, tol)
	require.InDelta(s.T(), 2.0, in.Actual, tol)
	require.InDelta(s.T(), 2.0, in.Capacity, tol)
	require.InDelta(s.T(), 2.0, in.Sent, tol)
	out := flowOf(s.T(), smelter, "ingot", core.Output)
	require.InDelta(s.T(), 1.0, out.Demand, tol)
	require.InDelta(s.T(), 1.0, out.Actual, tol)
	require.InDelta(s.T(), 1.0, out.Capacity, tol)
	require.InDelta(s.T(), 1.0, out.Sent, tol)
	require.Len(s.T(), smelter.Flows, 2)

	mine := flowOf(s.T(), n.at("mine"), "ore", core.Output)
	require.InDelta(s.T(), 10.0, mine.Capacity, tol)
	require.InDelta(s.T(), 2.0, mine.Actual, tol)
}

// TestLinearChain checks root demand d × 2^n on an unconstrained chain.
func (s *SolveSuite) TestLinearChain() {
	for _, depth := range []int{1, 3, 6} {
		const d = 1.5
		nw, err := builder.BuildNetwork(nil, builder.Chain(depth, 2, d))
		require.NoError(s.T(), err)
		flow.SolveCatalog(nw.Graph, nw.Catalog)

		root := nw.Graph.EdgeAt(0)
		require.Equal(s.T(), nw.Sources[0], root.Source)
		want := d * math.Pow(2, float64(depth))
		require.InDelta(s.T(), want, root.Demand, 1e-9*want)
		require.InDelta(s.T(), want, root.Rate, 1e-9*want)
		for _, id := range append(append([]string{}, nw.Stages...), nw.Sinks...) {
			node, _ := nw.Graph.Node(id)
			require.InDelta(s.T(), 1.0, node.Satisfaction, tol, "depth %d node %s", depth, id)
		}
	}
}

// TestBottleneck checks that a short source caps every downstream node.
func (s *SolveSuite) TestBottleneck() {
	n := newNet(s.T())
	n.recipe("ingot", 1, []catalog.ItemAmount{amt("ore", 2)}, []catalog.ItemAmount{amt("ingot", 1)})
	n.recipe("plate", 1, []catalog.ItemAmount{amt("ingot", 1)}, []catalog.ItemAmount{amt("plate", 1)})
	n.gatherer("mine", "ore", 1)
	n.production("smelter", "ingot", 5)
	n.production("press", "plate", 5)
	n.sink("sink", "plate", 1)
	n.connect("mine", "smelter", "ore")
	n.connect("smelter", "press", "ingot")
	n.connect("press", "sink", "plate")

	flow.SolveCatalog(n.g, n.cat)

	require.InDelta(s.T(), 1.0, n.edge("mine", "smelter", "ore").Rate, tol)
	require.InDelta(s.T(), 0.5, n.at("smelter").Satisfaction, tol)
	require.InDelta(s.T(), 0.5, n.edge("smelter", "press", "ingot").Rate, tol)
	require.InDelta(s.T(), 0.5, n.at("press").Satisfaction, tol)
	require.InDelta(s.T(), 0.5, n.edge("press", "sink", "plate").Rate, tol)
	require.InDelta(s.T(), 0.5, n.at("sink").Satisfaction, tol)
}

// TestMultiOutput checks one throughput scale driven by the larger goal,
// with the smaller output's edge capped at its demand.
func (s *SolveSuite) TestMultiOutput() {
	n := newNet(s.T())
	n.recipe("split", 1, []catalog.ItemAmount{amt("x", 1)}, []catalog.ItemAmount{amt("a", 1), amt("b", 1)})
	n.gatherer("src", "x", 10)
	n.production("splitter", "split", 2)
	n.sink("sa", "a", 2)
	n.sink("sb", "b", 1)
	n.connect("src", "splitter", "x")
	n.connect("splitter", "sa", "a")
	n.connect("splitter", "sb", "b")

	flow.SolveCatalog(n.g, n.cat)

	sp := n.at("splitter")
	require.InDelta(s.T(), 1.0, sp.Satisfaction, tol)
	require.InDelta(s.T(), 2.0, sp.Demand["x"], tol)
	require.InDelta(s.T(), 2.0, n.edge("splitter", "sa", "a").Rate, tol)
	require.InDelta(s.T(), 1.0, n.edge("splitter", "sb", "b").Rate, tol)

	b := flowOf(s.T(), sp, "b", core.Output)
	require.InDelta(s.T(), 2.0, b.Actual, tol)
	require.InDelta(s.T(), 1.0, b.Sent, tol)
	require.InDelta(s.T(), 1.0, n.at("sa").Satisfaction, tol)
	require.InDelta(s.T(), 1.0, n.at("sb").Satisfaction, tol)
}

// TestFanOut checks full service below capacity and proportional split above.
func (s *SolveSuite) TestFanOut() {
	cases := []struct {
		name     string
		capacity float64
		want     []float64
	}{
		{"enough", 10, []float64{2, 4}},
		{"oversubscribed", 3, []float64{1, 2}},
	}
	for _, tc := range cases {
		nw, err := builder.BuildNetwork(nil, builder.FanOut(tc.capacity, 2, 4))
		require.NoError(s.T(), err)
		flow.SolveCatalog(nw.Graph, nw.Catalog)

		for i, want := range tc.want {
			require.InDelta(s.T(), want, nw.Graph.EdgeAt(i).Rate, tol, tc.name)
		}
	}
}

// TestCapacityClamp checks that a node consumes exactly its capacity and
// the incoming edge is scaled down to match.
func (s *SolveSuite) TestCapacityClamp() {
	n := ingotNet(s.T())
	n.at("sink").Manual["ingot"] = 3

	flow.SolveCatalog(n.g, n.cat)

	sm := n.at("smelter")
	e := n.edge("mine", "smelter", "ore")
	require.InDelta(s.T(), 6.0, e.Demand, tol)
	require.InDelta(s.T(), 2.0, e.Rate, tol)
	require.InDelta(s.T(), 2.0, sm.Supply["ore"], tol)
	require.InDelta(s.T(), 1.0/3, sm.Satisfaction, tol)
	require.InDelta(s.T(), 1.0, sm.Output["ingot"], tol)
	require.InDelta(s.T(), 1.0/3, n.at("sink").Satisfaction, tol)

	in := flowOf(s.T(), sm, "ore", core.Input)
	require.InDelta(s.T(), 6.0, in.Demand, tol) // delivered before the clamp
	require.InDelta(s.T(), 2.0, in.Actual, tol)

	// supply and output never exceed capacity
	for _, node := range n.g.Nodes() {
		for item, v := range node.Supply {
			require.LessOrEqual(s.T(), v, node.Capacity[item]+tol)
		}
		for item, v := range node.Output {
			require.LessOrEqual(s.T(), v, node.Capacity[item]+tol)
		}
	}
}

// TestSelfLoop checks that a breeder recipe settles to sane values.
func (s *SolveSuite) TestSelfLoop() {
	nw, err := builder.BuildNetwork(nil, builder.SelfFeeding(1))
	require.NoError(s.T(), err)

	var st flow.Stats
	flow.SolveCatalog(nw.Graph, nw.Catalog, flow.WithStats(&st))

	requireSane(s.T(), nw.Graph)
	require.Equal(s.T(), 1, st.BackEdges)
	require.LessOrEqual(s.T(), st.Rounds, flow.MaxIterations)
}

// TestTwoNodeCycle checks a byproduct loop: residue from the refinery is
// recycled into oil and fed back.
func (s *SolveSuite) TestTwoNodeCycle() {
	n := newNet(s.T())
	n.recipe("refine", 1, []catalog.ItemAmount{amt("oil", 2)}, []catalog.ItemAmount{amt("fuel", 1), amt("residue", 1)})
	n.recipe("recycle", 1, []catalog.ItemAmount{amt("residue", 1)}, []catalog.ItemAmount{amt("oil", 1)})
	n.gatherer("well", "oil", 10)
	n.production("refinery", "refine", 10)
	n.node("recycler", core.Production{RecipeID: "recycle", MachineCount: 10}, core.ItemRates{"oil": 1})
	n.sink("sink", "fuel", 1)
	n.connect("well", "refinery", "oil")
	n.connect("refinery", "recycler", "residue")
	n.connect("recycler", "refinery", "oil")
	n.connect("refinery", "sink", "fuel")

	var st flow.Stats
	flow.SolveCatalog(n.g, n.cat, flow.WithStats(&st))

	require.True(s.T(), st.Converged)
	require.Equal(s.T(), 1, st.BackEdges)
	require.InDelta(s.T(), 4.0/3, n.edge("well", "refinery", "oil").Rate, 1e-6)
	require.InDelta(s.T(), 2.0/3, n.edge("recycler", "refinery", "oil").Rate, 1e-6)
	require.InDelta(s.T(), 1.0, n.edge("refinery", "sink", "fuel").Rate, 1e-6)
	require.InDelta(s.T(), 1.0, n.at("refinery").Satisfaction, 1e-6)
	requireSane(s.T(), n.g)

	// the recycler makes more oil than the refinery takes back
	oil := flowOf(s.T(), n.at("recycler"), "oil", core.Output)
	require.Greater(s.T(), oil.Actual, oil.Sent)
}

// TestTwoNodeCycleUnattended runs the same loop without a recycler target.
// The oil split between well and recycler lags one round behind and keeps
// swinging, so the solve stops at the round cap with sane values.
func (s *SolveSuite) TestTwoNodeCycleUnattended() {
	n := newNet(s.T())
	n.recipe("refine", 1, []catalog.ItemAmount{amt("oil", 2)}, []catalog.ItemAmount{amt("fuel", 1), amt("residue", 1)})
	n.recipe("recycle", 1, []catalog.ItemAmount{amt("residue", 1)}, []catalog.ItemAmount{amt("oil", 1)})
	n.gatherer("well", "oil", 10)
	n.production("refinery", "refine", 10)
	n.production("recycler", "recycle", 10)
	n.sink("sink", "fuel", 1)
	n.connect("well", "refinery", "oil")
	n.connect("refinery", "recycler", "residue")
	n.connect("recycler", "refinery", "oil")
	n.connect("refinery", "sink", "fuel")

	var st flow.Stats
	flow.SolveCatalog(n.g, n.cat, flow.WithStats(&st))

	require.False(s.T(), st.Converged)
	require.Equal(s.T(), flow.MaxIterations, st.Rounds)
	require.Equal(s.T(), 1, st.BackEdges)
	requireSane(s.T(), n.g)
}

// TestLogistics checks pass-through merge and split.
func (s *SolveSuite) TestLogistics() {
	n := newNet(s.T())
	n.gatherer("g1", "ore", 1)
	n.gatherer("g2", "ore", 1)
	n.node("bus", core.Logistics{}, nil)
	n.sink("s1", "ore", 1)
	n.sink("s2", "ore", 3)
	n.connect("g1", "bus", "ore")
	n.connect("g2", "bus", "ore")
	n.connect("bus", "s1", "ore")
	n.connect("bus", "s2", "ore")

	flow.SolveCatalog(n.g, n.cat)

	bus := n.at("bus")
	require.InDelta(s.T(), 4.0, bus.Demand["ore"], tol)
	require.InDelta(s.T(), 2.0, n.edge("g1", "bus", "ore").Demand, tol)
	require.InDelta(s.T(), 2.0, n.edge("g2", "bus", "ore").Demand, tol)
	require.InDelta(s.T(), 2.0, bus.Output["ore"], tol)
	require.InDelta(s.T(), 0.5, bus.Satisfaction, tol)
	require.InDelta(s.T(), 0.5, n.edge("bus", "s1", "ore").Rate, tol)
	require.InDelta(s.T(), 1.5, n.edge("bus", "s2", "ore").Rate, tol)
}

// TestExternalSource checks a recipe-less production node without inputs.
func (s *SolveSuite) TestExternalSource() {
	n := ingotNet(s.T())
	require.NoError(s.T(), n.g.RemoveNode("mine"))
	n.node("port", core.Production{}, core.ItemRates{"ore": 1.5})
	n.connect("port", "smelter", "ore")

	flow.SolveCatalog(n.g, n.cat)

	require.InDelta(s.T(), 1.5, n.edge("port", "smelter", "ore").Rate, tol)
	require.InDelta(s.T(), 0.75, n.at("smelter").Satisfaction, tol)
	require.InDelta(s.T(), 1.0, n.at("port").Satisfaction, tol)

	// without a ceiling the source delivers whatever is asked
	delete(n.at("port").Manual, "ore")
	flow.SolveCatalog(n.g, n.cat)
	require.InDelta(s.T(), 2.0, n.edge("port", "smelter", "ore").Rate, tol)
	require.InDelta(s.T(), 1.0, n.at("smelter").Satisfaction, tol)
}

// TestMachineSpeedAndVeins checks capacity scaling.
func (s *SolveSuite) TestMachineSpeedAndVeins() {
	n := ingotNet(s.T())
	n.cat.Machines["fast"] = catalog.Machine{ID: "fast", Speed: 2}
	n.cat.Machines["drill"] = catalog.Machine{ID: "drill", Speed: 2}
	sm := n.at("smelter")
	sm.Spec = core.Production{RecipeID: "ingot", MachineID: "fast"}
	mine := n.at("mine")
	mine.Spec = core.Gatherer{GathererID: "g-mine", MachineID: "drill", Veins: 3}
	n.at("sink").Manual["ingot"] = 100

	flow.SolveCatalog(n.g, n.cat)

	require.InDelta(s.T(), 60.0, flowOf(s.T(), n.at("mine"), "ore", core.Output).Capacity, tol)
	require.InDelta(s.T(), 2.0, flowOf(s.T(), sm, "ingot", core.Output).Capacity, tol)
	require.InDelta(s.T(), 4.0, flowOf(s.T(), sm, "ore", core.Input).Capacity, tol)
	require.InDelta(s.T(), 2.0, n.edge("smelter", "sink", "ingot").Rate, tol)

	// an unknown machine on both node and recipe runs at speed 1
	sm.Spec = core.Production{RecipeID: "ingot", MachineID: "ghost"}
	delete(n.cat.Machines, "m1")
	flow.SolveCatalog(n.g, n.cat)
	require.InDelta(s.T(), 1.0, n.edge("smelter", "sink", "ingot").Rate, tol)
}

// TestUnknownReferences checks that nodes with unknown catalog IDs are inert.
func (s *SolveSuite) TestUnknownReferences() {
	n := ingotNet(s.T())
	n.at("smelter").Spec = core.Production{RecipeID: "nope"}

	flow.SolveCatalog(n.g, n.cat)

	sm := n.at("smelter")
	require.Zero(s.T(), sm.Satisfaction)
	require.Empty(s.T(), sm.Demand)
	require.Empty(s.T(), sm.Output)
	for _, e := range n.g.Edges() {
		require.Zero(s.T(), e.Rate)
	}

	n.at("mine").Spec = core.Gatherer{GathererID: "nope"}
	flow.SolveCatalog(n.g, n.cat)
	require.Zero(s.T(), n.at("mine").Satisfaction)
	requireSane(s.T(), n.g)
}

// TestDegenerateSpeed checks that a non-positive machine speed zeroes the node.
func (s *SolveSuite) TestDegenerateSpeed() {
	for _, speed := range []float64{-1, 0} {
		s.Run(fmt.Sprintf("speed %v", speed), func() {
			n := ingotNet(s.T())
			n.cat.Machines["broken"] = catalog.Machine{ID: "broken", Speed: speed}
			n.at("smelter").Spec = core.Production{RecipeID: "ingot", MachineID: "broken"}

			flow.SolveCatalog(n.g, n.cat)

			sm := n.at("smelter")
			require.Zero(s.T(), sm.Satisfaction)
			require.Zero(s.T(), sm.Demand["ore"])
			require.Zero(s.T(), sm.Output["ingot"])
			require.Zero(s.T(), n.edge("mine", "smelter", "ore").Rate)
			require.Zero(s.T(), n.edge("smelter", "sink", "ingot").Rate)
			require.Zero(s.T(), n.at("sink").Satisfaction)
		})
	}
}

// TestUnfedRecipe checks that a recipe node with no incoming edges acts as
// a source whose yield ceiling is its recipe capacity.
func (s *SolveSuite) TestUnfedRecipe() {
	n := newNet(s.T())
	n.recipe("ingot", 1, []catalog.ItemAmount{amt("ore", 2)}, []catalog.ItemAmount{amt("ingot", 1)})
	n.production("smelter", "ingot", 2)
	n.sink("sink", "ingot", 1)
	n.connect("smelter", "sink", "ingot")

	flow.SolveCatalog(n.g, n.cat)

	sm := n.at("smelter")
	require.InDelta(s.T(), 1.0, sm.Satisfaction, tol)
	require.InDelta(s.T(), 1.0, sm.Output["ingot"], tol)
	require.InDelta(s.T(), 2.0, sm.Capacity["ingot"], tol)
	require.Zero(s.T(), sm.Demand["ore"])
	require.InDelta(s.T(), 1.0, n.edge("smelter", "sink", "ingot").Rate, tol)
	require.InDelta(s.T(), 1.0, n.at("sink").Satisfaction, tol)

	// demand beyond two machines is clamped to their output
	n.at("sink").Manual["ingot"] = 5
	flow.SolveCatalog(n.g, n.cat)

	sm = n.at("smelter")
	require.InDelta(s.T(), 1.0, sm.Satisfaction, tol)
	require.InDelta(s.T(), 2.0, sm.Output["ingot"], tol)
	require.InDelta(s.T(), 2.0, n.edge("smelter", "sink", "ingot").Rate, tol)
	require.InDelta(s.T(), 0.4, n.at("sink").Satisfaction, tol)
	requireSane(s.T(), n.g)
}

// TestIdempotentAndDeterministic re-solves and compares.
func (s *SolveSuite) TestIdempotentAndDeterministic() {
	nw, err := builder.BuildNetwork([]builder.BuilderOption{builder.WithSeed(3)}, builder.RandomLayered(4, 5))
	require.NoError(s.T(), err)
	twin := nw.Graph.Clone()

	flow.SolveCatalog(nw.Graph, nw.Catalog)
	first := append([]core.Edge(nil), nw.Graph.Edges()...)
	requireSane(s.T(), nw.Graph)

	// idempotence: re-solving reproduces the same rates
	flow.SolveCatalog(nw.Graph, nw.Catalog)
	for i, e := range nw.Graph.Edges() {
		require.InDelta(s.T(), first[i].Rate, e.Rate, flow.Tolerance*math.Max(1, e.Rate))
	}

	// determinism: an identical copy yields identical values
	flow.SolveCatalog(twin, nw.Catalog)
	require.Equal(s.T(), nw.Graph.Edges(), twin.Edges())
	for i, node := range nw.Graph.Nodes() {
		require.Equal(s.T(), node.Satisfaction, twin.NodeAt(i).Satisfaction)
		require.Equal(s.T(), node.Flows, twin.NodeAt(i).Flows)
	}
}

// TestManualSurvives checks that user targets are read, never reset.
func (s *SolveSuite) TestManualSurvives() {
	n := ingotNet(s.T())
	n.at("smelter").Manual = core.ItemRates{"ingot": 0.5}

	flow.SolveCatalog(n.g, n.cat)
	flow.SolveCatalog(n.g, n.cat)

	require.Equal(s.T(), core.ItemRates{"ingot": 1}, n.at("sink").Manual)
	require.Equal(s.T(), core.ItemRates{"ingot": 0.5}, n.at("smelter").Manual)
	// downstream demand 1 dominates the manual 0.5
	require.InDelta(s.T(), 2.0, n.at("smelter").Demand["ore"], tol)
}

// TestStaleState checks that leftovers from an earlier solve are ignored.
func (s *SolveSuite) TestStaleState() {
	n := ingotNet(s.T())
	for i := 0; i < n.g.EdgeCount(); i++ {
		n.g.EdgeAt(i).Rate = 99
		n.g.EdgeAt(i).Demand = 99
	}
	n.at("smelter").Satisfaction = 0.1
	n.at("smelter").Output = core.ItemRates{"junk": 5}

	flow.SolveCatalog(n.g, n.cat)

	require.InDelta(s.T(), 2.0, n.edge("mine", "smelter", "ore").Rate, tol)
	require.NotContains(s.T(), n.at("smelter").Output, "junk")
}

// TestOptions covers the round ceiling, hooks and logging.
func (s *SolveSuite) TestOptions() {
	n := ingotNet(s.T())
	var (
		st     flow.Stats
		rounds []flow.Round
		buf    bytes.Buffer
	)
	flow.SolveCatalog(n.g, n.cat,
		flow.WithMaxIterations(1),
		flow.WithStats(&st),
		flow.WithOnRound(func(r flow.Round) { rounds = append(rounds, r) }),
		flow.WithLogger(log.New(&buf, "", 0)),
	)
	require.Equal(s.T(), 1, st.Rounds)
	require.False(s.T(), st.Converged)
	require.Len(s.T(), rounds, 1)
	require.Equal(s.T(), 1, rounds[0].N)
	require.InDelta(s.T(), 1.0, rounds[0].MaxDelta, tol)
	require.Contains(s.T(), buf.String(), "round 1")
	require.Contains(s.T(), buf.String(), "converged=false")

	// invalid values keep the defaults
	o := flow.DefaultOptions()
	flow.WithMaxIterations(0)(&o)
	flow.WithTolerance(-1)(&o)
	flow.WithTolerance(math.Inf(1))(&o)
	require.Equal(s.T(), flow.MaxIterations, o.MaxIterations)
	require.Equal(s.T(), flow.Tolerance, o.Tolerance)
}

// TestNilInputs checks the degenerate entry points.
func (s *SolveSuite) TestNilInputs() {
	require.Nil(s.T(), flow.Solve(nil, nil, nil, nil))

	n := ingotNet(s.T())
	require.Same(s.T(), n.g, flow.SolveCatalog(n.g, nil))
	require.Zero(s.T(), n.at("smelter").Satisfaction)

	empty := core.NewGraph()
	require.Same(s.T(), empty, flow.Solve(empty, nil, nil, nil))
}

func TestSolveSuite(t *testing.T) {
	suite.Run(t, new(SolveSuite))
}
