package dfs_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/flowplan/core"
	"github.com/katalvlaran/flowplan/dfs"
)

// ExampleProcessingOrder orders a byproduct loop: the refinery's residue is
// recycled back into oil.
//
//	well → refinery → sink
//	         ↑   ↓
//	       recycler
func ExampleProcessingOrder() {
	g := core.NewGraph()
	for _, id := range []string{"well", "refinery", "recycler", "sink"} {
		_ = g.AddNode(core.Node{ID: id, Spec: core.Logistics{}})
	}
	_ = g.Connect("well", "refinery", "oil")
	_ = g.Connect("refinery", "recycler", "residue")
	_ = g.Connect("recycler", "refinery", "oil")
	_ = g.Connect("refinery", "sink", "fuel")

	o, _ := dfs.ProcessingOrder(g, core.BuildIndex(g))
	names := make([]string, len(o.Nodes))
	for i, slot := range o.Nodes {
		names[i] = g.NodeAt(slot).ID
	}
	fmt.Println(strings.Join(names, " "))
	for _, ei := range o.BackEdges {
		e := g.EdgeAt(ei)
		fmt.Printf("back-edge %s→%s (%s)\n", e.Source, e.Target, e.Item)
	}
	// Output:
	// well refinery sink recycler
	// back-edge recycler→refinery (oil)
}
