// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/katalvlaran/flowplan/bfs"
	"github.com/katalvlaran/flowplan/core"
	"github.com/katalvlaran/flowplan/flow"
)

// writeReport prints the per-node, per-item flow table of a solved graph.
// When focus is non-nil only the nodes it reached are listed, nearest first.
func writeReport(w io.Writer, g *core.Graph, st flow.Stats, focus *bfs.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "NODE\tKIND\tSAT\tITEM\tDIR\tDEMAND\tACTUAL\tCAPACITY\tSENT\n")
	for _, n := range reportNodes(g, focus) {
		label := n.ID
		if n.Name != "" {
			label = fmt.Sprintf("%s (%s)", n.ID, n.Name)
		}
		if len(n.Flows) == 0 {
			fmt.Fprintf(tw, "%s\t%s\t%.3f\t-\t\t\t\t\t\n", label, n.Kind(), n.Satisfaction)
			continue
		}
		for i, f := range n.Flows {
			if i > 0 {
				label = ""
			}
			fmt.Fprintf(tw, "%s\t%s\t%.3f\t%s\t%s\t%.4g\t%.4g\t%.4g\t%.4g\n",
				label, n.Kind(), n.Satisfaction, f.ItemID, f.Direction, f.Demand, f.Actual, f.Capacity, f.Sent)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d rounds, converged=%t, max delta %.3g, %d back edges\n",
		st.Rounds, st.Converged, st.MaxDelta, st.BackEdges)

	return err
}

func reportNodes(g *core.Graph, focus *bfs.Result) []*core.Node {
	if focus == nil {
		return g.Nodes()
	}
	nodes := make([]*core.Node, len(focus.Order))
	for i, slot := range focus.Order {
		nodes[i] = g.NodeAt(slot)
	}

	return nodes
}
