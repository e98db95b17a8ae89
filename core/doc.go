// Package core holds the production-network model of flowplan.
//
// A network G = (V,E) is made of:
//
//   - Nodes, each carrying exactly one Spec variant:
//     Production (a recipe run by N machines, or a recipe-less consumer),
//     Gatherer (an extraction unit with a yield multiplier, "veins"),
//     Logistics (a recipe-less merge/split junction).
//   - Edges, each a directed single-item flow Source→Target. A self-loop
//     (Source == Target) models a feedback recipe.
//
// # Storage
//
// Graph is an arena: nodes live in one contiguous slice, addressed by slot,
// with an ID→slot map for lookups; edges live in an ordered slice. The solver
// borrows the whole network for one solve and walks it in slot and edge
// order.
//
// Methods:
//
//	// lifecycle (editor)
//	AddNode(n Node) error            // O(1)
//	AddEdge(e Edge) error            // O(1)
//	Connect(src, dst, item) error    // O(1)
//	RemoveNode(id string) error      // O(V+E), drops incident edges
//	RemoveEdge(i int) error          // O(E)
//
//	// query
//	Node(id) (*Node, bool)           // O(1)
//	Slot(id) (int, bool)             // O(1)
//	NodeAt(slot) *Node               // O(1)
//	Nodes() []*Node                  // O(V), slot order
//	Edges() []Edge                   // O(1), live slice
//	Clone() *Graph                   // O(V+E), deep copy
//
//	// indexing
//	BuildIndex(g) *Index             // O(V+E), per-node edge lists by item
//
// # Per-solve fields
//
// Demand, Supply, Output, Requested, Capacity, Delivered, Satisfaction and
// Flows on Node, and Demand/Rate on Edge, belong to the solver and are reset
// on every solve. Node.Manual is user-authored and survives every reset.
//
// Errors:
//
//	ErrEmptyNodeID, ErrDuplicateNode, ErrNilSpec,
//	ErrNodeNotFound, ErrEdgeNotFound, ErrEmptyItemID
package core
