// SPDX-License-Identifier: MIT
// Package core defines the production-network model shared by every other
// package: nodes (a closed tagged union of Production, Gatherer and
// Logistics variants), item-typed directed edges, and the arena-backed
// Graph that owns them.
//
// This file declares the node and edge types, the Spec variants and the
// sentinel errors of the package.
//
// Errors:
//
//	ErrEmptyNodeID    - node ID is the empty string.
//	ErrDuplicateNode  - a node with the same ID already exists.
//	ErrNilSpec        - node has no Production/Gatherer/Logistics variant.
//	ErrNodeNotFound   - referenced node does not exist.
//	ErrEdgeNotFound   - edge index is out of range.
//	ErrEmptyItemID    - edge carries no item.
package core

import (
	"errors"
	"math"
	"sort"
)

// Sentinel errors for graph editing operations.
var (
	// ErrEmptyNodeID indicates that the provided Node has an empty ID.
	ErrEmptyNodeID = errors.New("core: node ID is empty")

	// ErrDuplicateNode indicates that a node with the same ID is already stored.
	ErrDuplicateNode = errors.New("core: duplicate node ID")

	// ErrNilSpec indicates a node without a kind variant.
	ErrNilSpec = errors.New("core: node spec is nil")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrEdgeNotFound indicates an edge index outside the edge list.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrEmptyItemID indicates an edge that carries no item.
	ErrEmptyItemID = errors.New("core: edge item ID is empty")
)

// Kind classifies a node by its Spec variant.
type Kind uint8

const (
	KindProduction Kind = iota // machine running a recipe, or a recipe-less consumer/source
	KindGatherer               // extraction unit
	KindLogistics              // recipe-less junction
)

// String returns the lower-case kind name used by the snapshot format.
func (k Kind) String() string {
	switch k {
	case KindProduction:
		return "production"
	case KindGatherer:
		return "gatherer"
	case KindLogistics:
		return "logistics"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "production":
		return KindProduction, true
	case "gatherer":
		return KindGatherer, true
	case "logistics":
		return KindLogistics, true
	default:
		return 0, false
	}
}

// Spec is the kind-specific part of a Node. The set of implementations is
// closed: Production, Gatherer and Logistics. Callers dispatch with a type
// switch on the concrete variant.
type Spec interface {
	Kind() Kind
	clone() Spec
	isSpec()
}

// Production is a machine group running a recipe. A Production without a
// RecipeID is a terminal consumer. Any Production with no incoming edges is
// a source, capped by its recipe output when it has one.
type Production struct {
	// RecipeID references catalog.RecipeTable; empty means no recipe.
	RecipeID string

	// MachineID references catalog.MachineTable; empty falls back to the
	// recipe's default machine.
	MachineID string

	// MachineCount is the number of parallel machines. Values ≤ 0 or
	// non-finite mean the default of 1.
	MachineCount float64
}

func (Production) Kind() Kind    { return KindProduction }
func (p Production) clone() Spec { return p }
func (Production) isSpec()       {}

// Machines returns MachineCount normalised to its default.
func (p Production) Machines() float64 {
	return positiveOr(p.MachineCount, 1)
}

// Gatherer is an extraction unit bound to a catalog gatherer definition.
// Its capacity is ExtractionRate × YieldMultiplier × machine speed.
type Gatherer struct {
	GathererID string
	MachineID  string
	Veins      float64 // yield multiplier; ≤ 0 means 1

	// MachineCount is carried for editors and snapshots only. Extraction
	// capacity does not scale with it.
	MachineCount float64
}

func (Gatherer) Kind() Kind    { return KindGatherer }
func (g Gatherer) clone() Spec { return g }
func (Gatherer) isSpec()       {}

// YieldMultiplier returns Veins normalised to its default.
func (g Gatherer) YieldMultiplier() float64 {
	return positiveOr(g.Veins, 1)
}

// Logistics is a pure pass-through merge/split point.
type Logistics struct{}

func (Logistics) Kind() Kind    { return KindLogistics }
func (l Logistics) clone() Spec { return l }
func (Logistics) isSpec()       {}

func positiveOr(v, def float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// ItemRates maps an item ID to a quantity per second.
type ItemRates map[string]float64

// Sum returns the total of all quantities.
func (r ItemRates) Sum() float64 {
	var total float64
	for _, k := range r.Keys() {
		total += r[k]
	}

	return total
}

// Keys returns the item IDs in ascending order.
func (r ItemRates) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Clone returns an independent copy; nil stays nil.
func (r ItemRates) Clone() ItemRates {
	if r == nil {
		return nil
	}
	out := make(ItemRates, len(r))
	for k, v := range r {
		out[k] = v
	}

	return out
}

// Direction tells whether an ItemFlow describes an input or an output.
type Direction uint8

const (
	Input Direction = iota
	Output
)

// String returns "input" or "output".
func (d Direction) String() string {
	if d == Output {
		return "output"
	}

	return "input"
}

// ItemFlow is the externally visible per-item summary produced at the end
// of a solve.
//
// For inputs, Demand is the availability from upstream, Actual the consumed
// quantity and Sent equals Actual. For outputs, Demand is the downstream
// target, Actual the produced quantity and Sent the sum of outgoing edge
// rates, which may be lower than Actual.
type ItemFlow struct {
	ItemID    string
	Direction Direction
	Demand    float64
	Actual    float64
	Capacity  float64
	Sent      float64
}

// Node is a production unit, extraction unit or junction.
//
// ID, Name, Spec and Manual are authored by the editor. The remaining
// fields are owned by the solver and reset on every solve.
type Node struct {
	ID   string
	Name string
	Spec Spec

	// Manual holds user-authored per-item targets (demand overrides).
	// The solver reads but never resets it.
	Manual ItemRates

	Demand       ItemRates // required inputs
	Supply       ItemRates // consumed inputs
	Output       ItemRates // produced outputs
	Requested    ItemRates // downstream-driven output targets
	Capacity     ItemRates // physical ceiling per item
	Delivered    ItemRates // raw inbound quantity before capacity clamping
	Satisfaction float64   // achieved versus requested throughput, in [0,1]
	Flows        []ItemFlow
}

// Kind reports the node's kind, KindProduction for a nil Spec.
func (n *Node) Kind() Kind {
	if n.Spec == nil {
		return KindProduction
	}

	return n.Spec.Kind()
}

// ResetSolveState clears every solver-owned field. Manual is kept.
func (n *Node) ResetSolveState() {
	n.Demand = ItemRates{}
	n.Supply = ItemRates{}
	n.Output = ItemRates{}
	n.Requested = ItemRates{}
	n.Capacity = ItemRates{}
	n.Delivered = ItemRates{}
	n.Satisfaction = 0
	n.Flows = nil
}

func (n Node) clone() Node {
	out := n
	if n.Spec != nil {
		out.Spec = n.Spec.clone()
	}
	out.Manual = n.Manual.Clone()
	out.Demand = n.Demand.Clone()
	out.Supply = n.Supply.Clone()
	out.Output = n.Output.Clone()
	out.Requested = n.Requested.Clone()
	out.Capacity = n.Capacity.Clone()
	out.Delivered = n.Delivered.Clone()
	if n.Flows != nil {
		out.Flows = append([]ItemFlow(nil), n.Flows...)
	}

	return out
}

// Edge is a directed single-item flow between two nodes. Source may equal
// Target; such a self-loop models feedback.
type Edge struct {
	Source string
	Target string
	Item   string

	// Demand is the upstream-facing desired rate, set by the backward pass.
	Demand float64

	// Rate is the solved actual flow, set by the forward pass. Always ≥ 0.
	Rate float64
}

// SelfLoop reports whether the edge feeds its own source.
func (e Edge) SelfLoop() bool { return e.Source == e.Target }
