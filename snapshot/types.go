// SPDX-License-Identifier: MIT

package snapshot

import "errors"

// Version is the Document layout written by this package.
const Version = 1

var (
	// ErrUnsupportedVersion indicates a document written by a newer layout.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported document version")

	// ErrUnknownKind indicates a node whose kind tag is not recognised.
	ErrUnknownKind = errors.New("snapshot: unknown node kind")

	// ErrUnknownCodec indicates an unknown codec name.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")

	// ErrUnknownCompression indicates an unknown compression name.
	ErrUnknownCompression = errors.New("snapshot: unknown compression")
)

// Document is the serialized form of a network.
type Document struct {
	Version int       `json:"version" msgpack:"version"`
	Nodes   []NodeDoc `json:"nodes" msgpack:"nodes"`
	Edges   []EdgeDoc `json:"edges" msgpack:"edges"`
}

// NodeDoc is one node. Variant fields not used by Kind are left empty.
type NodeDoc struct {
	ID   string `json:"id" msgpack:"id"`
	Name string `json:"name,omitempty" msgpack:"name,omitempty"`
	Kind string `json:"kind" msgpack:"kind"`

	RecipeID     string  `json:"recipeId,omitempty" msgpack:"recipeId,omitempty"`
	GathererID   string  `json:"gathererId,omitempty" msgpack:"gathererId,omitempty"`
	MachineID    string  `json:"machineId,omitempty" msgpack:"machineId,omitempty"`
	MachineCount float64 `json:"machineCount,omitempty" msgpack:"machineCount,omitempty"`
	Veins        float64 `json:"veins,omitempty" msgpack:"veins,omitempty"`

	Manual map[string]float64 `json:"manual,omitempty" msgpack:"manual,omitempty"`

	// last solve
	Demand       map[string]float64 `json:"demand,omitempty" msgpack:"demand,omitempty"`
	Supply       map[string]float64 `json:"supply,omitempty" msgpack:"supply,omitempty"`
	Output       map[string]float64 `json:"output,omitempty" msgpack:"output,omitempty"`
	Requested    map[string]float64 `json:"requested,omitempty" msgpack:"requested,omitempty"`
	Capacity     map[string]float64 `json:"capacity,omitempty" msgpack:"capacity,omitempty"`
	Satisfaction float64            `json:"satisfaction" msgpack:"satisfaction"`
	Flows        []FlowDoc          `json:"flows,omitempty" msgpack:"flows,omitempty"`
}

// FlowDoc is one per-item flow record.
type FlowDoc struct {
	Item      string  `json:"item" msgpack:"item"`
	Direction string  `json:"direction" msgpack:"direction"`
	Demand    float64 `json:"demand" msgpack:"demand"`
	Actual    float64 `json:"actual" msgpack:"actual"`
	Capacity  float64 `json:"capacity" msgpack:"capacity"`
	Sent      float64 `json:"sent" msgpack:"sent"`
}

// EdgeDoc is one item edge.
type EdgeDoc struct {
	Source string  `json:"source" msgpack:"source"`
	Target string  `json:"target" msgpack:"target"`
	Item   string  `json:"item" msgpack:"item"`
	Demand float64 `json:"demand" msgpack:"demand"`
	Rate   float64 `json:"rate" msgpack:"rate"`
}
