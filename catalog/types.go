// SPDX-License-Identifier: MIT

// Package catalog defines the read-only recipe, machine and gatherer tables
// the solver looks up by ID, and loads them from a planner data pack.
package catalog

import (
	"errors"
	"math"
)

var (
	// ErrInvalidPack is returned when a data pack cannot be decoded or fails validation.
	ErrInvalidPack = errors.New("catalog: invalid data pack")

	// ErrDuplicateID is returned when two entries of one table share an ID.
	ErrDuplicateID = errors.New("catalog: duplicate id")
)

// GatheringCategory marks pack recipes that describe extraction rather than
// crafting. Load converts them into Gatherer entries.
const GatheringCategory = "Gathering"

// Item is a catalog item. Only the ID matters to the solver.
type Item struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name"`
	IconIndex int    `json:"iconIndex,omitempty" validate:"gte=0"`
}

// ItemAmount is one ingredient or product line of a recipe.
type ItemAmount struct {
	ItemID string  `json:"itemId" validate:"required"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

// Recipe turns Inputs into Outputs in CraftTime seconds on one machine of
// speed 1.
type Recipe struct {
	ID               string       `json:"id" validate:"required"`
	Name             string       `json:"name"`
	Inputs           []ItemAmount `json:"inputs" validate:"dive"`
	Outputs          []ItemAmount `json:"outputs" validate:"dive"`
	CraftTime        float64      `json:"craftingTime" validate:"gt=0"`
	DefaultMachineID string       `json:"machineId"`
	Category         string       `json:"category,omitempty"`
}

// DefaultSpeed is the speed Load assigns to a machine entry without one.
const DefaultSpeed = 1.0

// Machine is a crafting or extraction building. A stored Speed of 0 or less
// is kept as is and stalls every node running on the machine.
type Machine struct {
	ID         string  `json:"id" validate:"required"`
	Name       string  `json:"name"`
	Speed      float64 `json:"speed"`
	Generation int     `json:"generation,omitempty"`
}

// Gatherer is an extraction definition: OutputItemID at ExtractionRate items
// per second per vein on a machine of speed 1.
type Gatherer struct {
	ID             string  `json:"id" validate:"required"`
	Name           string  `json:"name"`
	MachineID      string  `json:"machineId"`
	OutputItemID   string  `json:"outputItemId" validate:"required"`
	OutputAmount   float64 `json:"outputAmount,omitempty" validate:"gte=0"`
	ExtractionRate float64 `json:"extractionRate" validate:"gte=0"`
}

// RecipeTable indexes recipes by ID.
type RecipeTable map[string]Recipe

// MachineTable indexes machines by ID.
type MachineTable map[string]Machine

// GathererTable indexes gatherers by ID.
type GathererTable map[string]Gatherer

// Catalog bundles every table of one data pack.
type Catalog struct {
	Items     map[string]Item
	Recipes   RecipeTable
	Machines  MachineTable
	Gatherers GathererTable
}

// New returns an empty catalog with all tables allocated.
func New() *Catalog {
	return &Catalog{
		Items:     make(map[string]Item),
		Recipes:   make(RecipeTable),
		Machines:  make(MachineTable),
		Gatherers: make(GathererTable),
	}
}

// MachineSpeed returns the stored speed of machine id. ok is false when id
// is empty or unknown.
func (t MachineTable) MachineSpeed(id string) (speed float64, ok bool) {
	if id == "" || t == nil {
		return 0, false
	}
	m, found := t[id]
	if !found {
		return 0, false
	}

	return m.Speed, true
}

// ResolveSpeed picks the speed of the first known machine among ids, or
// DefaultSpeed when none is known.
func (t MachineTable) ResolveSpeed(ids ...string) float64 {
	for _, id := range ids {
		if s, ok := t.MachineSpeed(id); ok {
			return s
		}
	}

	return DefaultSpeed
}

// PerMachineRate returns amount items per second for one machine of the
// given speed, and false when the effective craft time is not a positive
// finite number.
func (r Recipe) PerMachineRate(amount, speed float64) (float64, bool) {
	ect := r.CraftTime / speed
	if !(ect > 0) || math.IsInf(ect, 0) || math.IsNaN(ect) {
		return 0, false
	}

	return amount / ect, true
}
