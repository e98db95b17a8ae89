// SPDX-License-Identifier: MIT

package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// pack mirrors the planner's JSON data pack layout.
type pack struct {
	Items     []Item     `json:"items" validate:"dive"`
	Recipes   []Recipe   `json:"recipes" validate:"dive"`
	Machines  []Machine  `json:"machines" validate:"dive"`
	Gatherers []Gatherer `json:"gatherers" validate:"dive"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report JSON field names, as they appear in the pack file
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}

		return name
	})

	return v
}

// LoadFile opens path and decodes it with Load.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %q: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes and validates a data pack.
//
// Steps:
//  1. Decode JSON into the pack layout. A machine without a speed gets
//     DefaultSpeed; an explicit speed, zero included, is kept.
//  2. Validate every entry against its struct tags.
//  3. Move "Gathering" recipes into the gatherer table, deriving
//     extractionRate = first output amount / craftingTime.
//  4. Index every table by ID, rejecting duplicates.
func Load(r io.Reader) (*Catalog, error) {
	var p pack
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidPack, err)
	}

	// Gathering recipes carry no crafting semantics and may omit fields
	// that regular recipes require, so split them out before validation.
	recipes := make([]Recipe, 0, len(p.Recipes))
	for _, rc := range p.Recipes {
		if rc.Category != GatheringCategory {
			recipes = append(recipes, rc)
			continue
		}
		g, ok := gathererFromRecipe(rc)
		if !ok {
			return nil, fmt.Errorf("%w: gathering recipe %q has no output", ErrInvalidPack, rc.ID)
		}
		p.Gatherers = append(p.Gatherers, g)
	}
	p.Recipes = recipes

	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPack, describe(err))
	}

	c := New()
	for _, it := range p.Items {
		if _, dup := c.Items[it.ID]; dup {
			return nil, fmt.Errorf("item %q: %w", it.ID, ErrDuplicateID)
		}
		c.Items[it.ID] = it
	}
	for _, rc := range p.Recipes {
		if _, dup := c.Recipes[rc.ID]; dup {
			return nil, fmt.Errorf("recipe %q: %w", rc.ID, ErrDuplicateID)
		}
		c.Recipes[rc.ID] = rc
	}
	for _, m := range p.Machines {
		if _, dup := c.Machines[m.ID]; dup {
			return nil, fmt.Errorf("machine %q: %w", m.ID, ErrDuplicateID)
		}
		c.Machines[m.ID] = m
	}
	for _, g := range p.Gatherers {
		if _, dup := c.Gatherers[g.ID]; dup {
			return nil, fmt.Errorf("gatherer %q: %w", g.ID, ErrDuplicateID)
		}
		c.Gatherers[g.ID] = g
	}

	return c, nil
}

// UnmarshalJSON decodes a machine entry, defaulting a missing speed.
func (m *Machine) UnmarshalJSON(data []byte) error {
	type plain Machine
	doc := struct {
		*plain
		Speed *float64 `json:"speed"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	m.Speed = DefaultSpeed
	if doc.Speed != nil {
		m.Speed = *doc.Speed
	}

	return nil
}

// gathererFromRecipe converts an extraction recipe into a Gatherer.
// A missing or non-positive crafting time counts as one second.
func gathererFromRecipe(rc Recipe) (Gatherer, bool) {
	if len(rc.Outputs) == 0 {
		return Gatherer{}, false
	}
	out := rc.Outputs[0]
	amount := out.Amount
	if amount == 0 {
		amount = 1
	}
	craft := rc.CraftTime
	if craft <= 0 {
		craft = 1
	}

	return Gatherer{
		ID:             rc.ID,
		Name:           rc.Name,
		MachineID:      rc.DefaultMachineID,
		OutputItemID:   out.ItemID,
		OutputAmount:   amount,
		ExtractionRate: amount / craft,
	}, true
}

// describe flattens validator field errors into one readable line.
func describe(err error) string {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Namespace(), message(fe)))
	}

	return strings.Join(msgs, "; ")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("validation failed: %s", fe.Tag())
	}
}
