package raci

import (
	"encoding/json"
	"math"
	"strings"
)

// Classification is the semantic type assigned to a spreadsheet column.
type Classification string

const (
	ClassRACI           Classification = "raci"
	ClassMaturityNow    Classification = "maturity_now"
	ClassMaturityTarget Classification = "maturity_target"
	ClassDescription    Classification = "description"
	ClassCategory       Classification = "category"
	ClassName           Classification = "name"
	ClassStatus         Classification = "status"
	ClassDelta          Classification = "delta"
	ClassEmpty          Classification = "empty"
	ClassUnknown        Classification = "unknown"
)

// Role status values.
const (
	StatusFilled   = "filled"
	StatusUnfilled = "unfilled"
)

// Role represents one RACI-bearing column: a person, team or function.
type Role struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Short  string `json:"short"`
	Color  string `json:"color"`
	Status string `json:"status"`

	colIndex int // source column, internal only
}

// Capability is one substantive row of the sheet: a task, activity or
// process, with its per-role RACI assignments and optional maturity scores.
type Capability struct {
	Name        string
	Description string
	Now         *int
	Target      *int
	Assignments map[string]string // role id -> "R"|"A"|"C"|"I"
}

// Category is a named grouping of capabilities.
type Category struct {
	Name  string        `json:"name"`
	Color string        `json:"color"`
	Items []*Capability `json:"items"`
}

// ColumnReport describes how one column was classified, for troubleshooting.
type ColumnReport struct {
	Header         string         `json:"header"`
	Classification Classification `json:"classification"`
}

// Meta carries dataset-level facts and integrity diagnostics.
type Meta struct {
	Filename              string               `json:"filename"`
	Sheet                 string               `json:"sheet"`
	RoleCount             int                  `json:"role_count"`
	CategoryCount         int                  `json:"category_count"`
	CapabilityCount       int                  `json:"capability_count"`
	OrphanedCapabilities  []string             `json:"orphaned_capabilities"`
	ZeroRRoles            []string             `json:"zero_r_roles"`
	HasMaturity           bool                 `json:"has_maturity"`
	MaturityScale         int                  `json:"maturity_scale,omitempty"`
	AvgMaturityNow        float64              `json:"avg_maturity_now,omitempty"`
	AvgMaturityTarget     float64              `json:"avg_maturity_target,omitempty"`
	ColumnClassifications map[int]ColumnReport `json:"column_classifications"`
	Layout                string               `json:"layout"`
	LowConfidenceHeader   bool                 `json:"low_confidence_header,omitempty"`
}

// Dataset is the parser's complete output and the sole contract between the
// core and all downstream consumers (server API, exporters, dashboard UI).
type Dataset struct {
	Roles      []*Role     `json:"roles"`
	Categories []*Category `json:"categories"`
	Meta       Meta        `json:"meta"`
}

// capability JSON shape is flat: fixed keys plus one key per assigned role id,
// matching what the dashboard and exporters index into.
type capabilityFixed struct {
	Name        string `json:"name"`
	Description string `json:"desc,omitempty"`
	Now         *int   `json:"now,omitempty"`
	Target      *int   `json:"tgt,omitempty"`
}

// MarshalJSON flattens role assignments into top-level keys.
func (c *Capability) MarshalJSON() ([]byte, error) {
	flat := map[string]interface{}{"name": c.Name}
	if c.Description != "" {
		flat["desc"] = c.Description
	}
	if c.Now != nil {
		flat["now"] = *c.Now
	}
	if c.Target != nil {
		flat["tgt"] = *c.Target
	}
	for roleID, letter := range c.Assignments {
		flat[roleID] = letter
	}
	return json.Marshal(flat)
}

// UnmarshalJSON rebuilds a Capability from the flat wire shape. String keys
// outside the fixed set whose values are canonical letters become assignments.
func (c *Capability) UnmarshalJSON(data []byte) error {
	var fixed capabilityFixed
	if err := json.Unmarshal(data, &fixed); err != nil {
		return err
	}
	c.Name = fixed.Name
	c.Description = fixed.Description
	c.Now = fixed.Now
	c.Target = fixed.Target

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Assignments = make(map[string]string)
	for key, val := range raw {
		switch key {
		case "name", "desc", "now", "tgt":
			continue
		}
		var s string
		if err := json.Unmarshal(val, &s); err != nil {
			continue
		}
		if isCanonicalLetter(s) {
			c.Assignments[key] = s
		}
	}
	return nil
}

func isCanonicalLetter(s string) bool {
	switch s {
	case "R", "A", "C", "I":
		return true
	}
	return false
}

// HasResponsible reports whether any role holds R on this capability.
func (c *Capability) HasResponsible() bool {
	for _, letter := range c.Assignments {
		if letter == "R" {
			return true
		}
	}
	return false
}

// MaturityDelta returns target minus now, or NaN when either is missing.
func (c *Capability) MaturityDelta() float64 {
	if c.Now == nil || c.Target == nil {
		return math.NaN()
	}
	return float64(*c.Target - *c.Now)
}

// Clone returns a deep copy sharing no mutable state with the receiver, so
// the copy can be read or serialized while the original keeps changing.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	out := &Dataset{
		Roles:      make([]*Role, len(d.Roles)),
		Categories: make([]*Category, len(d.Categories)),
		Meta:       d.Meta,
	}
	for i, r := range d.Roles {
		c := *r
		out.Roles[i] = &c
	}
	for i, cat := range d.Categories {
		cc := &Category{Name: cat.Name, Color: cat.Color, Items: make([]*Capability, len(cat.Items))}
		for j, item := range cat.Items {
			cc.Items[j] = item.clone()
		}
		out.Categories[i] = cc
	}
	if d.Meta.OrphanedCapabilities != nil {
		out.Meta.OrphanedCapabilities = append([]string(nil), d.Meta.OrphanedCapabilities...)
	}
	if d.Meta.ZeroRRoles != nil {
		out.Meta.ZeroRRoles = append([]string(nil), d.Meta.ZeroRRoles...)
	}
	if d.Meta.ColumnClassifications != nil {
		out.Meta.ColumnClassifications = make(map[int]ColumnReport, len(d.Meta.ColumnClassifications))
		for k, v := range d.Meta.ColumnClassifications {
			out.Meta.ColumnClassifications[k] = v
		}
	}
	return out
}

func (c *Capability) clone() *Capability {
	out := &Capability{Name: c.Name, Description: c.Description}
	if c.Now != nil {
		v := *c.Now
		out.Now = &v
	}
	if c.Target != nil {
		v := *c.Target
		out.Target = &v
	}
	if c.Assignments != nil {
		out.Assignments = make(map[string]string, len(c.Assignments))
		for k, v := range c.Assignments {
			out.Assignments[k] = v
		}
	}
	return out
}

// RoleByID returns the role with the given id, or nil.
func (d *Dataset) RoleByID(id string) *Role {
	for _, r := range d.Roles {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// FindCapability locates a capability by category and name, or nil. An
// empty category matches any category.
func (d *Dataset) FindCapability(category, name string) *Capability {
	for _, cat := range d.Categories {
		if category != "" && !strings.EqualFold(cat.Name, category) {
			continue
		}
		for _, item := range cat.Items {
			if strings.EqualFold(item.Name, name) {
				return item
			}
		}
	}
	return nil
}
