// Package compiler turns declarative bracket definitions into validated
// tourney.Tourney models.
//
// Definitions name their matches with string keys and are written in YAML
// or CUE. Definition-level problems (missing fields, unknown keys, wrong
// outcome counts) are collected by Validate; wiring problems (claimed or
// out-of-range targets) are left to tourney.Tourney.Validate so that they
// surface as the same StructureError the engine reports.
package compiler

// Definition is a bracket described by keyed matches.
type Definition struct {
	Name       string     `yaml:"name" json:"name"`
	Arity      int        `yaml:"arity" json:"arity"`
	Placements int        `yaml:"placements" json:"placements"`
	Matches    []MatchDef `yaml:"matches" json:"matches"`
}

// MatchDef declares one match. Outcomes are listed in slot order.
type MatchDef struct {
	Key      string       `yaml:"key" json:"key"`
	Stage    *uint32      `yaml:"stage,omitempty" json:"stage,omitempty"`
	Outcomes []OutcomeDef `yaml:"outcomes" json:"outcomes"`
}

// OutcomeDef declares exactly one of:
//   - match + slot: advance into that slot of the keyed match
//   - place: record at that placement index
//   - discard: true
type OutcomeDef struct {
	Match   string `yaml:"match,omitempty" json:"match,omitempty"`
	Slot    *int   `yaml:"slot,omitempty" json:"slot,omitempty"`
	Place   *int   `yaml:"place,omitempty" json:"place,omitempty"`
	Discard bool   `yaml:"discard,omitempty" json:"discard,omitempty"`
}

// kinds returns how many outcome kinds are set.
func (o OutcomeDef) kinds() int {
	n := 0
	if o.Match != "" || o.Slot != nil {
		n++
	}
	if o.Place != nil {
		n++
	}
	if o.Discard {
		n++
	}
	return n
}
