package compiler

import (
	"fmt"

	"github.com/roach88/tourney/internal/tourney"
)

// Compiled is a definition turned into a validated model.
type Compiled struct {
	Name    string
	Tourney *tourney.Tourney

	keys  map[string]uint32
	names map[uint32]string
	order []string
}

// ID returns the match id assigned to key.
func (c *Compiled) ID(key string) (uint32, bool) {
	id, ok := c.keys[key]
	return id, ok
}

// Key returns the definition key of match id.
func (c *Compiled) Key(id uint32) string {
	return c.names[id]
}

// Keys returns the match keys in definition order.
func (c *Compiled) Keys() []string {
	return append([]string(nil), c.order...)
}

// Compile validates def, builds the model and validates its wiring.
//
// Definition errors are returned as *DefinitionError. Wiring errors are
// the tourney.StructureError from Tourney.Validate, wrapped.
func Compile(def *Definition) (*Compiled, error) {
	if errs := Validate(def); len(errs) > 0 {
		return nil, &DefinitionError{Name: def.Name, Errors: errs}
	}

	t, err := tourney.New(def.Arity, def.Placements)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", def.Name, err)
	}

	// Arena ids are sequential on a fresh model, so keys can be resolved
	// before the matches exist.
	keys := make(map[string]uint32, len(def.Matches))
	names := make(map[uint32]string, len(def.Matches))
	order := make([]string, len(def.Matches))
	for i, m := range def.Matches {
		keys[m.Key] = uint32(i)
		names[uint32(i)] = m.Key
		order[i] = m.Key
	}

	for _, m := range def.Matches {
		outcomes := make([]tourney.Outcome, len(m.Outcomes))
		for j, o := range m.Outcomes {
			outcomes[j] = toOutcome(o, keys)
		}
		stage := tourney.NoStage
		if m.Stage != nil {
			stage = tourney.StageAt(*m.Stage)
		}
		id, err := t.AddMatch(outcomes, stage)
		if err != nil {
			return nil, fmt.Errorf("compile %q: match %q: %w", def.Name, m.Key, err)
		}
		if id != keys[m.Key] {
			return nil, fmt.Errorf("compile %q: match %q got id %d, want %d", def.Name, m.Key, id, keys[m.Key])
		}
	}

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("compile %q: %w", def.Name, err)
	}

	return &Compiled{
		Name:    def.Name,
		Tourney: t,
		keys:    keys,
		names:   names,
		order:   order,
	}, nil
}

// toOutcome converts a validated outcome definition.
func toOutcome(o OutcomeDef, keys map[string]uint32) tourney.Outcome {
	switch {
	case o.Discard:
		return tourney.Discard{}
	case o.Place != nil:
		return tourney.Place{Position: *o.Place}
	default:
		return tourney.Advance{Match: keys[o.Match], Slot: *o.Slot}
	}
}
