package testutil

import (
	"slices"

	"github.com/roach88/tourney/internal/tourney"
)

// RecordingResolver records every call and delegates the decision to
// Decide, or returns the occupants unchanged when Decide is nil.
//
// Implements engine.Resolver.
type RecordingResolver struct {
	Decide func(occupants []uint32, registry *tourney.Registry) []uint32
	Calls  [][]uint32
}

// Resolve records the occupants and returns the decided ordering.
func (r *RecordingResolver) Resolve(occupants []uint32, registry *tourney.Registry) []uint32 {
	r.Calls = append(r.Calls, slices.Clone(occupants))
	if r.Decide == nil {
		return occupants
	}
	return r.Decide(occupants, registry)
}

// Reverse returns the occupants in reverse order.
func Reverse(occupants []uint32, _ *tourney.Registry) []uint32 {
	out := slices.Clone(occupants)
	slices.Reverse(out)
	return out
}

// Registry creates a registry holding one competitor per name and returns
// it with the assigned ids in name order.
func Registry(names ...string) (*tourney.Registry, []uint32) {
	reg := tourney.NewRegistry()
	ids := make([]uint32, len(names))
	for i, n := range names {
		ids[i] = reg.Insert(tourney.NewCompetitor(n))
	}
	return reg, ids
}
