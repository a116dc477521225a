package engine

import "github.com/roach88/tourney/internal/tourney"

// Resolver decides the outcome of one full match.
//
// Resolve receives the match occupants in slot order and returns exactly
// as many competitor ids, the ordering to apply to the match's outcome
// slots. Returning the input unchanged is the identity resolution.
//
// The registry is lent for the duration of the call: a resolver may update
// competitor data such as Stats, and those updates are visible to later
// calls in the same tick. It must not change tournament structure.
//
// The engine panics if the result has the wrong length or names a
// competitor that is not in the registry.
type Resolver interface {
	Resolve(occupants []uint32, registry *tourney.Registry) []uint32
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(occupants []uint32, registry *tourney.Registry) []uint32

// Resolve calls f.
func (f ResolverFunc) Resolve(occupants []uint32, registry *tourney.Registry) []uint32 {
	return f(occupants, registry)
}
