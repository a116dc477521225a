// Package bracket builds common tournament shapes on top of package
// tourney.
package bracket

import (
	"errors"
	"fmt"

	"github.com/roach88/tourney/internal/tourney"
)

// Shape of every single-elimination bracket: two slots per match and
// three placements (winner, runner-up, bronze).
const (
	Arity      = 2
	Placements = 3

	// MaxDepth bounds the bracket at 2^16 entrants.
	MaxDepth = 16
)

// ErrInvalidDepth is returned for depths outside [1, MaxDepth].
var ErrInvalidDepth = errors.New("bracket: depth out of range")

// Option configures a builder.
type Option func(*config)

type config struct {
	stages bool
}

// WithStages tags every round with a stage number in play order: the
// first round is stage 0 and the final and bronze match share the last
// stage. A round then waits for the whole previous round.
func WithStages() Option {
	return func(c *config) { c.stages = true }
}

// SingleElimination builds a balanced knockout for 2^depth entrants.
//
// Slot 0 of every match is the winner's side. Winners advance, first-round
// and later losers are discarded, except the semi-final losers who meet in
// a bronze match for placement 2. A depth of 1 is a lone final.
//
// Matches are added final first, so entry points (the first round) come
// last in arena order.
func SingleElimination(depth int, opts ...Option) (*tourney.Tourney, error) {
	if depth < 1 || depth > MaxDepth {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	t, err := tourney.New(Arity, Placements)
	if err != nil {
		return nil, err
	}

	// round counts back from the final (round 0).
	stage := func(round int) tourney.StageTag {
		if !cfg.stages {
			return tourney.NoStage
		}
		return tourney.StageAt(uint32(depth - 1 - round))
	}
	add := func(round int, outcomes ...tourney.Outcome) uint32 {
		id, addErr := t.AddMatch(outcomes, stage(round))
		if addErr != nil && err == nil {
			err = addErr
		}
		return id
	}

	final := add(0, tourney.Place{Position: 0}, tourney.Place{Position: 1})
	prev := []uint32{final}

	if depth >= 2 {
		bronze := add(0, tourney.Place{Position: 2}, tourney.Discard{})
		prev = []uint32{
			add(1, tourney.Advance{Match: final, Slot: 0}, tourney.Advance{Match: bronze, Slot: 0}),
			add(1, tourney.Advance{Match: final, Slot: 1}, tourney.Advance{Match: bronze, Slot: 1}),
		}
	}

	for round := 2; round < depth; round++ {
		next := make([]uint32, 0, 2*len(prev))
		for _, m := range prev {
			for slot := 0; slot < Arity; slot++ {
				next = append(next, add(round, tourney.Advance{Match: m, Slot: slot}, tourney.Discard{}))
			}
		}
		prev = next
	}

	if err != nil {
		return nil, fmt.Errorf("build single elimination: %w", err)
	}
	return t, nil
}

// Entrants returns the number of entry points of a single-elimination
// bracket of the given depth.
func Entrants(depth int) int {
	return 1 << depth
}
