package engine

import (
	"fmt"

	"github.com/roach88/tourney/internal/tourney"
)

// route is a cross-match assignment deferred to the end of a tick.
type route struct {
	competitor uint32
	target     tourney.SlotRef
}

// eligible reports whether m may resolve this tick: not done, every slot
// filled, and its stage predecessor unrecorded or closed.
func (in *Instance) eligible(m *tourney.Match) bool {
	if m.Done() || !m.Full() {
		return false
	}
	pred, gated := m.Stage().Predecessor()
	return !gated || in.stages.gateOpen(pred)
}

// Step advances the tournament by one resolvable layer.
//
//  1. Close every recorded stage whose matches are all done.
//  2. Collect eligible matches.
//  3. Resolve each with r, in arena order.
//  4. Apply outcomes: Place is recorded at once, Advance is queued,
//     Discard records nothing.
//  5. Overwrite the match slots with the resolved order and mark it done.
//  6. Apply queued routes.
//
// Routes are applied only after every eligible match has resolved, so a
// match filled this tick waits for the next one.
//
// Returns false when nothing was eligible; the tournament is finished or
// blocked and further calls change nothing. An uninitialised instance
// always returns false.
func (in *Instance) Step(r Resolver) bool {
	if !in.initialised {
		return false
	}

	for _, s := range in.stages.sorted() {
		if in.StageComplete(s) {
			in.stages.close(s)
		}
	}

	var ready []*tourney.Match
	for _, m := range in.tourney.Matches() {
		if in.eligible(m) {
			ready = append(ready, m)
		}
	}
	if len(ready) == 0 {
		in.logger.Debug("tournament stalled", "tick", in.clock.Current())
		return false
	}

	tick := in.clock.Next()
	var routes []route
	for _, m := range ready {
		inputs := m.Occupants()
		outputs := r.Resolve(append([]uint32(nil), inputs...), in.registry)
		in.checkResolution(m, outputs)

		for i, c := range outputs {
			switch o := m.Outcome(i).(type) {
			case tourney.Advance:
				routes = append(routes, route{competitor: c, target: tourney.SlotRef{Match: o.Match, Slot: o.Slot}})
			case tourney.Place:
				in.tourney.SetPlacement(o.Position, c)
			case tourney.Discard:
			default:
				panic(fmt.Sprintf("engine: unknown outcome %T", o))
			}
		}

		m.Finish(outputs)
		in.history = append(in.history, Resolution{
			Tick:    tick,
			Match:   m.ID(),
			Stage:   m.Stage(),
			Inputs:  inputs,
			Outputs: append([]uint32(nil), outputs...),
		})
	}

	for _, rt := range routes {
		m, ok := in.tourney.Match(rt.target.Match)
		if !ok {
			panic(fmt.Sprintf("engine: route to missing match %d", rt.target.Match))
		}
		m.Fill(rt.target.Slot, rt.competitor)
	}

	in.logger.Debug("tick resolved", "tick", tick, "resolved", len(ready), "routed", len(routes))
	return true
}

// checkResolution enforces the resolver contract.
func (in *Instance) checkResolution(m *tourney.Match, outputs []uint32) {
	if len(outputs) != m.Arity() {
		panic(fmt.Sprintf("engine: resolver returned %d competitors for match %d, want %d", len(outputs), m.ID(), m.Arity()))
	}
	for _, c := range outputs {
		if !in.registry.Contains(c) {
			panic(fmt.Sprintf("engine: resolver returned unknown competitor %d for match %d", c, m.ID()))
		}
	}
}
