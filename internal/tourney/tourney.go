package tourney

import (
	"fmt"

	"github.com/roach88/tourney/internal/arena"
)

// SlotRef addresses one slot of one match.
type SlotRef struct {
	Match uint32 `json:"match"`
	Slot  int    `json:"slot"`
}

func (r SlotRef) String() string { return fmt.Sprintf("%d.%d", r.Match, r.Slot) }

// Tourney is the structural model: an arena of matches plus the terminal
// placements.
//
// Arity (slots per match) and the placement count are fixed by New and
// never vary within one model. Wiring is NOT checked when matches are
// added; call Validate or EntryPoints once the graph is complete.
type Tourney struct {
	arity      int
	matches    *arena.Arena[*Match]
	placements []Slot
}

// New creates an empty model whose matches have arity slots each and
// which records placements terminal positions.
func New(arity, placements int) (*Tourney, error) {
	if arity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidArity, arity)
	}
	if placements < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlacements, placements)
	}
	return &Tourney{
		arity:      arity,
		matches:    arena.New[*Match](),
		placements: make([]Slot, placements),
	}, nil
}

// Arity returns the number of slots per match.
func (t *Tourney) Arity() int { return t.arity }

// NumPlacements returns the declared number of placements.
func (t *Tourney) NumPlacements() int { return len(t.placements) }

// NumMatches returns the number of matches.
func (t *Tourney) NumMatches() int { return t.matches.Len() }

// AddMatch inserts an unvalidated match with every slot empty.
// len(outcomes) must equal the arity; nothing else is checked.
func (t *Tourney) AddMatch(outcomes []Outcome, stage StageTag) (uint32, error) {
	if len(outcomes) != t.arity {
		return 0, fmt.Errorf("%w: got %d outcomes, arity %d", ErrArityMismatch, len(outcomes), t.arity)
	}
	return t.matches.Insert(newMatch(outcomes, stage)), nil
}

// RemoveMatch deletes a match. Its id may be reissued by a later AddMatch,
// so outcomes that still point at it can end up targeting the new match.
func (t *Tourney) RemoveMatch(id uint32) (*Match, bool) {
	return t.matches.Remove(id)
}

// Match returns the match with the given id.
func (t *Tourney) Match(id uint32) (*Match, bool) {
	return t.matches.Get(id)
}

// Matches returns every match in arena order.
func (t *Tourney) Matches() []*Match {
	out := make([]*Match, 0, t.matches.Len())
	for _, m := range t.matches.All() {
		out = append(out, m)
	}
	return out
}

// Placement returns the occupant recorded at placement i.
func (t *Tourney) Placement(i int) Slot { return t.placements[i] }

// Placements returns a copy of the placement table.
func (t *Tourney) Placements() []Slot {
	return append([]Slot(nil), t.placements...)
}

// SetPlacement records competitor id at placement i.
func (t *Tourney) SetPlacement(i int, id uint32) {
	t.placements[i] = Occupied(id)
}

// Stages returns every distinct stage number in arena order of first
// appearance.
func (t *Tourney) Stages() []uint32 {
	seen := make(map[uint32]bool)
	var stages []uint32
	for _, m := range t.matches.All() {
		if s, ok := m.stage.Get(); ok && !seen[s] {
			seen[s] = true
			stages = append(stages, s)
		}
	}
	return stages
}

// Clone returns a deep copy. Match ids and the id recycle state are
// preserved.
func (t *Tourney) Clone() *Tourney {
	return &Tourney{
		arity:      t.arity,
		matches:    t.matches.Clone((*Match).clone),
		placements: append([]Slot(nil), t.placements...),
	}
}

// Validate checks every outcome in arena order, then slot order, and
// returns the first failure:
//   - Advance: target slot >= arity, target match absent, or the
//     (match, slot) pair already claimed -> *MatchOutcomeError
//   - Place: position out of range or already claimed -> *PlacementError
//   - Discard never fails
func (t *Tourney) Validate() error {
	claimedSlots := make(map[SlotRef]bool)
	claimedPlaces := make([]bool, len(t.placements))
	total := t.matches.Len()

	for id, m := range t.matches.All() {
		for i, o := range m.outcomes {
			switch o := o.(type) {
			case Advance:
				fault := Fault(0)
				target := SlotRef{Match: o.Match, Slot: o.Slot}
				switch {
				case o.Slot < 0 || o.Slot >= t.arity:
					fault = FaultOutOfRange
				case !t.matches.Contains(o.Match):
					fault = FaultUnknownMatch
				case claimedSlots[target]:
					fault = FaultDuplicate
				}
				if fault != 0 {
					return &MatchOutcomeError{
						Match:      id,
						Slot:       i,
						Target:     o.Match,
						TargetSlot: o.Slot,
						Matches:    total,
						Arity:      t.arity,
						Fault:      fault,
					}
				}
				claimedSlots[target] = true
			case Place:
				fault := Fault(0)
				switch {
				case o.Position < 0 || o.Position >= len(t.placements):
					fault = FaultOutOfRange
				case claimedPlaces[o.Position]:
					fault = FaultDuplicate
				}
				if fault != 0 {
					return &PlacementError{
						Match:      id,
						Slot:       i,
						Position:   o.Position,
						Placements: len(t.placements),
						Fault:      fault,
					}
				}
				claimedPlaces[o.Position] = true
			case Discard:
			default:
				panic(fmt.Sprintf("tourney: unknown outcome %T", o))
			}
		}
	}
	return nil
}

// EntryPoints validates the model, then returns every (match, slot) pair
// that no Advance outcome targets, in arena order then slot order. These
// are where external competitors are seeded.
func (t *Tourney) EntryPoints() ([]SlotRef, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	routed := make(map[SlotRef]bool)
	for _, m := range t.matches.All() {
		for _, o := range m.outcomes {
			if a, ok := o.(Advance); ok {
				routed[SlotRef{Match: a.Match, Slot: a.Slot}] = true
			}
		}
	}

	var entries []SlotRef
	for id := range t.matches.All() {
		for i := 0; i < t.arity; i++ {
			ref := SlotRef{Match: id, Slot: i}
			if !routed[ref] {
				entries = append(entries, ref)
			}
		}
	}
	return entries, nil
}
