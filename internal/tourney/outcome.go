package tourney

import "fmt"

// Outcome is the routing rule attached to one slot of one match.
//
// The set of outcomes is closed: Advance, Place and Discard. Consumers
// switch over all three and panic on anything else.
type Outcome interface {
	fmt.Stringer
	isOutcome()
}

// Advance sends the resolved occupant into Slot of Match.
type Advance struct {
	Match uint32
	Slot  int
}

// Place records the resolved occupant at terminal placement Position.
type Place struct {
	Position int
}

// Discard eliminates the resolved occupant.
type Discard struct{}

func (Advance) isOutcome() {}
func (Place) isOutcome()   {}
func (Discard) isOutcome() {}

func (o Advance) String() string { return fmt.Sprintf("advance(%d.%d)", o.Match, o.Slot) }
func (o Place) String() string   { return fmt.Sprintf("place(%d)", o.Position) }
func (Discard) String() string   { return "discard" }

// StageTag is an optional stage number. Matches tagged with stage S wait
// for every match tagged S-1. Untagged matches are never gated.
type StageTag struct {
	n  uint32
	ok bool
}

// NoStage is the untagged stage.
var NoStage = StageTag{}

// StageAt returns a tag for stage n.
func StageAt(n uint32) StageTag {
	return StageTag{n: n, ok: true}
}

// Get returns the stage number and whether the tag is set.
func (s StageTag) Get() (uint32, bool) {
	return s.n, s.ok
}

// Predecessor returns the stage that gates s. Stage 0 and untagged
// matches have no predecessor.
func (s StageTag) Predecessor() (uint32, bool) {
	if !s.ok || s.n == 0 {
		return 0, false
	}
	return s.n - 1, true
}

func (s StageTag) String() string {
	if !s.ok {
		return "-"
	}
	return fmt.Sprintf("%d", s.n)
}
