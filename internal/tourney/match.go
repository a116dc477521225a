package tourney

import "fmt"

// Slot is an optional occupant reference.
type Slot struct {
	Competitor uint32
	Filled     bool
}

// Occupied returns a filled slot holding competitor id.
func Occupied(id uint32) Slot {
	return Slot{Competitor: id, Filled: true}
}

// Match is one node of the tournament graph.
//
// Slots are filled at initialisation (entry points) or by routing from a
// prior match. Once done, Slots hold the resolved ordering, a permanent
// record of what happened rather than the original inputs.
type Match struct {
	id       uint32
	stage    StageTag
	done     bool
	slots    []Slot
	outcomes []Outcome
}

func newMatch(outcomes []Outcome, stage StageTag) *Match {
	return &Match{
		stage:    stage,
		slots:    make([]Slot, len(outcomes)),
		outcomes: append([]Outcome(nil), outcomes...),
	}
}

// ID implements arena.Entity.
func (m *Match) ID() uint32 { return m.id }

// SetID implements arena.Entity.
func (m *Match) SetID(id uint32) { m.id = id }

// Stage returns the match's stage tag.
func (m *Match) Stage() StageTag { return m.stage }

// Done reports whether the match has been resolved.
func (m *Match) Done() bool { return m.done }

// Arity returns the number of slots.
func (m *Match) Arity() int { return len(m.slots) }

// Slot returns slot i.
func (m *Match) Slot(i int) Slot { return m.slots[i] }

// Slots returns a copy of the slots.
func (m *Match) Slots() []Slot {
	return append([]Slot(nil), m.slots...)
}

// Outcome returns the outcome of slot i.
func (m *Match) Outcome(i int) Outcome { return m.outcomes[i] }

// Outcomes returns a copy of the outcomes.
func (m *Match) Outcomes() []Outcome {
	return append([]Outcome(nil), m.outcomes...)
}

// Full reports whether every slot holds an occupant.
func (m *Match) Full() bool {
	for _, s := range m.slots {
		if !s.Filled {
			return false
		}
	}
	return true
}

// Occupants returns the occupant ids in slot order. Only meaningful when
// Full is true; empty slots yield 0.
func (m *Match) Occupants() []uint32 {
	ids := make([]uint32, len(m.slots))
	for i, s := range m.slots {
		ids[i] = s.Competitor
	}
	return ids
}

// Fill places competitor id into slot i.
func (m *Match) Fill(i int, id uint32) {
	m.slots[i] = Occupied(id)
}

// Finish overwrites the slots with the resolved ordering and marks the
// match done. A match finishes exactly once.
func (m *Match) Finish(resolved []uint32) {
	if m.done {
		panic(fmt.Sprintf("tourney: match %d finished twice", m.id))
	}
	if len(resolved) != len(m.slots) {
		panic(fmt.Sprintf("tourney: match %d resolved with %d occupants, want %d", m.id, len(resolved), len(m.slots)))
	}
	for i, id := range resolved {
		m.slots[i] = Occupied(id)
	}
	m.done = true
}

func (m *Match) clone() *Match {
	return &Match{
		id:       m.id,
		stage:    m.stage,
		done:     m.done,
		slots:    append([]Slot(nil), m.slots...),
		outcomes: append([]Outcome(nil), m.outcomes...),
	}
}
