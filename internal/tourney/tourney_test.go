package tourney

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, arity, placements int) *Tourney {
	t.Helper()
	tr, err := New(arity, placements)
	require.NoError(t, err)
	return tr
}

func mustAdd(t *testing.T, tr *Tourney, stage StageTag, outcomes ...Outcome) uint32 {
	t.Helper()
	id, err := tr.AddMatch(outcomes, stage)
	require.NoError(t, err)
	return id
}

func TestNewRejectsBadShape(t *testing.T) {
	_, err := New(0, 3)
	assert.ErrorIs(t, err, ErrInvalidArity)

	_, err = New(2, -1)
	assert.ErrorIs(t, err, ErrInvalidPlacements)

	tr, err := New(3, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.Arity())
	assert.Equal(t, 0, tr.NumPlacements())
}

func TestAddMatchEnforcesArity(t *testing.T) {
	tr := mustNew(t, 2, 1)

	_, err := tr.AddMatch([]Outcome{Discard{}}, NoStage)
	assert.ErrorIs(t, err, ErrArityMismatch)

	id := mustAdd(t, tr, StageAt(4), Place{Position: 0}, Discard{})
	m, ok := tr.Match(id)
	require.True(t, ok)
	assert.Equal(t, 2, m.Arity())
	assert.Len(t, m.Outcomes(), 2)
	assert.False(t, m.Done())
	assert.False(t, m.Full())
	s, tagged := m.Stage().Get()
	assert.True(t, tagged)
	assert.Equal(t, uint32(4), s)
}

func TestAddMatchDoesNotValidate(t *testing.T) {
	tr := mustNew(t, 2, 1)
	// Dangling target is accepted at add time.
	mustAdd(t, tr, NoStage, Advance{Match: 17, Slot: 0}, Discard{})
	assert.Equal(t, 1, tr.NumMatches())
	assert.Error(t, tr.Validate())
}

func TestValidateAcceptsWellFormedGraph(t *testing.T) {
	tr := mustNew(t, 2, 3)
	final := mustAdd(t, tr, NoStage, Place{Position: 0}, Place{Position: 1})
	bronze := mustAdd(t, tr, NoStage, Place{Position: 2}, Discard{})
	mustAdd(t, tr, NoStage, Advance{Match: final, Slot: 0}, Advance{Match: bronze, Slot: 0})
	mustAdd(t, tr, NoStage, Advance{Match: final, Slot: 1}, Advance{Match: bronze, Slot: 1})

	assert.NoError(t, tr.Validate())
}

func TestValidateMatchOutcomeFaults(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T, tr *Tourney)
		want  MatchOutcomeError
	}{
		{
			name: "slot out of range",
			build: func(t *testing.T, tr *Tourney) {
				target := mustAdd(t, tr, NoStage, Discard{}, Discard{})
				mustAdd(t, tr, NoStage, Discard{}, Advance{Match: target, Slot: 2})
			},
			want: MatchOutcomeError{Match: 1, Slot: 1, Target: 0, TargetSlot: 2, Matches: 2, Arity: 2, Fault: FaultOutOfRange},
		},
		{
			name: "unknown target match",
			build: func(t *testing.T, tr *Tourney) {
				mustAdd(t, tr, NoStage, Advance{Match: 9, Slot: 0}, Discard{})
			},
			want: MatchOutcomeError{Match: 0, Slot: 0, Target: 9, TargetSlot: 0, Matches: 1, Arity: 2, Fault: FaultUnknownMatch},
		},
		{
			name: "duplicate target",
			build: func(t *testing.T, tr *Tourney) {
				target := mustAdd(t, tr, NoStage, Discard{}, Discard{})
				mustAdd(t, tr, NoStage, Advance{Match: target, Slot: 1}, Discard{})
				mustAdd(t, tr, NoStage, Discard{}, Advance{Match: target, Slot: 1})
			},
			want: MatchOutcomeError{Match: 2, Slot: 1, Target: 0, TargetSlot: 1, Matches: 3, Arity: 2, Fault: FaultDuplicate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := mustNew(t, 2, 0)
			tt.build(t, tr)

			err := tr.Validate()
			require.Error(t, err)
			assert.True(t, IsMatchOutcomeError(err))

			var moe *MatchOutcomeError
			require.True(t, errors.As(err, &moe))
			assert.Equal(t, tt.want, *moe)
			assert.Equal(t, ErrCodeMatchOutcome, moe.Code())
			assert.Contains(t, err.Error(), tt.want.Fault.String())
		})
	}
}

func TestValidatePlacementFaults(t *testing.T) {
	t.Run("out of range", func(t *testing.T) {
		tr := mustNew(t, 2, 2)
		mustAdd(t, tr, NoStage, Place{Position: 0}, Place{Position: 2})

		var pe *PlacementError
		require.True(t, errors.As(tr.Validate(), &pe))
		assert.Equal(t, PlacementError{Match: 0, Slot: 1, Position: 2, Placements: 2, Fault: FaultOutOfRange}, *pe)
	})

	t.Run("duplicate", func(t *testing.T) {
		tr := mustNew(t, 2, 3)
		mustAdd(t, tr, NoStage, Place{Position: 1}, Discard{})
		mustAdd(t, tr, NoStage, Place{Position: 1}, Discard{})

		err := tr.Validate()
		assert.True(t, IsPlacementError(err))
		assert.False(t, IsMatchOutcomeError(err))

		var pe *PlacementError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, uint32(1), pe.Match)
		assert.Equal(t, 0, pe.Slot)
		assert.Equal(t, FaultDuplicate, pe.Fault)
		assert.Equal(t, ErrCodePlacement, pe.Code())
	})
}

func TestValidateReportsFirstInArenaThenSlotOrder(t *testing.T) {
	tr := mustNew(t, 2, 1)
	// Match 0 has a bad placement in slot 1, match 1 a dangling route in slot 0.
	mustAdd(t, tr, NoStage, Discard{}, Place{Position: 5})
	mustAdd(t, tr, NoStage, Advance{Match: 99, Slot: 0}, Discard{})

	err := tr.Validate()
	assert.True(t, IsPlacementError(err), "match 0 precedes match 1 in arena order")

	// With match 0 gone the dangling route is the first failure.
	_, ok := tr.RemoveMatch(0)
	require.True(t, ok)
	assert.True(t, IsMatchOutcomeError(tr.Validate()))
}

func TestValidateDuplicateDetectionIsOrderIndependent(t *testing.T) {
	build := func(firstSlot, secondSlot int) *Tourney {
		tr := mustNew(t, 2, 0)
		target := mustAdd(t, tr, NoStage, Discard{}, Discard{})
		mustAdd(t, tr, NoStage, Advance{Match: target, Slot: firstSlot}, Discard{})
		mustAdd(t, tr, NoStage, Advance{Match: target, Slot: secondSlot}, Discard{})
		return tr
	}
	assert.True(t, IsMatchOutcomeError(build(0, 0).Validate()))
	assert.NoError(t, build(0, 1).Validate())
}

func TestEntryPointsWithoutRoutes(t *testing.T) {
	const matches, arity = 4, 3
	tr := mustNew(t, arity, 0)
	for i := 0; i < matches; i++ {
		mustAdd(t, tr, NoStage, Discard{}, Discard{}, Discard{})
	}

	entries, err := tr.EntryPoints()
	require.NoError(t, err)
	assert.Len(t, entries, matches*arity)
	assert.Equal(t, SlotRef{Match: 0, Slot: 0}, entries[0])
	assert.Equal(t, SlotRef{Match: 3, Slot: 2}, entries[len(entries)-1])
}

func TestEntryPointsSubtractRoutedSlots(t *testing.T) {
	tr := mustNew(t, 2, 3)
	final := mustAdd(t, tr, NoStage, Place{Position: 0}, Place{Position: 1})
	semiA := mustAdd(t, tr, NoStage, Advance{Match: final, Slot: 0}, Place{Position: 2})
	semiB := mustAdd(t, tr, NoStage, Advance{Match: final, Slot: 1}, Discard{})

	entries, err := tr.EntryPoints()
	require.NoError(t, err)
	assert.Equal(t, []SlotRef{
		{Match: semiA, Slot: 0}, {Match: semiA, Slot: 1},
		{Match: semiB, Slot: 0}, {Match: semiB, Slot: 1},
	}, entries)
}

func TestEntryPointsPropagateValidationError(t *testing.T) {
	tr := mustNew(t, 2, 1)
	mustAdd(t, tr, NoStage, Place{Position: 0}, Place{Position: 0})

	entries, err := tr.EntryPoints()
	assert.Nil(t, entries)
	var pe *PlacementError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, FaultDuplicate, pe.Fault)
}

func TestSingleMatchEntryPoints(t *testing.T) {
	tr := mustNew(t, 2, 3)
	m := mustAdd(t, tr, NoStage, Place{Position: 0}, Place{Position: 1})

	entries, err := tr.EntryPoints()
	require.NoError(t, err)
	assert.Equal(t, []SlotRef{{Match: m, Slot: 0}, {Match: m, Slot: 1}}, entries)
}

func TestStagesInFirstAppearanceOrder(t *testing.T) {
	tr := mustNew(t, 1, 0)
	mustAdd(t, tr, StageAt(2), Discard{})
	mustAdd(t, tr, NoStage, Discard{})
	mustAdd(t, tr, StageAt(0), Discard{})
	mustAdd(t, tr, StageAt(2), Discard{})

	assert.Equal(t, []uint32{2, 0}, tr.Stages())
}

func TestCloneIsDeep(t *testing.T) {
	tr := mustNew(t, 2, 1)
	id := mustAdd(t, tr, NoStage, Place{Position: 0}, Discard{})

	c := tr.Clone()
	cm, _ := c.Match(id)
	cm.Fill(0, 5)
	c.SetPlacement(0, 5)

	om, _ := tr.Match(id)
	assert.False(t, om.Slot(0).Filled)
	assert.False(t, tr.Placement(0).Filled)
	assert.True(t, c.Placement(0).Filled)
}

func TestMatchFinishRecordsResolvedOrder(t *testing.T) {
	tr := mustNew(t, 2, 0)
	id := mustAdd(t, tr, NoStage, Discard{}, Discard{})
	m, _ := tr.Match(id)
	m.Fill(0, 1)
	m.Fill(1, 2)
	require.True(t, m.Full())

	m.Finish([]uint32{2, 1})
	assert.True(t, m.Done())
	assert.Equal(t, []uint32{2, 1}, m.Occupants())
	assert.Panics(t, func() { m.Finish([]uint32{1, 2}) })
}

func TestStagePredecessor(t *testing.T) {
	_, ok := NoStage.Predecessor()
	assert.False(t, ok)
	_, ok = StageAt(0).Predecessor()
	assert.False(t, ok)
	p, ok := StageAt(3).Predecessor()
	assert.True(t, ok)
	assert.Equal(t, uint32(2), p)
}

func TestInputCountError(t *testing.T) {
	var err error = &InputCountError{Competitors: 3, Entries: 4}
	assert.True(t, IsInputCountError(err))
	se, ok := AsStructureError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeInputCount, se.Code())
	assert.Contains(t, err.Error(), "3 competitors for 4 entry points")
}

func TestRegistryHoldsCompetitors(t *testing.T) {
	reg := NewRegistry()
	id := reg.Insert(NewCompetitor("ada", 1.5))
	c, ok := reg.Get(id)
	require.True(t, ok)
	assert.Equal(t, "ada", c.Name)
	assert.Equal(t, []float64{1.5}, c.Stats)
	assert.Equal(t, id, c.ID())
}

func TestCompetitorNameIsNFC(t *testing.T) {
	c := NewCompetitor("Jose\u0301")
	assert.Equal(t, "Jos\u00e9", c.Name)
}
