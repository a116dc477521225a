package tourney

import (
	"errors"
	"fmt"
)

// Construction errors.
var (
	ErrInvalidArity      = errors.New("tourney: arity must be at least 1")
	ErrInvalidPlacements = errors.New("tourney: placement count must not be negative")
	ErrArityMismatch     = errors.New("tourney: outcome count does not match arity")
)

// Structure error codes (E201-E203)
const (
	ErrCodeMatchOutcome = "E201" // advance outcome targets an invalid or claimed slot
	ErrCodePlacement    = "E202" // place outcome targets an invalid or claimed placement
	ErrCodeInputCount   = "E203" // entrant count differs from entry point count
)

// StructureError is a malformed tournament detected by validation or
// initialisation. The set is closed: *MatchOutcomeError, *PlacementError
// and *InputCountError.
type StructureError interface {
	error
	Code() string
	structureError()
}

// Fault names the reason an outcome failed validation.
type Fault uint8

const (
	// FaultOutOfRange means the target slot or placement index is too large.
	FaultOutOfRange Fault = iota + 1
	// FaultUnknownMatch means the target match is not in the arena.
	FaultUnknownMatch
	// FaultDuplicate means the target was already claimed by an earlier outcome.
	FaultDuplicate
)

func (f Fault) String() string {
	switch f {
	case FaultOutOfRange:
		return "out of range"
	case FaultUnknownMatch:
		return "unknown match"
	case FaultDuplicate:
		return "already claimed"
	default:
		return "unknown fault"
	}
}

// MatchOutcomeError reports an Advance outcome that leads nowhere valid.
type MatchOutcomeError struct {
	// Match and Slot locate the offending outcome.
	Match uint32
	Slot  int

	// Target and TargetSlot are where the outcome points.
	Target     uint32
	TargetSlot int

	// Matches is the total match count, Arity the slot count per match.
	Matches int
	Arity   int

	Fault Fault
}

func (e *MatchOutcomeError) Error() string {
	return fmt.Sprintf("%s: match %d outcome %d leads to match %d slot %d: %s (matches: %d, arity: %d)",
		ErrCodeMatchOutcome, e.Match, e.Slot, e.Target, e.TargetSlot, e.Fault, e.Matches, e.Arity)
}

// Code implements StructureError.
func (e *MatchOutcomeError) Code() string { return ErrCodeMatchOutcome }

func (*MatchOutcomeError) structureError() {}

// PlacementError reports a Place outcome that leads nowhere valid.
type PlacementError struct {
	Match      uint32
	Slot       int
	Position   int
	Placements int
	Fault      Fault
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%s: match %d outcome %d leads to placement %d: %s (placements: %d)",
		ErrCodePlacement, e.Match, e.Slot, e.Position, e.Fault, e.Placements)
}

// Code implements StructureError.
func (e *PlacementError) Code() string { return ErrCodePlacement }

func (*PlacementError) structureError() {}

// InputCountError reports that the number of known entrants differs from
// the number of entry points.
type InputCountError struct {
	Competitors int
	Entries     int
}

func (e *InputCountError) Error() string {
	return fmt.Sprintf("%s: %d competitors for %d entry points", ErrCodeInputCount, e.Competitors, e.Entries)
}

// Code implements StructureError.
func (e *InputCountError) Code() string { return ErrCodeInputCount }

func (*InputCountError) structureError() {}

// IsMatchOutcomeError returns true if err wraps a *MatchOutcomeError.
func IsMatchOutcomeError(err error) bool {
	var e *MatchOutcomeError
	return errors.As(err, &e)
}

// IsPlacementError returns true if err wraps a *PlacementError.
func IsPlacementError(err error) bool {
	var e *PlacementError
	return errors.As(err, &e)
}

// IsInputCountError returns true if err wraps an *InputCountError.
func IsInputCountError(err error) bool {
	var e *InputCountError
	return errors.As(err, &e)
}

// AsStructureError extracts a StructureError from err.
func AsStructureError(err error) (StructureError, bool) {
	var se StructureError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
