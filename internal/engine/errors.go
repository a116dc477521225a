package engine

import (
	"errors"
	"fmt"
)

// ErrInitialised is returned by Initialise on an instance that already
// seeded its entry points.
var ErrInitialised = errors.New("engine: instance already initialised")

// TicksExceededError is returned by Run when the tournament is still
// advancing after the tick quota.
type TicksExceededError struct {
	RunID string
	Ticks int
	Limit int
}

// Error implements the error interface.
func (e *TicksExceededError) Error() string {
	return fmt.Sprintf("run %s exceeded max ticks quota: %d ticks > %d limit", e.RunID, e.Ticks, e.Limit)
}

// IsTicksExceededError returns true if the error is a TicksExceededError.
// Uses errors.As to handle wrapped errors.
func IsTicksExceededError(err error) bool {
	var te *TicksExceededError
	return errors.As(err, &te)
}
