package engine

import "sync/atomic"

// Clock is the logical tick counter of an Instance.
//
// Every Step that resolves at least one match advances the clock by one,
// and each Resolution in the history is stamped with that tick. Wall-clock
// time is never used for ordering, so a replay with the same resolver
// decisions produces the same ticks.
type Clock struct {
	tick atomic.Int64
}

// NewClock creates a clock at tick 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock positioned at start.
// The next call to Next returns start+1.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.tick.Store(start)
	return c
}

// Next advances the clock and returns the new tick.
func (c *Clock) Next() int64 {
	return c.tick.Add(1)
}

// Current returns the current tick without advancing.
func (c *Clock) Current() int64 {
	return c.tick.Load()
}
