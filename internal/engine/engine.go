package engine

import (
	"fmt"
	"log/slog"

	"github.com/roach88/tourney/internal/tourney"
)

// DefaultMaxTicks is the default tick quota for Run.
const DefaultMaxTicks = 10000

// Resolution records one resolved match.
type Resolution struct {
	Tick    int64
	Match   uint32
	Stage   tourney.StageTag
	Inputs  []uint32
	Outputs []uint32
}

// Instance runs one tournament.
//
// It owns a private clone of the structural model and borrows the
// competitor registry for its whole lifetime. Only the instance mutates
// occupant bookkeeping; competitor payloads are changed by the resolver
// alone.
//
// Instance is not safe for concurrent use, and no two instances should
// share a registry.
type Instance struct {
	tourney     *tourney.Tourney
	registry    *tourney.Registry
	initialised bool
	stages      stageTable

	clock    *Clock
	runID    string
	maxTicks int
	logger   *slog.Logger
	history  []Resolution
}

// Option configures an Instance.
type Option func(*options)

type options struct {
	runIDs   RunIDGenerator
	clock    *Clock
	maxTicks int
	logger   *slog.Logger
}

// WithRunIDGenerator sets the generator for the run correlation id.
// Default: UUIDv7Generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(o *options) { o.runIDs = g }
}

// WithClock sets the tick clock, e.g. to resume numbering.
func WithClock(c *Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithMaxTicks sets the tick quota enforced by Run.
// Default: DefaultMaxTicks. Zero or less disables the quota.
func WithMaxTicks(n int) Option {
	return func(o *options) { o.maxTicks = n }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates an instance over a clone of t, bound to registry.
// Later changes to t do not affect the instance.
func New(t *tourney.Tourney, registry *tourney.Registry, opts ...Option) *Instance {
	o := options{
		runIDs:   UUIDv7Generator{},
		maxTicks: DefaultMaxTicks,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = NewClock()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	runID := o.runIDs.Generate()
	return &Instance{
		tourney:  t.Clone(),
		registry: registry,
		stages:   make(stageTable),
		clock:    o.clock,
		runID:    runID,
		maxTicks: o.maxTicks,
		logger:   o.logger.With("run_id", runID),
	}
}

// Initialise seeds the entry points with competitors.
//
// Every stage tag in the model is recorded as open. ids are filtered to
// those present in the registry; unknown ids are dropped without error.
// Structure errors from EntryPoints are returned unchanged. If the number
// of remaining ids differs from the number of entry points an
// *tourney.InputCountError is returned. Otherwise the i-th id is placed in
// the i-th entry point.
//
// A failed call may be retried; a successful one may not.
func (in *Instance) Initialise(ids []uint32) error {
	if in.initialised {
		return ErrInitialised
	}

	in.stages = newStageTable(in.tourney.Stages())

	known := make([]uint32, 0, len(ids))
	for _, id := range ids {
		if in.registry.Contains(id) {
			known = append(known, id)
		}
	}
	if dropped := len(ids) - len(known); dropped > 0 {
		in.logger.Debug("unknown competitors dropped", "dropped", dropped)
	}

	entries, err := in.tourney.EntryPoints()
	if err != nil {
		return err
	}
	if len(known) != len(entries) {
		return &tourney.InputCountError{Competitors: len(known), Entries: len(entries)}
	}

	for i, ref := range entries {
		m, _ := in.tourney.Match(ref.Match)
		m.Fill(ref.Slot, known[i])
	}
	in.initialised = true

	in.logger.Info("tournament initialised",
		"matches", in.tourney.NumMatches(),
		"entries", len(entries),
		"stages", len(in.stages))
	return nil
}

// Initialised reports whether Initialise has succeeded.
func (in *Instance) Initialised() bool { return in.initialised }

// NumSpots returns the number of entry points, or 0 if the model is
// invalid.
func (in *Instance) NumSpots() int {
	entries, err := in.tourney.EntryPoints()
	if err != nil {
		in.logger.Warn("structure invalid", "error", err)
		return 0
	}
	return len(entries)
}

// StageComplete reports whether every match tagged s is done.
// True when no match carries s.
func (in *Instance) StageComplete(s uint32) bool {
	for _, m := range in.tourney.Matches() {
		if tag, ok := m.Stage().Get(); ok && tag == s && !m.Done() {
			return false
		}
	}
	return true
}

// StageState returns the recorded gate state of s. The second result is
// false for stages not seen at initialisation.
func (in *Instance) StageState(s uint32) (StageState, bool) {
	st, ok := in.stages[s]
	return st, ok
}

// MatchState returns the current state of match id.
func (in *Instance) MatchState(id uint32) (MatchState, bool) {
	m, ok := in.tourney.Match(id)
	if !ok {
		return MatchPending, false
	}
	switch {
	case m.Done():
		return MatchDone, true
	case in.eligible(m):
		return MatchReady, true
	default:
		return MatchPending, true
	}
}

// Active returns the ids of matches that are full and not done, in arena
// order. Stage gates are not consulted; this is a display helper.
func (in *Instance) Active() []uint32 {
	var out []uint32
	for _, m := range in.tourney.Matches() {
		if m.Full() && !m.Done() {
			out = append(out, m.ID())
		}
	}
	return out
}

// Stage returns the ids of matches tagged s, in arena order.
func (in *Instance) Stage(s uint32) []uint32 {
	var out []uint32
	for _, m := range in.tourney.Matches() {
		if tag, ok := m.Stage().Get(); ok && tag == s {
			out = append(out, m.ID())
		}
	}
	return out
}

// Placements returns a copy of the placement table.
func (in *Instance) Placements() []tourney.Slot {
	return in.tourney.Placements()
}

// Tourney returns the instance's private model. Callers must treat it as
// read-only.
func (in *Instance) Tourney() *tourney.Tourney { return in.tourney }

// Registry returns the borrowed registry.
func (in *Instance) Registry() *tourney.Registry { return in.registry }

// History returns the resolutions so far in resolution order.
func (in *Instance) History() []Resolution {
	return append([]Resolution(nil), in.history...)
}

// Tick returns the current logical tick.
func (in *Instance) Tick() int64 { return in.clock.Current() }

// RunID returns the run correlation id.
func (in *Instance) RunID() string { return in.runID }

func (in *Instance) String() string {
	return fmt.Sprintf("Instance(run=%s, tick=%d, matches=%d)", in.runID, in.Tick(), in.tourney.NumMatches())
}
