package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/tourney/internal/bracket"
	"github.com/roach88/tourney/internal/compiler"
	"github.com/roach88/tourney/internal/engine"
	"github.com/roach88/tourney/internal/resolver"
	"github.com/roach88/tourney/internal/testutil"
	"github.com/roach88/tourney/internal/tourney"
)

// Harness holds the state of one scenario execution.
type Harness struct {
	tourney  *tourney.Tourney
	keys     func(uint32) string
	registry *tourney.Registry
	names    map[string]uint32
	runIDs   *testutil.FixedRunIDGenerator
	logger   *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs on a fresh registry and engine instance with a fixed
// run id and logs suppressed.
//
// Execution flow:
// 1. Build the bracket from the definition file or the depth
// 2. Register competitors and seed the entrants
// 3. Run the engine to completion with the configured resolver
// 4. Evaluate assertions against trace and placements
//
// Failed assertions are reported in the result; setup and engine failures
// are returned as errors.
func Run(scenario *Scenario) (*Result, error) {
	h, err := newHarness(scenario)
	if err != nil {
		return nil, err
	}

	r, err := resolver.New(scenario.Resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to build resolver: %w", err)
	}

	opts := []engine.Option{
		engine.WithRunIDGenerator(h.runIDs),
		engine.WithLogger(h.logger),
	}
	if scenario.MaxTicks > 0 {
		opts = append(opts, engine.WithMaxTicks(scenario.MaxTicks))
	}
	inst := engine.New(h.tourney, h.registry, opts...)

	if err := inst.Initialise(h.entrants(scenario)); err != nil {
		return nil, fmt.Errorf("failed to initialise: %w", err)
	}

	ticks, err := inst.Run(context.Background(), r)
	if err != nil {
		return nil, fmt.Errorf("failed to run: %w", err)
	}

	result := NewResult()
	result.RunID = inst.RunID()
	result.Ticks = ticks
	for _, res := range inst.History() {
		result.Trace = append(result.Trace, h.event(res))
	}
	for _, p := range inst.Placements() {
		result.Placements = append(result.Placements, h.name(p))
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// newHarness builds the bracket and the registry for a scenario.
func newHarness(s *Scenario) (*Harness, error) {
	h := &Harness{
		registry: tourney.NewRegistry(),
		names:    make(map[string]uint32, len(s.Competitors)),
		runIDs:   testutil.NewFixedRunIDGenerator(s.RunID),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		keys:     func(uint32) string { return "" },
	}

	if s.Definition != "" {
		def, err := compiler.LoadFile(s.Definition)
		if err != nil {
			return nil, fmt.Errorf("failed to load definition: %w", err)
		}
		compiled, err := compiler.Compile(def)
		if err != nil {
			return nil, fmt.Errorf("failed to compile definition: %w", err)
		}
		h.tourney = compiled.Tourney
		h.keys = compiled.Key
	} else {
		var opts []bracket.Option
		if s.Staged {
			opts = append(opts, bracket.WithStages())
		}
		t, err := bracket.SingleElimination(s.SingleElimination, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to build bracket: %w", err)
		}
		h.tourney = t
	}

	for _, c := range s.Competitors {
		comp := tourney.NewCompetitor(c.Name, c.Stats...)
		h.names[c.Name] = h.registry.Insert(comp)
	}

	return h, nil
}

// entrants maps the scenario's entrant names to registry ids.
func (h *Harness) entrants(s *Scenario) []uint32 {
	if len(s.Entrants) == 0 {
		return h.registry.IDs()
	}
	ids := make([]uint32, len(s.Entrants))
	for i, name := range s.Entrants {
		ids[i] = h.names[name]
	}
	return ids
}

func (h *Harness) event(res engine.Resolution) TraceEvent {
	ev := TraceEvent{
		Tick:    res.Tick,
		Match:   res.Match,
		Key:     h.keys(res.Match),
		Inputs:  h.nameAll(res.Inputs),
		Outputs: h.nameAll(res.Outputs),
	}
	if s, ok := res.Stage.Get(); ok {
		ev.Stage = &s
	}
	return ev
}

func (h *Harness) nameAll(ids []uint32) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = h.name(tourney.Slot{Competitor: id, Filled: true})
	}
	return out
}

func (h *Harness) name(s tourney.Slot) string {
	if !s.Filled {
		return ""
	}
	c, ok := h.registry.Get(s.Competitor)
	if !ok {
		return fmt.Sprintf("#%d", s.Competitor)
	}
	return c.Name
}
