package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, ev := range e.Trace {
		fmt.Fprintf(&buf, "  [tick %d] %s %v -> %v\n", ev.Tick, ev.Label(), ev.Inputs, ev.Outputs)
	}

	return buf.String()
}

// EvaluateAssertions runs every assertion against the result and returns
// the failure messages in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluate(result, a); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertPlacements:
		return assertPlacements(result, a)
	case AssertTicks:
		return assertCount(result, a, result.Ticks)
	case AssertResolutions:
		return assertCount(result, a, len(result.Trace))
	case AssertWinner:
		return assertWinner(result.Trace, a)
	case AssertResolutionOrder:
		return assertResolutionOrder(result.Trace, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertPlacements compares the whole placement table.
func assertPlacements(result *Result, a Assertion) error {
	if slices.Equal(result.Placements, a.Placements) {
		return nil
	}
	return &AssertionError{
		Type:     AssertPlacements,
		Expected: fmt.Sprintf("%q", a.Placements),
		Actual:   fmt.Sprintf("%q", result.Placements),
		Trace:    result.Trace,
	}
}

func assertCount(result *Result, a Assertion, got int) error {
	if got == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("%d", a.Count),
		Actual:   fmt.Sprintf("%d", got),
		Trace:    result.Trace,
	}
}

// assertWinner checks slot 0 of the match's resolved order.
func assertWinner(trace []TraceEvent, a Assertion) error {
	for _, ev := range trace {
		if !ev.refers(a.Match) {
			continue
		}
		if len(ev.Outputs) > 0 && ev.Outputs[0] == a.Winner {
			return nil
		}
		return &AssertionError{
			Type:     AssertWinner,
			Expected: fmt.Sprintf("%s won by %s", a.Match, a.Winner),
			Actual:   fmt.Sprintf("resolved as %v", ev.Outputs),
			Trace:    trace,
		}
	}
	return &AssertionError{
		Type:     AssertWinner,
		Expected: fmt.Sprintf("%s won by %s", a.Match, a.Winner),
		Actual:   "match never resolved",
		Trace:    trace,
	}
}

// assertResolutionOrder checks matches resolve in the given order.
// Matches don't need to be consecutive.
func assertResolutionOrder(trace []TraceEvent, a Assertion) error {
	// 1-indexed so that zero means missing
	positions := make(map[string]int, len(a.Matches))
	for i, ev := range trace {
		for _, ref := range a.Matches {
			if positions[ref] == 0 && ev.refers(ref) {
				positions[ref] = i + 1
			}
		}
	}

	for _, ref := range a.Matches {
		if positions[ref] == 0 {
			return &AssertionError{
				Type:     AssertResolutionOrder,
				Expected: fmt.Sprintf("all matches resolved: %v", a.Matches),
				Actual:   fmt.Sprintf("missing match: %s", ref),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(a.Matches); i++ {
		prev, curr := a.Matches[i-1], a.Matches[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertResolutionOrder,
				Expected: fmt.Sprintf("matches in order: %v", a.Matches),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}
