package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tourney/internal/bracket"
	"github.com/roach88/tourney/internal/resolver"
)

// Scenario defines one tournament run and the checks applied to it.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Definition is a bracket definition file (.yaml, .yml or .cue).
	// Relative paths are resolved against the scenario file's directory.
	// Exactly one of Definition and SingleElimination must be set.
	Definition string `yaml:"definition,omitempty"`

	// SingleElimination builds a knockout of the given depth instead.
	SingleElimination int `yaml:"single_elimination,omitempty"`

	// Staged tags the single-elimination rounds with stages.
	Staged bool `yaml:"staged,omitempty"`

	// Competitors are registered in order; names must be unique.
	Competitors []CompetitorDef `yaml:"competitors"`

	// Entrants lists competitor names in entry-point order. Defaults to
	// every competitor in registration order.
	Entrants []string `yaml:"entrants,omitempty"`

	// Resolver decides the matches. Defaults to identity.
	Resolver resolver.Config `yaml:"resolver,omitempty"`

	// RunID is a fixed run id for deterministic output.
	// If empty, defaults to "test-run-default".
	RunID string `yaml:"run_id,omitempty"`

	// MaxTicks overrides the engine's tick quota when positive.
	MaxTicks int `yaml:"max_ticks,omitempty"`

	// Assertions validate the final trace and placements.
	Assertions []Assertion `yaml:"assertions"`
}

// CompetitorDef declares one competitor.
type CompetitorDef struct {
	Name  string    `yaml:"name"`
	Stats []float64 `yaml:"stats,omitempty"`
}

// Assertion validates the trace or the placements.
type Assertion struct {
	// Type specifies the assertion type:
	// - "placements": the placement table, by competitor name ("" for empty)
	// - "ticks": number of resolving ticks
	// - "resolutions": number of resolved matches
	// - "winner": slot 0 of the named match's resolved order
	// - "resolution_order": matches resolve in this order
	Type string `yaml:"type"`

	// Placements is the expected placement table (used by placements).
	Placements []string `yaml:"placements,omitempty"`

	// Count is the expected number (used by ticks and resolutions).
	Count int `yaml:"count,omitempty"`

	// Match is a match key or numeric id (used by winner).
	Match string `yaml:"match,omitempty"`

	// Winner is the expected competitor name (used by winner).
	Winner string `yaml:"winner,omitempty"`

	// Matches is the expected order of match keys or ids (used by
	// resolution_order). Intervening matches are allowed.
	Matches []string `yaml:"matches,omitempty"`
}

// Assertion type constants.
const (
	AssertPlacements      = "placements"
	AssertTicks           = "ticks"
	AssertResolutions     = "resolutions"
	AssertWinner          = "winner"
	AssertResolutionOrder = "resolution_order"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve the definition path BEFORE validation
	if scenario.Definition != "" && !filepath.IsAbs(scenario.Definition) {
		scenario.Definition = filepath.Join(filepath.Dir(path), scenario.Definition)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Definition == "" && s.SingleElimination == 0:
		return fmt.Errorf("one of definition or single_elimination is required")
	case s.Definition != "" && s.SingleElimination != 0:
		return fmt.Errorf("definition and single_elimination are mutually exclusive")
	case s.SingleElimination < 0 || s.SingleElimination > bracket.MaxDepth:
		return fmt.Errorf("single_elimination must be in [1, %d], got %d", bracket.MaxDepth, s.SingleElimination)
	case s.Staged && s.Definition != "":
		return fmt.Errorf("staged applies to single_elimination only")
	}

	if s.Definition != "" {
		if _, err := os.Stat(s.Definition); os.IsNotExist(err) {
			return fmt.Errorf("definition file not found: %s", s.Definition)
		}
	}

	if len(s.Competitors) == 0 {
		return fmt.Errorf("competitors list is required and must be non-empty")
	}

	names := make(map[string]bool, len(s.Competitors))
	for i, c := range s.Competitors {
		if c.Name == "" {
			return fmt.Errorf("competitors[%d]: name is required", i)
		}
		if names[c.Name] {
			return fmt.Errorf("competitors[%d]: duplicate name %q", i, c.Name)
		}
		names[c.Name] = true
	}

	for i, e := range s.Entrants {
		if !names[e] {
			return fmt.Errorf("entrants[%d]: unknown competitor %q", i, e)
		}
	}

	if s.Resolver.Kind != "" && !slices.Contains(resolver.Kinds, s.Resolver.Kind) {
		return fmt.Errorf("resolver: unknown kind %q", s.Resolver.Kind)
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertPlacements:
		if a.Placements == nil {
			return fmt.Errorf("assertions[%d]: placements list is required for placements", index)
		}
	case AssertTicks, AssertResolutions:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertWinner:
		if a.Match == "" || a.Winner == "" {
			return fmt.Errorf("assertions[%d]: match and winner are required for winner", index)
		}
	case AssertResolutionOrder:
		if len(a.Matches) == 0 {
			return fmt.Errorf("assertions[%d]: matches list is required for resolution_order", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
