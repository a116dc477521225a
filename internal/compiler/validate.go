package compiler

import (
	"fmt"
	"strings"
)

// Validation error codes (E100-E109)
const (
	ErrUnsupportedFormat = "E100" // file extension not yaml, yml or cue

	ErrNameEmpty        = "E101" // name is required
	ErrInvalidArity     = "E102" // arity must be at least 1
	ErrInvalidPlacement = "E103" // placements must not be negative
	ErrNoMatches        = "E104" // at least one match required
	ErrKeyEmpty         = "E105" // match key is required
	ErrDuplicateKey     = "E106" // match keys must be unique
	ErrOutcomeCount     = "E107" // outcome count must equal arity
	ErrOutcomeShape     = "E108" // outcome must set exactly one kind
	ErrUnknownMatchKey  = "E109" // advance outcome names an undefined key
)

// ValidationError represents a definition validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// DefinitionError carries every validation error of one definition.
type DefinitionError struct {
	Name   string
	Errors []ValidationError
}

func (e *DefinitionError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		msgs[i] = ve.Error()
	}
	return fmt.Sprintf("definition %q has %d error(s): %s", e.Name, len(e.Errors), strings.Join(msgs, "; "))
}

// Validate checks a definition and returns all errors found (does not
// fail-fast). Graph wiring is not checked here.
func Validate(def *Definition) []ValidationError {
	var errs []ValidationError

	// E101: name is required
	if strings.TrimSpace(def.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "name is required and must be non-empty",
			Code:    ErrNameEmpty,
		})
	}

	// E102
	if def.Arity < 1 {
		errs = append(errs, ValidationError{
			Field:   "arity",
			Message: fmt.Sprintf("arity must be at least 1, got %d", def.Arity),
			Code:    ErrInvalidArity,
		})
	}

	// E103
	if def.Placements < 0 {
		errs = append(errs, ValidationError{
			Field:   "placements",
			Message: fmt.Sprintf("placements must not be negative, got %d", def.Placements),
			Code:    ErrInvalidPlacement,
		})
	}

	// E104
	if len(def.Matches) == 0 {
		errs = append(errs, ValidationError{
			Field:   "matches",
			Message: "at least one match is required",
			Code:    ErrNoMatches,
		})
	}

	keys := make(map[string]bool, len(def.Matches))
	for i, m := range def.Matches {
		field := fmt.Sprintf("matches[%d]", i)

		if strings.TrimSpace(m.Key) == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".key",
				Message: "match key is required",
				Code:    ErrKeyEmpty,
			})
		} else if keys[m.Key] {
			errs = append(errs, ValidationError{
				Field:   field + ".key",
				Message: fmt.Sprintf("duplicate match key: %q", m.Key),
				Code:    ErrDuplicateKey,
			})
		}
		keys[m.Key] = true

		if def.Arity >= 1 && len(m.Outcomes) != def.Arity {
			errs = append(errs, ValidationError{
				Field:   field + ".outcomes",
				Message: fmt.Sprintf("match %q has %d outcomes, arity is %d", m.Key, len(m.Outcomes), def.Arity),
				Code:    ErrOutcomeCount,
			})
		}
	}

	// Second pass: references may point forward.
	for i, m := range def.Matches {
		for j, o := range m.Outcomes {
			field := fmt.Sprintf("matches[%d].outcomes[%d]", i, j)

			if o.kinds() != 1 {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: "outcome must set exactly one of match/slot, place or discard",
					Code:    ErrOutcomeShape,
				})
				continue
			}
			if o.Match == "" && o.Slot != nil {
				errs = append(errs, ValidationError{
					Field:   field + ".match",
					Message: "slot given without match",
					Code:    ErrOutcomeShape,
				})
				continue
			}
			if o.Match != "" && o.Slot == nil {
				errs = append(errs, ValidationError{
					Field:   field + ".slot",
					Message: fmt.Sprintf("advance to %q needs a slot", o.Match),
					Code:    ErrOutcomeShape,
				})
				continue
			}
			if o.Match != "" && !keys[o.Match] {
				errs = append(errs, ValidationError{
					Field:   field + ".match",
					Message: fmt.Sprintf("undefined match key %q", o.Match),
					Code:    ErrUnknownMatchKey,
				})
			}
		}
	}

	return errs
}
