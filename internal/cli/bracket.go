package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"cuelang.org/go/cue/token"
	"github.com/spf13/cobra"

	"github.com/roach88/tourney/internal/bracket"
	"github.com/roach88/tourney/internal/compiler"
	"github.com/roach88/tourney/internal/tourney"
)

// BracketOptions selects a bracket: a definition file argument or a
// generated single-elimination bracket.
type BracketOptions struct {
	SingleElim int
	Staged     bool
}

func (b *BracketOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&b.SingleElim, "single-elim", 0, "use a generated single-elimination bracket of this depth")
	cmd.Flags().BoolVar(&b.Staged, "staged", false, "tag single-elimination rounds with stages")
}

// loadedBracket is a structurally valid model ready for an engine.
type loadedBracket struct {
	Name    string
	Tourney *tourney.Tourney

	keys func(uint32) string
}

// Label returns the definition key of match id, or its numeric id.
func (l *loadedBracket) Label(id uint32) string {
	if l.keys != nil {
		if k := l.keys(id); k != "" {
			return k
		}
	}
	return strconv.FormatUint(uint64(id), 10)
}

// BracketError is a bracket that could not be loaded. Problems found in
// the definition itself are listed in Errors.
type BracketError struct {
	ExitCode int
	Code     string
	Message  string
	Errors   []compiler.ValidationError
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// loadBracket resolves the bracket from the positional arguments and flags.
func loadBracket(args []string, b BracketOptions) (*loadedBracket, error) {
	switch {
	case len(args) == 0 && b.SingleElim == 0:
		return nil, &BracketError{ExitCode: ExitCommandError, Code: ErrCodeUsage,
			Message: "a definition file or --single-elim is required"}
	case len(args) > 0 && b.SingleElim != 0:
		return nil, &BracketError{ExitCode: ExitCommandError, Code: ErrCodeUsage,
			Message: "a definition file and --single-elim are mutually exclusive"}
	case b.Staged && b.SingleElim == 0:
		return nil, &BracketError{ExitCode: ExitCommandError, Code: ErrCodeUsage,
			Message: "--staged requires --single-elim"}
	}

	if b.SingleElim != 0 {
		var opts []bracket.Option
		if b.Staged {
			opts = append(opts, bracket.WithStages())
		}
		t, err := bracket.SingleElimination(b.SingleElim, opts...)
		if err != nil {
			return nil, &BracketError{ExitCode: ExitCommandError, Code: ErrCodeUsage, Message: err.Error()}
		}
		return &loadedBracket{
			Name:    fmt.Sprintf("single-elimination-%d", b.SingleElim),
			Tourney: t,
		}, nil
	}

	def, err := loadDefinition(args[0])
	if err != nil {
		return nil, err
	}
	compiled, err := compileDefinition(def)
	if err != nil {
		return nil, err
	}
	return &loadedBracket{Name: compiled.Name, Tourney: compiled.Tourney, keys: compiled.Key}, nil
}

// loadDefinition reads a definition file and classifies failures.
func loadDefinition(path string) (*compiler.Definition, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &BracketError{ExitCode: ExitCommandError, Code: ErrCodeNotFound,
			Message: fmt.Sprintf("definition file not found: %s", path)}
	}

	def, err := compiler.LoadFile(path)
	if err == nil {
		return def, nil
	}

	var ve compiler.ValidationError
	if errors.As(err, &ve) {
		return nil, &BracketError{ExitCode: ExitCommandError, Code: ve.Code, Message: ve.Message}
	}

	// Parse failures are reported like validation errors, with a line
	// number when the parser provides one.
	loadErr := compiler.ValidationError{
		Field:   "file",
		Message: err.Error(),
		Code:    ErrCodeLoadFailed,
	}
	var ce *compiler.CompileError
	if errors.As(err, &ce) {
		loadErr.Message = ce.Message
		loadErr.Line = lineOf(ce.Pos)
	}
	return nil, &BracketError{ExitCode: ExitFailure, Code: ErrCodeLoadFailed,
		Message: "failed to parse definition", Errors: []compiler.ValidationError{loadErr}}
}

// compileDefinition compiles def and classifies failures.
func compileDefinition(def *compiler.Definition) (*compiler.Compiled, error) {
	compiled, err := compiler.Compile(def)
	if err == nil {
		return compiled, nil
	}

	var de *compiler.DefinitionError
	if errors.As(err, &de) {
		return nil, &BracketError{ExitCode: ExitFailure, Code: de.Errors[0].Code,
			Message: fmt.Sprintf("definition has %d error(s)", len(de.Errors)), Errors: de.Errors}
	}

	if se, ok := tourney.AsStructureError(err); ok {
		return nil, &BracketError{ExitCode: ExitFailure, Code: se.Code(),
			Message: "bracket wiring is invalid",
			Errors: []compiler.ValidationError{{
				Field:   "structure",
				Message: se.Error(),
				Code:    se.Code(),
			}}}
	}

	return nil, &BracketError{ExitCode: ExitFailure, Code: ErrCodeGeneric, Message: err.Error()}
}

// lineOf extracts the line number from a CUE position.
func lineOf(pos token.Pos) int {
	if pos.IsValid() {
		return pos.Line()
	}
	return 0
}

// reportBracketError writes a bracket failure and returns the exit error.
func reportBracketError(f *OutputFormatter, err error) error {
	var be *BracketError
	if !errors.As(err, &be) {
		return f.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}
	if len(be.Errors) == 0 {
		return f.Fail(be.ExitCode, be.Code, be.Message, nil)
	}
	return outputValidationErrors(f, be.Errors)
}
