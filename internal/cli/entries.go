package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// EntryPoint is one slot that must be seeded before play.
type EntryPoint struct {
	Index int    `json:"index"`
	Match uint32 `json:"match"`
	Label string `json:"label"`
	Slot  int    `json:"slot"`
}

// EntriesResult lists a bracket's entry points in seeding order.
type EntriesResult struct {
	Bracket string       `json:"bracket"`
	Entries []EntryPoint `json:"entries"`
}

// NewEntriesCommand creates the entries command.
func NewEntriesCommand(rootOpts *RootOptions) *cobra.Command {
	var bopts BracketOptions

	cmd := &cobra.Command{
		Use:   "entries [definition]",
		Short: "List the entry points of a bracket",
		Long: `List the slots no other match feeds, in the order competitors are
seeded into them by simulate.

Examples:
  tourney entries bracket.yaml
  tourney entries --single-elim 3 --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntries(rootOpts, bopts, args, cmd)
		},
	}
	bopts.addFlags(cmd)

	return cmd
}

func runEntries(opts *RootOptions, bopts BracketOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	b, err := loadBracket(args, bopts)
	if err != nil {
		return reportBracketError(formatter, err)
	}

	refs, err := b.Tourney.EntryPoints()
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}

	result := EntriesResult{Bracket: b.Name, Entries: make([]EntryPoint, len(refs))}
	for i, ref := range refs {
		result.Entries[i] = EntryPoint{Index: i, Match: ref.Match, Label: b.Label(ref.Match), Slot: ref.Slot}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "%s: %d entry point(s)\n", result.Bracket, len(result.Entries))
	for _, e := range result.Entries {
		fmt.Fprintf(w, "  %3d  %s slot %d\n", e.Index, e.Label, e.Slot)
	}
	return nil
}
