package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/tourney/internal/engine"
	"github.com/roach88/tourney/internal/resolver"
	"github.com/roach88/tourney/internal/tourney"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	Bracket     BracketOptions
	Resolver    string
	Seed        uint64
	SwapProb    float64
	MaxTicks    int
	Competitors []string

	// RunIDs allows overriding the run id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs engine.RunIDGenerator
}

// ResolutionEntry is one resolved match in the simulate output.
type ResolutionEntry struct {
	Tick    int64    `json:"tick"`
	Match   uint32   `json:"match"`
	Label   string   `json:"label"`
	Stage   *uint32  `json:"stage,omitempty"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
}

// SimulateResult is the outcome of a simulated tournament.
type SimulateResult struct {
	RunID       string            `json:"run_id"`
	Bracket     string            `json:"bracket"`
	Ticks       int               `json:"ticks"`
	Placements  []string          `json:"placements"`
	Resolutions []ResolutionEntry `json:"resolutions"`
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	return newSimulateCommand(&SimulateOptions{RootOptions: rootOpts})
}

func newSimulateCommand(opts *SimulateOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [definition]",
		Short: "Play a bracket to completion",
		Long: `Seed a bracket with competitors and step it until no match can resolve.

Competitors fill the entry points in order. Without --competitors the
command registers p1..pN, one per entry point.

Resolvers:
  identity     slot 0 always wins
  random-swap  slots 0 and 1 swap with probability --swap-prob (seeded)
  script       no script on the command line: same as identity
  seeded       higher rating wins; command-line competitors rate 0

Examples:
  tourney simulate --single-elim 3
  tourney simulate bracket.cue --competitors ada,bea,cy,dot
  tourney simulate --single-elim 4 --staged --resolver random-swap --seed 7 --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(opts, args, cmd)
		},
	}

	opts.Bracket.addFlags(cmd)
	cmd.Flags().StringVar(&opts.Resolver, "resolver", resolver.KindIdentity,
		fmt.Sprintf("match resolver (%s)", strings.Join(resolver.Kinds, "|")))
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "random seed for random-swap")
	cmd.Flags().Float64Var(&opts.SwapProb, "swap-prob", 0.5, "swap probability for random-swap")
	cmd.Flags().IntVar(&opts.MaxTicks, "max-ticks", engine.DefaultMaxTicks, "abort after this many ticks (0 disables)")
	cmd.Flags().StringSliceVar(&opts.Competitors, "competitors", nil, "competitor names in seeding order")

	return cmd
}

func runSimulate(opts *SimulateOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := formatter.Logger()

	b, err := loadBracket(args, opts.Bracket)
	if err != nil {
		return reportBracketError(formatter, err)
	}

	r, err := resolver.New(resolver.Config{Kind: opts.Resolver, SwapProb: opts.SwapProb, Seed: opts.Seed})
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeUsage, err.Error(), nil)
	}

	runIDs := opts.RunIDs
	if runIDs == nil {
		runIDs = engine.UUIDv7Generator{}
	}
	registry := tourney.NewRegistry()
	inst := engine.New(b.Tourney, registry,
		engine.WithRunIDGenerator(runIDs),
		engine.WithMaxTicks(opts.MaxTicks),
		engine.WithLogger(logger),
	)

	names := opts.Competitors
	if len(names) == 0 {
		names = make([]string, inst.NumSpots())
		for i := range names {
			names[i] = fmt.Sprintf("p%d", i+1)
		}
	}
	ids := make([]uint32, len(names))
	for i, n := range names {
		ids[i] = registry.Insert(tourney.NewCompetitor(n))
	}

	if err := inst.Initialise(ids); err != nil {
		code := ErrCodeGeneric
		if se, ok := tourney.AsStructureError(err); ok {
			code = se.Code()
		}
		return formatter.Fail(ExitCommandError, code, err.Error(), nil)
	}
	formatter.VerboseLog("Seeded %d competitor(s) into %s", len(ids), b.Name)

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticks, err := inst.Run(ctx, r)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeRunFailed, err.Error(), map[string]any{
			"run_id": inst.RunID(),
			"ticks":  ticks,
		})
	}

	result := SimulateResult{
		RunID:   inst.RunID(),
		Bracket: b.Name,
		Ticks:   ticks,
	}
	for _, p := range inst.Placements() {
		result.Placements = append(result.Placements, competitorName(registry, p))
	}
	for _, res := range inst.History() {
		entry := ResolutionEntry{
			Tick:    res.Tick,
			Match:   res.Match,
			Label:   b.Label(res.Match),
			Inputs:  competitorNames(registry, res.Inputs),
			Outputs: competitorNames(registry, res.Outputs),
		}
		if s, ok := res.Stage.Get(); ok {
			entry.Stage = &s
		}
		result.Resolutions = append(result.Resolutions, entry)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return outputSimulateText(formatter, result)
}

func outputSimulateText(f *OutputFormatter, result SimulateResult) error {
	w := f.Writer

	fmt.Fprintf(w, "Run %s: %s finished in %d tick(s)\n\n", result.RunID, result.Bracket, result.Ticks)
	for _, res := range result.Resolutions {
		fmt.Fprintf(w, "  tick %-3d %-10s %s -> %s\n", res.Tick, res.Label,
			strings.Join(res.Inputs, ", "), strings.Join(res.Outputs, ", "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Placements:")
	for i, name := range result.Placements {
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "  %d. %s\n", i+1, name)
	}
	return nil
}

func competitorName(registry *tourney.Registry, s tourney.Slot) string {
	if !s.Filled {
		return ""
	}
	if c, ok := registry.Get(s.Competitor); ok {
		return c.Name
	}
	return fmt.Sprintf("#%d", s.Competitor)
}

func competitorNames(registry *tourney.Registry, ids []uint32) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = competitorName(registry, tourney.Slot{Competitor: id, Filled: true})
	}
	return out
}
