package engine

import (
	"context"
)

// Run steps the tournament until it stalls and returns the number of
// resolving ticks.
//
// The context is checked between ticks only; a tick in progress always
// completes. Run fails with *TicksExceededError once the instance's tick
// quota is passed.
func (in *Instance) Run(ctx context.Context, r Resolver) (int, error) {
	quota := newTickQuota(in.maxTicks)
	ticks := 0

	for {
		if err := ctx.Err(); err != nil {
			return ticks, err
		}
		if !in.Step(r) {
			break
		}
		ticks++
		if err := quota.check(in.runID); err != nil {
			in.logger.Warn("tick quota exceeded", "ticks", ticks, "limit", in.maxTicks)
			return ticks, err
		}
	}

	in.logger.Info("tournament finished", "ticks", ticks, "resolved", len(in.history))
	return ticks, nil
}
