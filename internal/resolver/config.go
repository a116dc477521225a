package resolver

import (
	"fmt"

	"github.com/roach88/tourney/internal/engine"
)

// Resolver kinds accepted by New.
const (
	KindIdentity   = "identity"
	KindRandomSwap = "random-swap"
	KindScript     = "script"
	KindSeeded     = "seeded"
)

// Kinds lists the accepted kinds in display order.
var Kinds = []string{KindIdentity, KindRandomSwap, KindScript, KindSeeded}

// Config selects and parameterises a resolver by name, as read from a
// scenario file or command-line flags.
type Config struct {
	Kind     string  `yaml:"kind"`
	SwapProb float64 `yaml:"swap_prob,omitempty"`
	Seed     uint64  `yaml:"seed,omitempty"`
	Script   [][]int `yaml:"script,omitempty"`
}

// New builds the resolver described by cfg. An empty kind means identity.
func New(cfg Config) (engine.Resolver, error) {
	switch cfg.Kind {
	case "", KindIdentity:
		return Identity{}, nil
	case KindRandomSwap:
		r, err := NewRandomSwap(cfg.SwapProb, cfg.Seed)
		if err != nil {
			return nil, err
		}
		return r, nil
	case KindScript:
		return NewScript(cfg.Script...), nil
	case KindSeeded:
		return Seeded{}, nil
	default:
		return nil, fmt.Errorf("unknown resolver kind %q (want one of %v)", cfg.Kind, Kinds)
	}
}
