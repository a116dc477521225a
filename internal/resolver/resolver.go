package resolver

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/roach88/tourney/internal/tourney"
)

// Identity resolves every match in slot order.
type Identity struct{}

// Resolve returns the occupants unchanged.
func (Identity) Resolve(occupants []uint32, _ *tourney.Registry) []uint32 {
	return occupants
}

// RandomSwap swaps slots 0 and 1 with a fixed probability. Other slots keep
// their order.
type RandomSwap struct {
	prob float64
	rng  *rand.Rand
}

// NewRandomSwap creates a resolver with swap probability prob, seeded so
// that equal seeds replay equal tournaments.
func NewRandomSwap(prob float64, seed uint64) (*RandomSwap, error) {
	if prob < 0 || prob > 1 {
		return nil, fmt.Errorf("swap probability %v outside [0, 1]", prob)
	}
	return &RandomSwap{
		prob: prob,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Resolve swaps the first two occupants with the configured probability.
func (r *RandomSwap) Resolve(occupants []uint32, _ *tourney.Registry) []uint32 {
	out := slices.Clone(occupants)
	if len(out) >= 2 && r.rng.Float64() < r.prob {
		out[0], out[1] = out[1], out[0]
	}
	return out
}

// Script replays permutations in call order. Permutation p maps output
// slot i to input slot p[i]. Once the script is exhausted, or when a
// permutation does not fit the match, the occupants are returned
// unchanged.
type Script struct {
	perms [][]int
	next  int
}

// NewScript creates a scripted resolver.
func NewScript(perms ...[]int) *Script {
	return &Script{perms: perms}
}

// Resolve applies the next permutation.
func (s *Script) Resolve(occupants []uint32, _ *tourney.Registry) []uint32 {
	if s.next >= len(s.perms) {
		return occupants
	}
	p := s.perms[s.next]
	s.next++
	if !isPermutation(p, len(occupants)) {
		return occupants
	}
	out := make([]uint32, len(occupants))
	for i, src := range p {
		out[i] = occupants[src]
	}
	return out
}

// Remaining returns the number of unused permutations.
func (s *Script) Remaining() int {
	return len(s.perms) - s.next
}

func isPermutation(p []int, n int) bool {
	if len(p) != n {
		return false
	}
	seen := make([]bool, n)
	for _, v := range p {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Seeded orders occupants by Stats[0] descending; ties keep slot order.
// Competitors without stats rate 0. After resolving, Stats[1] of every
// occupant is incremented as a games-played counter.
type Seeded struct{}

// Resolve orders by rating and records the game.
func (Seeded) Resolve(occupants []uint32, registry *tourney.Registry) []uint32 {
	competitors := registry.GetMany(occupants)
	order := make([]int, len(occupants))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(rating(competitors[b]), rating(competitors[a]))
	})

	out := make([]uint32, len(occupants))
	for i, src := range order {
		out[i] = occupants[src]
	}
	for _, c := range competitors {
		if c == nil {
			continue
		}
		for len(c.Stats) < 2 {
			c.Stats = append(c.Stats, 0)
		}
		c.Stats[1]++
	}
	return out
}

func rating(c *tourney.Competitor) float64 {
	if c == nil || len(c.Stats) == 0 {
		return 0
	}
	return c.Stats[0]
}
