package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tourney/internal/bracket"
	"github.com/roach88/tourney/internal/engine"
	"github.com/roach88/tourney/internal/testutil"
	"github.com/roach88/tourney/internal/tourney"
)

// Compile-time interface checks.
var (
	_ engine.Resolver = Identity{}
	_ engine.Resolver = (*RandomSwap)(nil)
	_ engine.Resolver = (*Script)(nil)
	_ engine.Resolver = Seeded{}
)

func TestIdentity(t *testing.T) {
	assert.Equal(t, []uint32{3, 1, 2}, Identity{}.Resolve([]uint32{3, 1, 2}, nil))
}

func TestRandomSwapRejectsBadProbability(t *testing.T) {
	_, err := NewRandomSwap(1.5, 1)
	assert.Error(t, err)
	_, err = NewRandomSwap(-0.1, 1)
	assert.Error(t, err)
}

func TestRandomSwapExtremes(t *testing.T) {
	never, err := NewRandomSwap(0, 7)
	require.NoError(t, err)
	always, err := NewRandomSwap(1, 7)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		assert.Equal(t, []uint32{1, 2, 3}, never.Resolve([]uint32{1, 2, 3}, nil))
		assert.Equal(t, []uint32{2, 1, 3}, always.Resolve([]uint32{1, 2, 3}, nil))
	}
}

func TestRandomSwapIsReproducible(t *testing.T) {
	a, _ := NewRandomSwap(0.5, 42)
	b, _ := NewRandomSwap(0.5, 42)

	for i := 0; i < 50; i++ {
		in := []uint32{10, 20}
		assert.Equal(t, a.Resolve(in, nil), b.Resolve(in, nil))
	}
}

func TestRandomSwapDoesNotMutateInput(t *testing.T) {
	r, _ := NewRandomSwap(1, 0)
	in := []uint32{1, 2}
	r.Resolve(in, nil)
	assert.Equal(t, []uint32{1, 2}, in)
}

func TestScript(t *testing.T) {
	s := NewScript([]int{1, 0}, []int{0, 0}, []int{2, 0, 1})
	assert.Equal(t, 3, s.Remaining())

	assert.Equal(t, []uint32{8, 7}, s.Resolve([]uint32{7, 8}, nil))
	// Not a permutation: identity.
	assert.Equal(t, []uint32{7, 8}, s.Resolve([]uint32{7, 8}, nil))
	assert.Equal(t, []uint32{3, 1, 2}, s.Resolve([]uint32{1, 2, 3}, nil))
	assert.Equal(t, 0, s.Remaining())

	// Exhausted: identity.
	assert.Equal(t, []uint32{5, 6}, s.Resolve([]uint32{5, 6}, nil))
}

func TestSeededOrdersByRatingAndCountsGames(t *testing.T) {
	reg := tourney.NewRegistry()
	low := reg.Insert(tourney.NewCompetitor("low", 1200))
	high := reg.Insert(tourney.NewCompetitor("high", 1800, 4))
	unrated := reg.Insert(tourney.NewCompetitor("unrated"))

	out := Seeded{}.Resolve([]uint32{low, unrated, high}, reg)
	assert.Equal(t, []uint32{high, low, unrated}, out)

	h, _ := reg.Get(high)
	assert.Equal(t, []float64{1800, 5}, h.Stats)
	u, _ := reg.Get(unrated)
	assert.Equal(t, []float64{0, 1}, u.Stats)
}

func TestSeededBracketFavouriteWins(t *testing.T) {
	tr, err := bracket.SingleElimination(2)
	require.NoError(t, err)

	reg := tourney.NewRegistry()
	ids := []uint32{
		reg.Insert(tourney.NewCompetitor("d", 1000)),
		reg.Insert(tourney.NewCompetitor("a", 2000)),
		reg.Insert(tourney.NewCompetitor("c", 1200)),
		reg.Insert(tourney.NewCompetitor("b", 1500)),
	}

	in := engine.New(tr, reg, engine.WithRunIDGenerator(testutil.NewFixedRunIDGenerator("")))
	require.NoError(t, in.Initialise(ids))
	_, err = in.Run(context.Background(), Seeded{})
	require.NoError(t, err)

	p := in.Placements()
	assert.Equal(t, ids[1], p[0].Competitor, "a wins")
	assert.Equal(t, ids[3], p[1].Competitor, "b is runner-up")
	assert.Equal(t, ids[2], p[2].Competitor, "c takes bronze")

	// Everyone played twice: semi plus final or bronze.
	for _, id := range ids {
		c, _ := reg.Get(id)
		assert.Equal(t, float64(2), c.Stats[1], c.Name)
	}
}

func TestNewByKind(t *testing.T) {
	tests := []struct {
		cfg  Config
		want engine.Resolver
	}{
		{Config{}, Identity{}},
		{Config{Kind: KindIdentity}, Identity{}},
		{Config{Kind: KindSeeded}, Seeded{}},
	}
	for _, tt := range tests {
		r, err := New(tt.cfg)
		require.NoError(t, err)
		assert.Equal(t, tt.want, r)
	}

	r, err := New(Config{Kind: KindScript, Script: [][]int{{1, 0}}})
	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 1}, r.Resolve([]uint32{1, 2}, nil))

	r, err = New(Config{Kind: KindRandomSwap, SwapProb: 1, Seed: 3})
	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 1}, r.Resolve([]uint32{1, 2}, nil))
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Kind: "coin-flip"})
	assert.ErrorContains(t, err, "coin-flip")

	r, err := New(Config{Kind: KindRandomSwap, SwapProb: 2})
	assert.Error(t, err)
	assert.Nil(t, r)
}
