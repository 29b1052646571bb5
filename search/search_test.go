package search_test

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsearch/search"
	"github.com/katalvlaran/lvsearch/tabu"
)

func TestOptions_Validate(t *testing.T) {
	require.NoError(t, search.DefaultOptions().Validate())

	cases := []struct {
		name string
		mut  func(*search.Options)
		want error
	}{
		{"iterations", func(o *search.Options) { o.MaxIterations = -1 }, search.ErrBadIterations},
		{"tenure negative", func(o *search.Options) { o.Tenure = -0.5 }, search.ErrBadTenure},
		{"tenure NaN", func(o *search.Options) { o.Tenure = math.NaN() }, search.ErrBadTenure},
		{"tenure Inf", func(o *search.Options) { o.Tenure = math.Inf(1) }, search.ErrBadTenure},
		{"policy", func(o *search.Options) { o.Policy = tabu.Policy(9) }, search.ErrBadPolicy},
		{"time limit", func(o *search.Options) { o.TimeLimit = -1 }, search.ErrBadTimeLimit},
		{"drift check", func(o *search.Options) { o.DriftCheckEvery = -3 }, search.ErrBadDriftCheck},
		{"retries", func(o *search.Options) { o.MaxBlockedRetries = 0 }, search.ErrBadRetries},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := search.DefaultOptions()
			tc.mut(&o)
			assert.ErrorIs(t, o.Validate(), tc.want)
		})
	}

	o := search.DefaultOptions()
	o.Policy = tabu.Policy(9)
	assert.ErrorIs(t, o.Validate(), tabu.ErrBadPolicy)

	o.Tenure = 7.9
	assert.Equal(t, 7, o.FixedTenure())
}

func TestNewRand_DefaultSeed(t *testing.T) {
	a, b := search.NewRand(0), search.NewRand(search.DefaultSeed)
	for k := 0; k < 10; k++ {
		require.Equal(t, a.Int63(), b.Int63())
	}
}

func TestDeriveRand_Streams(t *testing.T) {
	a := search.DeriveRand(5, 0)
	b := search.DeriveRand(5, 1)
	c := search.DeriveRand(5, 1)
	va, vb := a.Int63(), b.Int63()
	assert.NotEqual(t, va, vb)
	assert.Equal(t, vb, c.Int63())
}

func TestPermAndShuffle(t *testing.T) {
	p := search.Perm(20, search.NewRand(3))
	sorted := slices.Clone(p)
	slices.Sort(sorted)
	for i, v := range sorted {
		require.Equal(t, i, v)
	}
	assert.Empty(t, search.Perm(-2, nil))
	assert.Equal(t, p, search.Perm(20, search.NewRand(3)))

	one := []int{4}
	search.Shuffle(one, nil)
	assert.Equal(t, []int{4}, one)
}

func TestTies(t *testing.T) {
	var ties search.Ties
	_, ok := ties.Pick(nil)
	assert.False(t, ok)

	ties.Add(7)
	v, ok := ties.Pick(nil) // single candidate: no randomness consumed
	require.True(t, ok)
	assert.Equal(t, 7, v)

	ties.Reset()
	assert.Zero(t, ties.Len())
	for _, x := range []int{1, 2, 3} {
		ties.Add(x)
	}
	rng := search.NewRand(1)
	seen := map[int]bool{}
	for k := 0; k < 100; k++ {
		v, _ = ties.Pick(rng)
		seen[v] = true
	}
	assert.Len(t, seen, 3)
}

func TestStagnation(t *testing.T) {
	s := search.NewStagnation()
	assert.Equal(t, 1, s.D())
	assert.Equal(t, search.PhaseDiversify, s.Phase())

	s.Observe(search.NoProgress)
	assert.False(t, s.Due())
	s.Observe(search.NoProgress)
	assert.True(t, s.Due())

	s.Observe(search.Improved)
	assert.Zero(t, s.Count())
	s.Force(5)
	assert.True(t, s.Due())
	s.Advance()
	assert.Equal(t, 2, s.D())
	assert.Zero(t, s.Count())
	assert.Equal(t, search.PhaseIntensify, s.Phase())
	assert.Equal(t, "intensify", s.Phase().String())

	s.Force(1)
	s.Observe(search.NewBest)
	assert.Zero(t, s.Count())
}

func TestSense(t *testing.T) {
	assert.True(t, search.Minimize.Better(1, 2))
	assert.False(t, search.Minimize.Better(2, 2))
	assert.True(t, search.Maximize.Better(3, 2))
	assert.True(t, search.Minimize.Reached(2, 2))
	assert.False(t, search.Maximize.Reached(1, 2))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "blocked", search.Blocked.String())
	assert.Equal(t, "terminated", search.Terminated.String())
	assert.Equal(t, "exhausted", search.ReasonExhausted.String())
	assert.Equal(t, "time-limit", search.ReasonTimeLimit.String())
	assert.Equal(t, "new-best", search.NewBest.String())
	assert.Equal(t, "diversify", search.PhaseDiversify.String())
}
