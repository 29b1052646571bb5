package gcp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsearch/gcp"
	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/search"
)

const seedDet int64 = 3

func opts(iter int) search.Options {
	o := search.DefaultOptions()
	o.MaxIterations = iter
	o.Tenure = 3
	o.Seed = seedDet

	return o
}

// conflicts counts monochromatic edges twice.
func conflicts(g *graph.Graph, colors []int) int {
	c := 0
	for _, e := range g.Edges() {
		if colors[e[0]] == colors[e[1]] {
			c += 2
		}
	}

	return c
}

func TestNewSolution_Errors(t *testing.T) {
	_, err := gcp.NewSolution(nil, 2, nil)
	assert.ErrorIs(t, err, gcp.ErrNilGraph)

	g, err := graph.Path(3)
	require.NoError(t, err)
	_, err = gcp.NewSolution(g, 0, []int{0, 0, 0})
	assert.ErrorIs(t, err, gcp.ErrBadK)
	_, err = gcp.NewSolution(g, 2, []int{0, 1})
	assert.ErrorIs(t, err, gcp.ErrBadColors)
	_, err = gcp.NewSolution(g, 2, []int{0, 2, 1})
	assert.ErrorIs(t, err, gcp.ErrBadColors)
}

func TestSolution_Recolor(t *testing.T) {
	g, err := graph.Complete(3)
	require.NoError(t, err)
	s, err := gcp.NewSolution(g, 2, []int{0, 0, 1})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Conflicts())
	assert.True(t, s.Conflicting(0))
	assert.False(t, s.Conflicting(2))
	assert.Equal(t, 1, s.BadDegree(0, 0))
	assert.Equal(t, 1, s.BadDegree(0, 1))
	assert.Equal(t, 0, s.Delta(0, 1))

	assert.Equal(t, 0, s.Recolor(1, 1))
	assert.Equal(t, []int{0, 1, 1}, s.Colors())
	assert.Equal(t, 2, s.Conflicts())
	require.NoError(t, s.Check())

	assert.Equal(t, 0, s.Recolor(1, 1), "same color is a no-op")
}

func TestRSatur(t *testing.T) {
	c6, err := graph.Cycle(6)
	require.NoError(t, err)
	colors, err := gcp.RSatur(c6, 2, search.NewRand(seedDet))
	require.NoError(t, err)
	assert.Zero(t, conflicts(c6, colors), "bipartite graphs are colored exactly")

	k5, err := graph.Complete(5)
	require.NoError(t, err)
	colors, err = gcp.RSatur(k5, 5, search.NewRand(seedDet))
	require.NoError(t, err)
	assert.Zero(t, conflicts(k5, colors))
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, colors)

	_, err = gcp.RSatur(k5, 0, nil)
	assert.ErrorIs(t, err, gcp.ErrBadK)
	_, err = gcp.RSatur(nil, 2, nil)
	assert.ErrorIs(t, err, gcp.ErrNilGraph)
}

func TestRandomColoring(t *testing.T) {
	colors, err := gcp.RandomColoring(50, 4, search.NewRand(1))
	require.NoError(t, err)
	require.Len(t, colors, 50)
	for _, c := range colors {
		assert.True(t, c >= 0 && c < 4)
	}
	_, err = gcp.RandomColoring(5, 0, nil)
	assert.ErrorIs(t, err, gcp.ErrBadK)
}

func TestTabuSearch_FindsProperColoring(t *testing.T) {
	g, err := graph.Random(30, 0.2, search.NewRand(12))
	require.NoError(t, err)
	initial, err := gcp.RandomColoring(30, 6, search.NewRand(4))
	require.NoError(t, err)

	o := opts(2000)
	o.DriftCheckEvery = 1
	res, err := gcp.TabuSearch(context.Background(), g, 6, initial, o)
	require.NoError(t, err)
	assert.True(t, res.Proper())
	assert.Zero(t, conflicts(g, res.Colors))
	assert.Equal(t, search.ReasonTarget, res.Stats.Reason)
}

func TestTabuSearch_OddCycleWithTwoColors(t *testing.T) {
	c5, err := graph.Cycle(5)
	require.NoError(t, err)
	o := opts(200)
	o.DriftCheckEvery = 10

	res, err := gcp.TabuSearch(context.Background(), c5, 2, nil, o)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Conflicts)
	assert.Equal(t, res.Conflicts, conflicts(c5, res.Colors))
	assert.False(t, res.Proper())
}

func TestTabuSearch_ProperStartStopsAtOnce(t *testing.T) {
	c6, err := graph.Cycle(6)
	require.NoError(t, err)
	res, err := gcp.TabuSearch(context.Background(), c6, 2, []int{0, 1, 0, 1, 0, 1}, opts(100))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Stats.Iterations)
	assert.Equal(t, search.ReasonTarget, res.Stats.Reason)
}

func TestTabuSearch_Deterministic(t *testing.T) {
	g, err := graph.Random(40, 0.3, search.NewRand(2))
	require.NoError(t, err)
	a, err := gcp.TabuSearch(context.Background(), g, 4, nil, opts(500))
	require.NoError(t, err)
	b, err := gcp.TabuSearch(context.Background(), g, 4, nil, opts(500))
	require.NoError(t, err)
	assert.Equal(t, a.Colors, b.Colors)
	assert.Equal(t, a.Stats.Iterations, b.Stats.Iterations)
}

func TestTabuSearch_NoDiversification(t *testing.T) {
	g, err := graph.Cycle(5)
	require.NoError(t, err)
	o := opts(10)
	o.Diversify = true
	_, err = gcp.TabuSearch(context.Background(), g, 2, nil, o)
	assert.ErrorIs(t, err, search.ErrNoRestarts)
}

func TestTabuSearch_SingleColorExhausts(t *testing.T) {
	g, err := graph.Path(3)
	require.NoError(t, err)
	res, err := gcp.TabuSearch(context.Background(), g, 1, nil, opts(50))
	require.NoError(t, err)
	assert.Equal(t, search.ReasonExhausted, res.Stats.Reason)
	assert.Equal(t, 4, res.Conflicts)
}
