package gpp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsearch/gpp"
	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/search"
)

const seedDet int64 = 5

// twoCliques joins two K4 on {0..3} and {4..7} by the single edge 3-4.
func twoCliques(t *testing.T) *graph.Graph {
	t.Helper()
	var edges [][2]int
	for _, base := range []int{0, 4} {
		for i := 0; i < 4; i++ {
			for j := i + 1; j < 4; j++ {
				edges = append(edges, [2]int{base + i, base + j})
			}
		}
	}
	edges = append(edges, [2]int{3, 4})
	g, err := graph.FromEdges(8, edges)
	require.NoError(t, err)

	return g
}

func requireBalanced(t *testing.T, sides []int) {
	t.Helper()
	ones := 0
	for _, v := range sides {
		require.Contains(t, []int{0, 1}, v)
		ones += v
	}
	require.Equal(t, len(sides)/2, ones)
}

func cut(g *graph.Graph, sides []int) int {
	c := 0
	for _, e := range g.Edges() {
		if sides[e[0]] != sides[e[1]] {
			c++
		}
	}

	return c
}

func opts(iter int) search.Options {
	o := search.DefaultOptions()
	o.MaxIterations = iter
	o.Tenure = 2
	o.Seed = seedDet

	return o
}

func TestNewSolution_Errors(t *testing.T) {
	_, err := gpp.NewSolution(nil, nil)
	assert.ErrorIs(t, err, gpp.ErrNilGraph)

	odd, err := graph.Path(3)
	require.NoError(t, err)
	_, err = gpp.NewSolution(odd, []int{0, 1, 0})
	assert.ErrorIs(t, err, gpp.ErrOddNodes)
	_, err = gpp.Construct(odd, nil)
	assert.ErrorIs(t, err, gpp.ErrOddNodes)

	g := twoCliques(t)
	_, err = gpp.NewSolution(g, []int{0, 1})
	assert.ErrorIs(t, err, gpp.ErrBadSides)
	_, err = gpp.NewSolution(g, []int{0, 1, 2, 0, 1, 0, 1, 0})
	assert.ErrorIs(t, err, gpp.ErrBadSides)
	_, err = gpp.NewSolution(g, []int{1, 1, 1, 1, 1, 0, 0, 0})
	assert.ErrorIs(t, err, gpp.ErrUnbalanced)
}

func TestSolution_FlipBookkeeping(t *testing.T) {
	g := twoCliques(t)
	s, err := gpp.NewSolution(g, []int{0, 0, 0, 0, 1, 1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Cost())
	assert.Equal(t, 3-1, s.Gain(3)) // three clique neighbors, one across
	assert.Equal(t, 3, s.Gain(0))

	assert.Equal(t, 3, s.Flip(0))
	assert.False(t, s.Balanced())
	assert.Equal(t, 4, s.Cost())
	require.NoError(t, s.Check())

	s.Flip(0)
	assert.True(t, s.Balanced())
	assert.Equal(t, 1, s.Cost())
	require.NoError(t, s.Check())
	assert.Equal(t, []int{0, 0, 0, 0, 1, 1, 1, 1}, s.Sides())
}

func TestConstructAndPerturb_Balanced(t *testing.T) {
	g, err := graph.Random(40, 0.2, search.NewRand(1))
	require.NoError(t, err)
	rng := search.NewRand(seedDet)
	sides, err := gpp.Construct(g, rng)
	require.NoError(t, err)
	requireBalanced(t, sides)

	for k := 0; k < 30; k++ {
		gpp.Perturb(sides, rng)
		requireBalanced(t, sides)
	}
}

func TestTabuSearch_TwoCliques(t *testing.T) {
	g := twoCliques(t)
	res, err := gpp.TabuSearch(context.Background(), g, nil, opts(200))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Cut)
	assert.Equal(t, res.Cut, cut(g, res.Sides))
	requireBalanced(t, res.Sides)
	for i := 1; i < 4; i++ {
		assert.Equal(t, res.Sides[0], res.Sides[i])
		assert.Equal(t, res.Sides[4], res.Sides[4+i])
	}
}

func TestTabuSearch_RandomGraph(t *testing.T) {
	g, err := graph.Random(60, 0.1, search.NewRand(3))
	require.NoError(t, err)
	initial, err := gpp.Construct(g, search.NewRand(8))
	require.NoError(t, err)

	var reported []float64
	o := opts(600)
	o.Tenure = 6
	o.Diversify = true
	o.DriftCheckEvery = 1
	o.Report = func(obj float64, _ string) { reported = append(reported, obj) }

	res, err := gpp.TabuSearch(context.Background(), g, initial, o)
	require.NoError(t, err)
	requireBalanced(t, res.Sides)
	assert.Equal(t, res.Cut, cut(g, res.Sides))
	assert.LessOrEqual(t, res.Cut, cut(g, initial))
	for k := 1; k < len(reported); k++ {
		assert.Less(t, reported[k], reported[k-1])
	}

	again, err := gpp.TabuSearch(context.Background(), g, initial, o)
	require.NoError(t, err)
	assert.Equal(t, res.Sides, again.Sides)
}

func TestWalker_HalfMoveUndoneWhenBlocked(t *testing.T) {
	g, err := graph.FromEdges(2, [][2]int{{0, 1}})
	require.NoError(t, err)
	w, err := gpp.NewWalker(g, []int{0, 1}, opts(10))
	require.NoError(t, err)
	w.Tabu().Set(1, 100)

	moved, err := w.Move(0)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, []int{0, 1}, w.Solution().Sides())
	assert.Equal(t, 0, w.Tabu().Until(0))
	require.NoError(t, w.Verify())

	w.Unblock(0)
	moved, err = w.Move(0)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []int{1, 0}, w.Solution().Sides())
}

func TestWalker_ZeroTenureNeverUndoesOpeningFlip(t *testing.T) {
	g, err := graph.FromEdges(2, [][2]int{{0, 1}})
	require.NoError(t, err)
	o := opts(10)
	o.Tenure = 0
	w, err := gpp.NewWalker(g, []int{0, 1}, o)
	require.NoError(t, err)

	want := []int{1, 0}
	for it := 0; it < 4; it++ {
		moved, err := w.Move(it)
		require.NoError(t, err)
		require.True(t, moved)
		assert.Equal(t, want, w.Solution().Sides(), "iteration %d", it)
		want[0], want[1] = want[1], want[0]
	}
}

func TestWalker_ZeroTenureMovesSwapTwoNodes(t *testing.T) {
	g := twoCliques(t)
	o := opts(50)
	o.Tenure = 0
	w, err := gpp.NewWalker(g, nil, o)
	require.NoError(t, err)

	for it := 0; it < o.MaxIterations; it++ {
		before := w.Solution().Sides()
		moved, err := w.Move(it)
		require.NoError(t, err)
		require.True(t, moved)
		w.Record(it)

		after := w.Solution().Sides()
		requireBalanced(t, after)
		changed := 0
		for i := range before {
			if before[i] != after[i] {
				changed++
			}
		}
		require.Equal(t, 2, changed, "iteration %d", it)
	}
	require.NoError(t, w.Verify())
}
