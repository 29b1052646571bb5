package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/search"
)

func TestFromEdges(t *testing.T) {
	g, err := graph.FromEdges(4, [][2]int{{1, 0}, {1, 2}, {0, 1}, {3, 2}})
	require.NoError(t, err)
	assert.Equal(t, 4, g.N())
	assert.Equal(t, 3, g.EdgeCount(), "duplicates collapse")
	assert.Equal(t, []int{0, 2}, g.Neighbors(1))
	assert.Equal(t, 2, g.Degree(2))
	assert.True(t, g.HasEdge(2, 3))
	assert.True(t, g.HasEdge(3, 2))
	assert.False(t, g.HasEdge(0, 3))
	assert.False(t, g.HasEdge(0, 9))
	assert.Nil(t, g.Neighbors(-1))
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {2, 3}}, g.Edges())
}

func TestFromEdges_Errors(t *testing.T) {
	cases := []struct {
		name  string
		n     int
		edges [][2]int
		cause error
	}{
		{"negative", -1, nil, graph.ErrNegativeSize},
		{"range", 3, [][2]int{{0, 3}}, graph.ErrNodeOutOfRange},
		{"negative node", 3, [][2]int{{-1, 0}}, graph.ErrNodeOutOfRange},
		{"loop", 3, [][2]int{{1, 1}}, graph.ErrSelfLoop},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := graph.FromEdges(tc.n, tc.edges)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, tc.cause)
			assert.ErrorIs(t, err, graph.ErrInvalidInstance)
		})
	}
}

func TestFromAdjacency(t *testing.T) {
	g, err := graph.FromAdjacency([][]int{{2, 1, 1}, {0}, {0}})
	require.NoError(t, err)
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, []int{1, 2}, g.Neighbors(0))

	_, err = graph.FromAdjacency([][]int{{1}, {}})
	assert.ErrorIs(t, err, graph.ErrAsymmetric)
	_, err = graph.FromAdjacency([][]int{{0}})
	assert.ErrorIs(t, err, graph.ErrSelfLoop)
	_, err = graph.FromAdjacency([][]int{{5}})
	assert.ErrorIs(t, err, graph.ErrNodeOutOfRange)
}

func TestFromAdjacency_CopiesInput(t *testing.T) {
	adj := [][]int{{1}, {0}}
	g, err := graph.FromAdjacency(adj)
	require.NoError(t, err)
	adj[0][0] = 0
	assert.Equal(t, []int{1}, g.Neighbors(0))
}

func TestGenerators(t *testing.T) {
	p, err := graph.Path(5)
	require.NoError(t, err)
	assert.Equal(t, 4, p.EdgeCount())

	c, err := graph.Cycle(5)
	require.NoError(t, err)
	assert.Equal(t, 5, c.EdgeCount())
	assert.True(t, c.HasEdge(4, 0))
	_, err = graph.Cycle(2)
	assert.ErrorIs(t, err, graph.ErrTooFewNodes)

	k, err := graph.Complete(6)
	require.NoError(t, err)
	assert.Equal(t, 15, k.EdgeCount())

	empty, err := graph.Random(6, 0, nil)
	require.NoError(t, err)
	assert.Zero(t, empty.EdgeCount())

	_, err = graph.Random(4, 1.5, nil)
	assert.ErrorIs(t, err, graph.ErrInvalidProbability)
	_, err = graph.Random(4, 0.5, nil)
	assert.ErrorIs(t, err, graph.ErrNeedRandSource)
	_, err = graph.Path(-1)
	assert.ErrorIs(t, err, graph.ErrNegativeSize)
}

func TestRandom_Deterministic(t *testing.T) {
	a, err := graph.Random(50, 0.3, search.NewRand(9))
	require.NoError(t, err)
	b, err := graph.Random(50, 0.3, search.NewRand(9))
	require.NoError(t, err)
	assert.Equal(t, a.Edges(), b.Edges())
	assert.Greater(t, a.EdgeCount(), 0)
	assert.Less(t, a.EdgeCount(), 50*49/2)
}

func TestComplement(t *testing.T) {
	g, err := graph.Random(20, 0.4, search.NewRand(2))
	require.NoError(t, err)
	c, err := graph.Complement(g)
	require.NoError(t, err)
	assert.Equal(t, 20*19/2, g.EdgeCount()+c.EdgeCount())
	for i := 0; i < 20; i++ {
		for j := 0; j < 20; j++ {
			if i != j {
				assert.NotEqual(t, g.HasEdge(i, j), c.HasEdge(i, j))
			}
		}
	}
	cc, err := graph.Complement(c)
	require.NoError(t, err)
	assert.Equal(t, g.Edges(), cc.Edges())

	_, err = graph.Complement(nil)
	assert.ErrorIs(t, err, graph.ErrInvalidInstance)
}
