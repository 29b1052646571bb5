package ssp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/search"
	"github.com/katalvlaran/lvsearch/ssp"
	"github.com/katalvlaran/lvsearch/tabu"
)

const seedDet int64 = 42

func pathGraph(t *testing.T, n int) *graph.Graph {
	t.Helper()
	g, err := graph.Path(n)
	require.NoError(t, err)

	return g
}

func randomGraph(t *testing.T, n int, p float64, seed int64) *graph.Graph {
	t.Helper()
	g, err := graph.Random(n, p, search.NewRand(seed))
	require.NoError(t, err)

	return g
}

// requireStable fails unless nodes is a stable set of g.
func requireStable(t *testing.T, g *graph.Graph, nodes []int) {
	t.Helper()
	for a := 0; a < len(nodes); a++ {
		for b := a + 1; b < len(nodes); b++ {
			require.Falsef(t, g.HasEdge(nodes[a], nodes[b]), "edge %d-%d inside set %v", nodes[a], nodes[b], nodes)
		}
	}
}

// requireMaximal fails unless no node can be added to the stable set nodes.
func requireMaximal(t *testing.T, g *graph.Graph, nodes []int) {
	t.Helper()
	in := make(map[int]bool, len(nodes))
	for _, i := range nodes {
		in[i] = true
	}
outer:
	for i := 0; i < g.N(); i++ {
		if in[i] {
			continue
		}
		for _, j := range g.Neighbors(i) {
			if in[j] {
				continue outer
			}
		}
		t.Fatalf("node %d can extend %v", i, nodes)
	}
}

func opts(iter int) search.Options {
	o := search.DefaultOptions()
	o.MaxIterations = iter
	o.Seed = seedDet

	return o
}

func TestSolution_Errors(t *testing.T) {
	_, err := ssp.NewSolution(nil, nil)
	assert.ErrorIs(t, err, ssp.ErrNilGraph)

	g := pathGraph(t, 4)
	_, err = ssp.NewSolution(g, []int{4})
	assert.ErrorIs(t, err, ssp.ErrBadNode)
	_, err = ssp.NewSolution(g, []int{-1})
	assert.ErrorIs(t, err, ssp.ErrBadNode)
	_, err = ssp.NewSolution(g, []int{1, 1})
	assert.ErrorIs(t, err, ssp.ErrBadNode)
}

func TestSolution_Bookkeeping(t *testing.T) {
	g := pathGraph(t, 4) // 0-1-2-3
	s, err := ssp.NewSolution(g, []int{0, 1, 2})
	require.NoError(t, err)

	assert.Equal(t, 3, s.Cardinality())
	assert.Equal(t, 2, s.Infeasibility())
	assert.False(t, s.Feasible())
	assert.Equal(t, []int{1, 2, 1, 1}, []int{s.Conflicts(0), s.Conflicts(1), s.Conflicts(2), s.Conflicts(3)})
	assert.Equal(t, 2, s.EvaluateDrop(1))
	assert.Equal(t, 1, s.EvaluateAdd(3))
	require.NoError(t, s.Check())

	assert.Equal(t, -2, s.ApplyDrop(1))
	assert.True(t, s.Feasible())
	assert.Equal(t, []int{0, 2}, s.Nodes())
	require.NoError(t, s.Check())

	// no-ops
	assert.Equal(t, 0, s.ApplyAdd(0))
	assert.Equal(t, 0, s.ApplyDrop(3))
	assert.Equal(t, 2, s.Cardinality())
}

func TestSolution_AddDropRoundTrip(t *testing.T) {
	g := randomGraph(t, 40, 0.2, 7)
	rng := search.NewRand(3)
	s, err := ssp.NewSolution(g, []int{1, 5, 9, 13})
	require.NoError(t, err)

	for k := 0; k < 200; k++ {
		i := rng.Intn(g.N())
		before := s.Clone()
		if s.Contains(i) {
			d := s.ApplyDrop(i)
			assert.Equal(t, -before.Conflicts(i), d)
			s.ApplyAdd(i)
		} else {
			d := s.ApplyAdd(i)
			assert.Equal(t, before.EvaluateAdd(i), d)
			s.ApplyDrop(i)
		}
		require.Equal(t, before.Nodes(), s.Nodes())
		require.Equal(t, before.Infeasibility(), s.Infeasibility())
		for j := 0; j < g.N(); j++ {
			require.Equal(t, before.Conflicts(j), s.Conflicts(j))
		}
		// walk somewhere else for the next round
		if rng.Intn(2) == 0 {
			s.ApplyAdd(i)
		} else {
			s.ApplyDrop(i)
		}
		require.NoError(t, s.Check())
	}
}

func TestSolution_CloneIsDeep(t *testing.T) {
	g := pathGraph(t, 5)
	s, err := ssp.NewSolution(g, []int{0, 2})
	require.NoError(t, err)
	c := s.Clone()
	s.ApplyAdd(4)
	assert.Equal(t, []int{0, 2}, c.Nodes())
	assert.Equal(t, 1, c.Conflicts(3))
	assert.Equal(t, 2, s.Conflicts(3))
}

func TestConstruct_Maximal(t *testing.T) {
	g := randomGraph(t, 80, 0.1, 11)
	nodes, err := ssp.Construct(g, search.NewRand(seedDet))
	require.NoError(t, err)
	requireStable(t, g, nodes)
	requireMaximal(t, g, nodes)

	again, err := ssp.Construct(g, search.NewRand(seedDet))
	require.NoError(t, err)
	assert.Equal(t, nodes, again, "same seed, same construction")
}

func TestConstructFrom(t *testing.T) {
	g := randomGraph(t, 50, 0.15, 5)
	nodes, err := ssp.ConstructFrom(g, 17, search.NewRand(seedDet))
	require.NoError(t, err)
	assert.Contains(t, nodes, 17)
	requireStable(t, g, nodes)
	requireMaximal(t, g, nodes)

	_, err = ssp.ConstructFrom(g, 50, nil)
	assert.ErrorIs(t, err, ssp.ErrBadNode)
	_, err = ssp.Construct(nil, nil)
	assert.ErrorIs(t, err, ssp.ErrNilGraph)
}

func TestTabuSearch_PathOfFour(t *testing.T) {
	g := pathGraph(t, 4)
	o := opts(20)
	o.Tenure = 2

	res, err := ssp.TabuSearch(context.Background(), g, nil, o)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Cardinality)
	assert.Len(t, res.Nodes, 2)
	requireStable(t, g, res.Nodes)
	assert.Equal(t, search.ReasonBudget, res.Stats.Reason)
	assert.Equal(t, search.Terminated, res.Stats.State)
}

func TestTabuSearch_RejectsInfeasibleStart(t *testing.T) {
	g := pathGraph(t, 4)
	_, err := ssp.TabuSearch(context.Background(), g, []int{0, 1}, opts(10))
	assert.ErrorIs(t, err, ssp.ErrInfeasibleStart)

	_, err = ssp.TabuSearch(context.Background(), nil, nil, opts(10))
	assert.ErrorIs(t, err, ssp.ErrNilGraph)

	bad := opts(10)
	bad.MaxIterations = -1
	_, err = ssp.TabuSearch(context.Background(), g, nil, bad)
	assert.ErrorIs(t, err, search.ErrBadIterations)
}

func TestTabuSearch_ZeroIterationsReturnsInitial(t *testing.T) {
	g := pathGraph(t, 6)
	res, err := ssp.TabuSearch(context.Background(), g, []int{0, 3}, opts(0))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3}, res.Nodes)
	assert.Equal(t, 0, res.Stats.Iterations)
}

func TestTabuSearch_CompleteAndEmpty(t *testing.T) {
	k, err := graph.Complete(7)
	require.NoError(t, err)
	res, err := ssp.TabuSearch(context.Background(), k, nil, opts(50))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Cardinality)

	// An edgeless graph is solved by construction; every later iteration has
	// no candidate, so the run ends as exhausted rather than with an error.
	e, err := graph.FromEdges(5, nil)
	require.NoError(t, err)
	res, err = ssp.TabuSearch(context.Background(), e, nil, opts(50))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Cardinality)
	assert.Equal(t, search.ReasonExhausted, res.Stats.Reason)
	assert.Equal(t, search.DefaultMaxBlockedRetries+1, res.Stats.Blocked)
}

func TestTabuSearch_RandomGraphInvariants(t *testing.T) {
	g := randomGraph(t, 120, 0.08, 99)
	initial, err := ssp.Construct(g, search.NewRand(1))
	require.NoError(t, err)

	var reported []float64
	o := opts(3000)
	o.Diversify = true
	o.DriftCheckEvery = 1
	o.Report = func(obj float64, _ string) { reported = append(reported, obj) }

	res, err := ssp.TabuSearch(context.Background(), g, initial, o)
	require.NoError(t, err)
	requireStable(t, g, res.Nodes)
	assert.Equal(t, len(res.Nodes), res.Cardinality)
	assert.GreaterOrEqual(t, res.Cardinality, len(initial))
	assert.Equal(t, float64(res.Cardinality), res.Stats.Best)
	assert.Equal(t, len(reported), res.Stats.Improvements)
	for k := 1; k < len(reported); k++ {
		assert.Greater(t, reported[k], reported[k-1], "reported bests must strictly improve")
	}
	assert.Positive(t, res.Stats.Intensifications+res.Stats.Diversifications)
}

func TestTabuSearch_Deterministic(t *testing.T) {
	g := randomGraph(t, 90, 0.1, 4)
	run := func() (ssp.Result, []report) {
		o := opts(1500)
		o.Diversify = true
		reported := recordReports(&o)
		res, err := ssp.TabuSearch(context.Background(), g, nil, o)
		require.NoError(t, err)
		return res, *reported
	}
	a, ra := run()
	b, rb := run()
	require.NotEmpty(t, ra)
	assert.Equal(t, ra, rb, "same seed must report the same bests at the same iterations")
	assert.Equal(t, a.Nodes, b.Nodes)
	assert.Equal(t, a.Stats.Iterations, b.Stats.Iterations)
	assert.Equal(t, a.Stats.Improvements, b.Stats.Improvements)
	assert.Equal(t, a.Stats.Tolerance, b.Stats.Tolerance)
}

func TestController_StepsInLockstep(t *testing.T) {
	g := randomGraph(t, 50, 0.15, 11)
	o := opts(400)
	o.Diversify = true

	controller := func() (*search.Controller, *ssp.Walker) {
		w, err := ssp.NewWalker(g, nil, o)
		require.NoError(t, err)
		c, err := search.NewController(w, o)
		require.NoError(t, err)
		return c, w
	}
	ca, wa := controller()
	cb, wb := controller()
	for step := 0; ; step++ {
		doneA, err := ca.Step()
		require.NoError(t, err)
		doneB, err := cb.Step()
		require.NoError(t, err)
		require.Equal(t, doneA, doneB, "step %d", step)
		require.Equal(t, wa.Objective(), wb.Objective(), "step %d", step)
		require.Equal(t, wa.BestObjective(), wb.BestObjective(), "step %d", step)
		if doneA {
			break
		}
	}
	assert.Equal(t, ca.Stats().Spent, cb.Stats().Spent)
}

func TestTabuSearch_SoftPolicy(t *testing.T) {
	g := randomGraph(t, 60, 0.12, 8)
	o := opts(800)
	o.Policy = tabu.Soft
	o.DriftCheckEvery = 50

	res, err := ssp.TabuSearch(context.Background(), g, nil, o)
	require.NoError(t, err)
	requireStable(t, g, res.Nodes)
}

func TestTabuSearch_CanceledKeepsBest(t *testing.T) {
	g := randomGraph(t, 30, 0.2, 2)
	initial, err := ssp.Construct(g, search.NewRand(9))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := ssp.TabuSearch(ctx, g, initial, opts(100))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, initial, res.Nodes)
	assert.Equal(t, search.ReasonCanceled, res.Stats.Reason)
}

func TestWalker_BlockedRecovery(t *testing.T) {
	g := pathGraph(t, 4)
	o := opts(20)
	w, err := ssp.NewWalker(g, []int{0, 2}, o)
	require.NoError(t, err)
	for e := 0; e < g.N(); e++ {
		w.Tabu().Set(e, o.MaxIterations+100)
	}

	c, err := search.NewController(w, o)
	require.NoError(t, err)

	done, err := c.Step()
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, 1, c.Stats().Blocked)
	assert.Equal(t, 1, c.Stats().Saturated, "every node was forbidden")
	assert.Equal(t, search.Blocked, c.Stats().State)
	assert.Equal(t, 0, c.Iteration(), "a blocked retry keeps the iteration number")
	for e := 0; e < g.N(); e++ {
		assert.False(t, w.Tabu().Tabu(e, 0))
	}

	st, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, search.ReasonBudget, st.Reason)
	assert.Equal(t, o.MaxIterations, st.Spent)
	assert.Equal(t, st.Spent-st.Blocked, st.Iterations)
	assert.Positive(t, st.Iterations)
	assert.Equal(t, 2, w.BestCardinality())
}

func TestWalker_DiversifyThenIntensify(t *testing.T) {
	g := pathGraph(t, 4)
	o := opts(100)
	o.Diversify = true
	w, err := ssp.NewWalker(g, []int{0, 2}, o)
	require.NoError(t, err)
	c, err := search.NewController(w, o)
	require.NoError(t, err)
	stag := c.Stagnation()
	require.NotNil(t, stag)
	require.Equal(t, 1, stag.D())

	// D=1 is odd: the next stagnant step rebuilds from the least used node.
	stag.Force(5)
	_, err = c.Step()
	require.NoError(t, err)
	assert.Equal(t, 2, stag.D())
	assert.Equal(t, 0, stag.Count())
	assert.Equal(t, 1, c.Stats().Diversifications)
	cur := w.Solution()
	assert.True(t, cur.Feasible())
	assert.True(t, cur.Contains(1), "seed is the only node outside {0,2,3}")
	requireMaximal(t, g, cur.Nodes())
	for e := 0; e < g.N(); e++ {
		assert.False(t, w.Tabu().Tabu(e, 0))
	}

	// D=2 is even: the next stagnant step reverts to the best record.
	stag.Force(5)
	_, err = c.Step()
	require.NoError(t, err)
	assert.Equal(t, 3, stag.D())
	assert.Equal(t, 1, c.Stats().Intensifications)
	assert.Equal(t, w.BestNodes(), w.Solution().Nodes())
	for e := 0; e < g.N(); e++ {
		assert.False(t, w.Tabu().Tabu(e, 1))
	}
	require.NoError(t, w.Verify())
}

func TestWalker_UsageCountsImprovingSolutions(t *testing.T) {
	g := pathGraph(t, 4)
	w, err := ssp.NewWalker(g, []int{0, 2}, opts(10))
	require.NoError(t, err)
	assert.Equal(t, 1, w.Usage(0))
	assert.Equal(t, 0, w.Usage(1))
	assert.Equal(t, 1, w.Usage(2))
	assert.Equal(t, 0, w.Usage(3))
}
