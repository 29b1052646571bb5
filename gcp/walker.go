package gcp

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/search"
	"github.com/katalvlaran/lvsearch/tabu"
)

// Walker is the coloring search state driven by search.Controller.
//
// Each move recolors one conflicting node with the admissible color that
// lowers the conflict count most (random tie-break). After node i leaves
// color c, the pair (i, c) is tabu for 1+floor(Tenure·U) iterations with U
// uniform in [0,1). A tabu pair is admitted when the target color is free of
// neighbors or the move reaches fewer conflicts than ever seen.
//
// Walker implements search.Walker and search.Verifier.
type Walker struct {
	g      *graph.Graph
	n, k   int
	tenure float64

	sol      *Solution
	best     *Solution
	lastConf int

	list *tabu.List
	rng  *rand.Rand
	ties search.Ties
}

// NewWalker validates g, K and the initial coloring. A nil initial is built
// with RSatur.
//
// Errors: ErrNilGraph, ErrBadK, ErrBadColors, option sentinels.
func NewWalker(g *graph.Graph, k int, initial []int, opts search.Options) (*Walker, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rng := search.NewRand(opts.Seed)
	var err error
	if initial == nil {
		if initial, err = RSatur(g, k, rng); err != nil {
			return nil, err
		}
	}
	sol, err := NewSolution(g, k, initial)
	if err != nil {
		return nil, err
	}

	return &Walker{
		g:        g,
		n:        g.N(),
		k:        k,
		tenure:   opts.Tenure,
		sol:      sol,
		best:     sol.Clone(),
		lastConf: sol.Conflicts(),
		list:     tabu.NewList(g.N()*k, opts.Policy),
		rng:      rng,
	}, nil
}

// Sense implements search.Walker.
func (w *Walker) Sense() search.Sense { return search.Minimize }

// Objective returns the current (doubled) conflict count.
func (w *Walker) Objective() float64 { return float64(w.sol.Conflicts()) }

// BestObjective returns the fewest conflicts seen.
func (w *Walker) BestObjective() float64 { return float64(w.best.Conflicts()) }

// Solution returns the live current coloring. Callers must not mutate it.
func (w *Walker) Solution() *Solution { return w.sol }

// Tabu returns the tabu list; element i*K+c is the pair (node i, color c).
func (w *Walker) Tabu() *tabu.List { return w.list }

// BestColors returns a copy of the best coloring.
func (w *Walker) BestColors() []int { return w.best.Colors() }

// BestConflicts returns the conflicts of BestColors.
func (w *Walker) BestConflicts() int { return w.best.Conflicts() }

// Move recolors one conflicting node. It returns false when no conflicting
// node has an admissible color.
// Complexity: O(n·K + deg).
func (w *Walker) Move(it int) (bool, error) {
	var (
		cur    = w.sol.Conflicts()
		bc     = w.best.Conflicts()
		scale  = 1 + int(w.tenure)
		low, d int
		e      int
	)
	w.ties.Reset()
	for i := 0; i < w.n; i++ {
		if !w.sol.Conflicting(i) {
			continue
		}
		ci := w.sol.Color(i)
		for c := 0; c < w.k; c++ {
			if c == ci {
				continue
			}
			d = w.sol.Delta(i, c)
			if w.ties.Len() > 0 && d > low {
				continue
			}
			e = i*w.k + c
			aspires := w.sol.BadDegree(i, c) == 0 || cur+d < bc
			if !w.list.Admit(e, it, scale, aspires, w.rng) {
				continue
			}
			if w.ties.Len() == 0 || d < low {
				low = d
				w.ties.Reset()
			}
			w.ties.Add(e)
		}
	}
	e, ok := w.ties.Pick(w.rng)
	if !ok {
		return false, nil
	}

	i, c := e/w.k, e%w.k
	old := w.sol.Color(i)
	w.sol.Recolor(i, c)
	w.list.Forbid(i*w.k+old, it, 1+int(w.tenure*w.rng.Float64()))

	return true, nil
}

// Unblock clears tabu memory so the iteration can be retried.
func (w *Walker) Unblock(it int) { w.list.Clear(it) }

// Record updates the best record after a move.
func (w *Walker) Record(int) search.Progress {
	c := w.sol.Conflicts()
	prev := w.lastConf
	w.lastConf = c

	switch {
	case c < w.best.Conflicts():
		w.best.CopyFrom(w.sol)
		return search.NewBest
	case c < prev:
		return search.Improved
	default:
		return search.NoProgress
	}
}

// Verify checks the bad-degree tables of the current and best colorings.
func (w *Walker) Verify() error {
	if err := w.sol.Check(); err != nil {
		return fmt.Errorf("current: %w", err)
	}

	return w.best.Check()
}
