package gpp

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/search"
	"github.com/katalvlaran/lvsearch/tabu"
)

// Walker is the bisection search state driven by search.Controller.
//
// One move is a pair of half-moves: the best admissible node is flipped into
// side 1, then the best admissible node into side 0, which restores balance.
// "Best" is the smallest Gain with uniform random tie-breaking. Every flipped
// node is tabu for floor(Tenure) iterations. The second half-move may use a
// tabu node when it yields a cut smaller than the best one (aspiration).
//
// Walker implements search.Walker, search.Restarter and search.Verifier.
type Walker struct {
	g      *graph.Graph
	n      int
	tenure int

	sol      *Solution
	best     *Solution
	lastCost int

	list *tabu.List
	rng  *rand.Rand
	ties search.Ties
}

// NewWalker validates g and the initial sides. A nil initial draws a random
// balanced bisection.
//
// Errors: ErrNilGraph, ErrOddNodes, ErrBadSides, ErrUnbalanced, option sentinels.
func NewWalker(g *graph.Graph, initial []int, opts search.Options) (*Walker, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rng := search.NewRand(opts.Seed)
	var err error
	if initial == nil {
		if initial, err = Construct(g, rng); err != nil {
			return nil, err
		}
	}
	sol, err := NewSolution(g, initial)
	if err != nil {
		return nil, err
	}

	return &Walker{
		g:        g,
		n:        g.N(),
		tenure:   opts.FixedTenure(),
		sol:      sol,
		best:     sol.Clone(),
		lastCost: sol.Cost(),
		list:     tabu.NewList(g.N(), opts.Policy),
		rng:      rng,
	}, nil
}

// Sense implements search.Walker.
func (w *Walker) Sense() search.Sense { return search.Minimize }

// Objective returns the current cut.
func (w *Walker) Objective() float64 { return float64(w.sol.Cost()) }

// BestObjective returns the smallest cut found.
func (w *Walker) BestObjective() float64 { return float64(w.best.Cost()) }

// Solution returns the live current solution. Callers must not mutate it.
func (w *Walker) Solution() *Solution { return w.sol }

// Tabu returns the per-node tabu list.
func (w *Walker) Tabu() *tabu.List { return w.list }

// BestSides returns a copy of the best side vector.
func (w *Walker) BestSides() []int { return w.best.Sides() }

// BestCost returns the best cut.
func (w *Walker) BestCost() int { return w.best.Cost() }

// Move performs both half-moves. When the second one is blocked the first is
// undone and false is returned, so the partition never stays unbalanced.
func (w *Walker) Move(it int) (bool, error) {
	i, ok := w.pick(1, it, -1)
	if !ok {
		return false, nil
	}
	prev := w.list.Until(i)
	w.sol.Flip(i)
	w.list.Forbid(i, it, w.tenure)

	j, ok := w.pick(0, it, i)
	if !ok {
		w.sol.Flip(i)
		w.list.Set(i, prev)
		return false, nil
	}
	w.sol.Flip(j)
	w.list.Forbid(j, it, w.tenure)

	return true, nil
}

// pick returns the admissible node outside side part with the smallest gain.
// A closing pick (skip >= 0) never returns skip, the node the opening half
// just flipped, and may aspire to a new best cut.
func (w *Walker) pick(part, it, skip int) (int, bool) {
	closing := skip >= 0
	var (
		cost = w.sol.Cost()
		bc   = w.best.Cost()
		low  = 0
		gain int
	)
	w.ties.Reset()
	for i := 0; i < w.n; i++ {
		if i == skip || w.sol.Side(i) == part {
			continue
		}
		gain = w.sol.Gain(i)
		if w.ties.Len() > 0 && gain > low {
			continue
		}
		aspires := closing && cost+gain < bc
		if !w.list.Admit(i, it, w.tenure, aspires, w.rng) {
			continue
		}
		if w.ties.Len() == 0 || gain < low {
			low = gain
			w.ties.Reset()
		}
		w.ties.Add(i)
	}

	return w.ties.Pick(w.rng)
}

// Unblock clears tabu memory so the iteration can be retried.
func (w *Walker) Unblock(it int) { w.list.Clear(it) }

// Record updates the best record after a move.
func (w *Walker) Record(int) search.Progress {
	c := w.sol.Cost()
	prev := w.lastCost
	w.lastCost = c

	switch {
	case c < w.best.Cost():
		w.best.CopyFrom(w.sol)
		return search.NewBest
	case c < prev:
		return search.Improved
	default:
		return search.NoProgress
	}
}

// Intensify reverts to the best bisection and clears tabu memory.
func (w *Walker) Intensify(it int) {
	w.list.Clear(it)
	w.sol.CopyFrom(w.best)
	w.lastCost = w.sol.Cost()
}

// Diversify restarts from a perturbed copy of the best bisection (see
// Perturb) and clears tabu memory.
func (w *Walker) Diversify(it int) (search.Progress, error) {
	sides := w.best.Sides()
	Perturb(sides, w.rng)
	sol, err := NewSolution(w.g, sides)
	if err != nil {
		return search.NoProgress, fmt.Errorf("perturbed bisection: %w", err)
	}
	w.sol.CopyFrom(sol)
	w.list.Clear(it)

	return w.Record(it), nil
}

// Verify checks the incremental tables of the current and best bisections.
func (w *Walker) Verify() error {
	if !w.sol.Balanced() {
		return fmt.Errorf("current: %w", ErrUnbalanced)
	}
	if err := w.sol.Check(); err != nil {
		return fmt.Errorf("current: %w", err)
	}

	return w.best.Check()
}
