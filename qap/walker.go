package qap

import (
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/katalvlaran/lvsearch/search"
	"github.com/katalvlaran/lvsearch/tabu"
)

// DriftTolerance is the relative error Verify accepts between the
// incremental and the recomputed cost.
const DriftTolerance = 1e-9

// Walker is the QAP search state driven by search.Controller.
//
// Each move is the best admissible 2-swap. Tabu memory is kept on
// (facility, location) pairs: after facility i leaves location l it may not
// return there for floor(Tenure) iterations, unless the swap reaches a cost
// below the best one found (aspiration).
//
// Walker implements search.Walker, search.Restarter and search.Verifier.
type Walker struct {
	in     *Instance
	n      int
	ev     *Evaluator
	tenure int

	best     []int
	bestCost float64
	lastCost float64

	list *tabu.List
	rng  *rand.Rand
}

// NewWalker validates the instance and the initial permutation. A nil
// initial draws a random one.
//
// Errors: ErrInvalidInstance (nil instance), ErrBadPermutation, option sentinels.
func NewWalker(in *Instance, initial []int, opts search.Options) (*Walker, error) {
	if in == nil {
		return nil, fmt.Errorf("nil instance: %w", ErrInvalidInstance)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rng := search.NewRand(opts.Seed)
	if initial == nil {
		initial = Construct(in.n, rng)
	}
	ev, err := NewEvaluator(in, initial)
	if err != nil {
		return nil, err
	}

	return &Walker{
		in:       in,
		n:        in.n,
		ev:       ev,
		tenure:   opts.FixedTenure(),
		best:     ev.Assignment(),
		bestCost: ev.Cost(),
		lastCost: ev.Cost(),
		list:     tabu.NewList(in.n*in.n, opts.Policy),
		rng:      rng,
	}, nil
}

// Sense implements search.Walker.
func (w *Walker) Sense() search.Sense { return search.Minimize }

// Objective returns the current cost.
func (w *Walker) Objective() float64 { return w.ev.Cost() }

// BestObjective returns the best cost found.
func (w *Walker) BestObjective() float64 { return w.bestCost }

// Evaluator exposes the live evaluator. Callers must not mutate it.
func (w *Walker) Evaluator() *Evaluator { return w.ev }

// Tabu returns the tabu list; element i*n+l is the pair (facility i, location l).
func (w *Walker) Tabu() *tabu.List { return w.list }

// BestAssignment returns a copy of the best permutation found.
func (w *Walker) BestAssignment() []int { return slices.Clone(w.best) }

// BestCost returns the cost of BestAssignment.
func (w *Walker) BestCost() float64 { return w.bestCost }

// Move applies the best admissible swap; false means every swap is tabu.
// Complexity: O(n²).
func (w *Walker) Move(it int) (bool, error) {
	var (
		n            = w.n
		cur          = w.ev.Cost()
		bestMove     = math.Inf(1)
		istar, jstar = -1, -1
		mv           float64
	)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			mv = w.ev.MoveCost(i, j)
			if mv >= bestMove {
				continue
			}
			aspires := cur+mv < w.bestCost
			if !w.admit(i, w.ev.Location(j), it, aspires) || !w.admit(j, w.ev.Location(i), it, aspires) {
				continue
			}
			bestMove, istar, jstar = mv, i, j
		}
	}
	if istar < 0 {
		return false, nil
	}

	li, lj := w.ev.Location(istar), w.ev.Location(jstar)
	w.ev.Swap(istar, jstar)
	w.list.Forbid(istar*n+li, it, w.tenure)
	w.list.Forbid(jstar*n+lj, it, w.tenure)

	return true, nil
}

func (w *Walker) admit(i, loc, it int, aspires bool) bool {
	return w.list.Admit(i*w.n+loc, it, w.tenure, aspires, w.rng)
}

// Unblock clears tabu memory so the iteration can be retried.
func (w *Walker) Unblock(it int) { w.list.Clear(it) }

// Record updates the best record after a move.
func (w *Walker) Record(int) search.Progress {
	c := w.ev.Cost()
	prev := w.lastCost
	w.lastCost = c

	switch {
	case c < w.bestCost:
		copy(w.best, w.ev.perm)
		w.bestCost = c
		return search.NewBest
	case c < prev:
		return search.Improved
	default:
		return search.NoProgress
	}
}

// Intensify reverts to the best permutation and clears tabu memory.
// Complexity: O(n³).
func (w *Walker) Intensify(it int) {
	w.list.Clear(it)
	copy(w.ev.perm, w.best)
	w.ev.Recompute()
	w.lastCost = w.ev.Cost()
}

// Diversify perturbs the current permutation (see Perturb) and clears tabu memory.
// Complexity: O(n³).
func (w *Walker) Diversify(it int) (search.Progress, error) {
	perm := w.ev.Assignment()
	Perturb(perm, w.rng)
	if err := w.ev.Reset(perm); err != nil {
		return search.NoProgress, err
	}
	w.list.Clear(it)

	return w.Record(it), nil
}

// Verify checks the incremental cost and the best record against
// from-scratch evaluations.
func (w *Walker) Verify() error {
	if err := w.ev.CheckDrift(DriftTolerance); err != nil {
		return err
	}
	want := cost(w.in, w.best)
	if math.Abs(want-w.bestCost) > DriftTolerance*math.Max(1, math.Abs(want)) {
		return fmt.Errorf("best record %g, recomputed %g: %w", w.bestCost, want, ErrCostDrift)
	}

	return nil
}
