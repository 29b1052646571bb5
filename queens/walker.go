package queens

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/lvsearch/search"
	"github.com/katalvlaran/lvsearch/tabu"
)

// Walker is the n-queens search state driven by search.Controller.
//
// Each move exchanges the columns of an attacked row i and any other row j,
// choosing the pair with the smallest SwapDelta (random tie-break). Both
// rows then stay tabu for floor(Tenure) iterations. A pair with a tabu row
// is still admitted when the swap reaches fewer collisions than ever seen.
//
// Move blocks on a board without collisions, so runs should stop at the
// target 0 (TabuSearch does).
//
// Walker implements search.Walker, search.Restarter and search.Verifier.
type Walker struct {
	n      int
	tenure int

	sol       *Solution
	best      *Solution
	lastColls int

	list *tabu.List
	rng  *rand.Rand
	ties search.Ties
}

// NewWalker validates the initial board and the options. A nil initial is
// built with Construct.
//
// Errors: ErrBadSize, ErrBadPermutation, option sentinels.
func NewWalker(n int, initial []int, opts search.Options) (*Walker, error) {
	if n < 1 {
		return nil, ErrBadSize
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rng := search.NewRand(opts.Seed)
	var err error
	if initial == nil {
		if initial, err = Construct(n, rng); err != nil {
			return nil, err
		}
	}
	if len(initial) != n {
		return nil, fmt.Errorf("len=%d, n=%d: %w", len(initial), n, ErrBadPermutation)
	}
	sol, err := NewSolution(initial)
	if err != nil {
		return nil, err
	}

	return &Walker{
		n:         n,
		tenure:    opts.FixedTenure(),
		sol:       sol,
		best:      sol.Clone(),
		lastColls: sol.Collisions(),
		list:      tabu.NewList(n, opts.Policy),
		rng:       rng,
	}, nil
}

// Sense implements search.Walker.
func (w *Walker) Sense() search.Sense { return search.Minimize }

// Objective returns the current number of collisions.
func (w *Walker) Objective() float64 { return float64(w.sol.Collisions()) }

// BestObjective returns the fewest collisions seen.
func (w *Walker) BestObjective() float64 { return float64(w.best.Collisions()) }

// Solution returns the live current board. Callers must not mutate it.
func (w *Walker) Solution() *Solution { return w.sol }

// Tabu returns the tabu list over rows.
func (w *Walker) Tabu() *tabu.List { return w.list }

// BestColumns returns a copy of the best board.
func (w *Walker) BestColumns() []int { return w.best.Columns() }

// BestCollisions returns the collisions of the best board.
func (w *Walker) BestCollisions() int { return w.best.Collisions() }

// Move applies the best admissible swap.
func (w *Walker) Move(it int) (bool, error) {
	var (
		colls = w.sol.Collisions()
		bc    = w.best.Collisions()
		low   = math.MaxInt
		delta int
	)
	w.ties.Reset()
	for i := 0; i < w.n; i++ {
		if !w.sol.Attacked(i) {
			continue
		}
		for j := 0; j < w.n; j++ {
			// pairs of two attacked rows are scanned once
			if j == i || (j < i && w.sol.Attacked(j)) {
				continue
			}
			delta = w.sol.SwapDelta(i, j)
			if delta > low {
				continue
			}
			if !w.admit(i, j, it, colls+delta < bc) {
				continue
			}
			if delta < low {
				low = delta
				w.ties.Reset()
			}
			w.ties.Add(i*w.n + j)
		}
	}

	p, ok := w.ties.Pick(w.rng)
	if !ok {
		return false, nil
	}
	i, j := p/w.n, p%w.n
	w.sol.Swap(i, j)
	w.list.Forbid(i, it, w.tenure)
	w.list.Forbid(j, it, w.tenure)

	return true, nil
}

func (w *Walker) admit(i, j, it int, aspires bool) bool {
	return w.list.Admit(i, it, w.tenure, aspires, w.rng) && w.list.Admit(j, it, w.tenure, aspires, w.rng)
}

// Unblock clears tabu memory so the iteration can be retried.
func (w *Walker) Unblock(it int) { w.list.Clear(it) }

// Record updates the best record after a move.
func (w *Walker) Record(int) search.Progress {
	c := w.sol.Collisions()
	prev := w.lastColls
	w.lastColls = c

	switch {
	case c < w.best.Collisions():
		w.best.CopyFrom(w.sol)
		return search.NewBest
	case c < prev:
		return search.Improved
	default:
		return search.NoProgress
	}
}

// Intensify reverts to the best board and clears tabu memory.
func (w *Walker) Intensify(it int) {
	w.list.Clear(it)
	w.sol.CopyFrom(w.best)
	w.lastColls = w.sol.Collisions()
}

// Diversify places a fresh board with Construct and clears tabu memory.
func (w *Walker) Diversify(it int) (search.Progress, error) {
	cols, err := Construct(w.n, w.rng)
	if err != nil {
		return search.NoProgress, err
	}
	sol, err := NewSolution(cols)
	if err != nil {
		return search.NoProgress, fmt.Errorf("rebuilt board: %w", err)
	}
	w.sol.CopyFrom(sol)
	w.list.Clear(it)

	return w.Record(it), nil
}

// Verify checks the diagonal counters of the current and best boards.
func (w *Walker) Verify() error {
	if err := w.sol.Check(); err != nil {
		return fmt.Errorf("current: %w", err)
	}
	if err := w.best.Check(); err != nil {
		return fmt.Errorf("best: %w", err)
	}

	return nil
}
