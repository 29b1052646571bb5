package queens

import (
	"context"

	"github.com/katalvlaran/lvsearch/search"
)

// Result is the outcome of TabuSearch.
type Result struct {
	// Columns is the best board found: Columns[r] is the column of row r.
	Columns    []int
	Collisions int
	Stats      search.Stats
}

// Solved reports whether no two queens attack each other.
func (r Result) Solved() bool { return r.Collisions == 0 }

// TabuSearch places n non-attacking queens, starting from initial (nil
// builds a board with Construct). The run stops as soon as a board without
// collisions is found; opts.UseTarget and opts.Target are overridden to that
// effect. Boards of size 2 and 3 have no solution and spend the budget.
//
// Errors: ErrBadSize, ErrBadPermutation, search option sentinels.
func TabuSearch(ctx context.Context, n int, initial []int, opts search.Options) (Result, error) {
	w, err := NewWalker(n, initial, opts)
	if err != nil {
		return Result{}, err
	}
	opts.UseTarget = true
	opts.Target = 0
	st, err := search.Run(ctx, w, opts)

	return Result{Columns: w.BestColumns(), Collisions: w.BestCollisions(), Stats: st}, err
}
