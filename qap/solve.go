package qap

import (
	"context"

	"github.com/katalvlaran/lvsearch/search"
)

// Result is the outcome of TabuSearch.
type Result struct {
	// Assignment is the best permutation found: Assignment[i] is the location of facility i.
	Assignment []int
	// Cost uses the doubled convention of Cost.
	Cost  float64
	Stats search.Stats
}

// TabuSearch minimizes the assignment cost of in starting from initial
// (nil draws a random permutation). With opts.DriftCheckEvery > 0 the
// incremental cost is re-derived periodically and at the end; a mismatch
// fails the run with ErrCostDrift.
//
// On cancellation the result holds the best assignment seen and the error is ctx.Err().
//
// Errors: ErrInvalidInstance, ErrBadPermutation, ErrCostDrift, search option sentinels.
func TabuSearch(ctx context.Context, in *Instance, initial []int, opts search.Options) (Result, error) {
	w, err := NewWalker(in, initial, opts)
	if err != nil {
		return Result{}, err
	}
	st, err := search.Run(ctx, w, opts)

	return Result{
		Assignment: w.BestAssignment(),
		Cost:       w.BestCost(),
		Stats:      st,
	}, err
}
