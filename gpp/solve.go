package gpp

import (
	"context"

	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/search"
)

// Result is the outcome of TabuSearch.
type Result struct {
	// Sides is the best bisection: Sides[i] is 0 or 1.
	Sides []int
	// Cut is the number of edges crossing it.
	Cut   int
	Stats search.Stats
}

// TabuSearch minimizes the cut of a balanced bisection of g, starting from
// initial (nil draws a random one).
//
// Errors: ErrNilGraph, ErrOddNodes, ErrBadSides, ErrUnbalanced, search option sentinels.
func TabuSearch(ctx context.Context, g *graph.Graph, initial []int, opts search.Options) (Result, error) {
	w, err := NewWalker(g, initial, opts)
	if err != nil {
		return Result{}, err
	}
	st, err := search.Run(ctx, w, opts)

	return Result{Sides: w.BestSides(), Cut: w.BestCost(), Stats: st}, err
}
