package ssp

import (
	"context"

	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/search"
)

// Result is the outcome of TabuSearch.
type Result struct {
	// Nodes is the best stable set found, sorted ascending.
	Nodes       []int
	Cardinality int
	Stats       search.Stats
}

// TabuSearch runs the oscillating tabu search for a maximum stable set of g.
//
// initial must be a stable set; nil builds a random maximal one. The result
// always holds the best stable set seen, also when ctx is canceled (the
// error is then ctx.Err()).
//
// Errors: ErrNilGraph, ErrBadNode, ErrInfeasibleStart, search option sentinels.
func TabuSearch(ctx context.Context, g *graph.Graph, initial []int, opts search.Options) (Result, error) {
	w, err := NewWalker(g, initial, opts)
	if err != nil {
		return Result{}, err
	}
	st, err := search.Run(ctx, w, opts)

	return Result{
		Nodes:       w.BestNodes(),
		Cardinality: w.BestCardinality(),
		Stats:       st,
	}, err
}
