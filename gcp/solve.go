package gcp

import (
	"context"

	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/search"
)

// Result is the outcome of TabuSearch.
type Result struct {
	// Colors is the best coloring found.
	Colors []int
	// Conflicts counts monochromatic edges twice; 0 means Colors is proper.
	Conflicts int
	Stats     search.Stats
}

// Proper reports whether the result is a conflict-free coloring.
func (r Result) Proper() bool { return r.Conflicts == 0 }

// TabuSearch looks for a proper coloring of g with K colors, starting from
// initial (nil builds one with RSatur). The run stops as soon as a
// conflict-free coloring is found; opts.UseTarget and opts.Target are
// overridden to that effect. opts.Diversify is not supported and returns
// search.ErrNoRestarts.
//
// Errors: ErrNilGraph, ErrBadK, ErrBadColors, search option sentinels.
func TabuSearch(ctx context.Context, g *graph.Graph, k int, initial []int, opts search.Options) (Result, error) {
	w, err := NewWalker(g, k, initial, opts)
	if err != nil {
		return Result{}, err
	}
	opts.UseTarget = true
	opts.Target = 0
	st, err := search.Run(ctx, w, opts)

	return Result{Colors: w.BestColors(), Conflicts: w.BestConflicts(), Stats: st}, err
}
