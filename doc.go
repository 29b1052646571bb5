// Package lvsearch is a small toolbox for tabu search on combinatorial
// problems: a generic iteration controller plus ready-made walkers for five
// classic problems.
//
// What is inside?
//
//	search/  the engine: Options, the Walker contract, the Controller state
//	         machine, stagnation-driven intensification/diversification,
//	         deterministic RNG helpers
//	tabu/    short-term memory: forbidden-until markers, hard and soft
//	         aspiration, adaptive tenures
//	graph/   immutable undirected graphs and random generators
//	matrix/  dense square matrices and their structural validators
//	ssp/     maximum stable set (oscillation between feasible and infeasible sets,
//	         plus a multistart plateau search)
//	qap/     symmetric quadratic assignment (pairwise swaps, incremental deltas)
//	gpp/     balanced graph bisection (paired flips)
//	gcp/     graph K-coloring (conflict-driven recoloring)
//	queens/  n-queens (swaps of attacked rows)
//
// Every problem package exposes a Walker that plugs into search.Controller and
// a TabuSearch convenience function returning the best record together with
// the run statistics.
//
// Quick example:
//
//	g, _ := graph.Random(100, 0.1, search.NewRand(1))
//	res, err := ssp.TabuSearch(ctx, g, nil, search.DefaultOptions())
//
// Runs are reproducible: the same instance, options and seed always yield the
// same result. The lvsearch command (cmd/lvsearch) drives each problem on
// random instances from the command line.
//
//	go install github.com/katalvlaran/lvsearch/cmd/lvsearch@latest
package lvsearch
