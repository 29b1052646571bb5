// Package search is the generic local-search engine shared by every problem
// package in this module.
//
// A problem package supplies a Walker (solution representation, incremental
// evaluator, neighborhood and tabu memory) and calls Run:
//
//	w, err := ssp.NewWalker(g, nil, opts)    // Constructing
//	stats, err := search.Run(ctx, w, opts)   // Searching / Blocked / Terminated
//
// The engine owns everything that is not problem specific:
//
//	options.go     - Options, DefaultOptions, validation sentinels, Reporter
//	walker.go      - Walker/Restarter/Verifier contracts, Progress, Sense, State, Reason
//	controller.go  - iteration loop, blocked recovery, reporting, time limits
//	stagnation.go  - self-tuning intensification/diversification manager
//	rng.go         - deterministic RNG factory and tie-breaking helper
//
// Determinism: a run draws every random choice from one *rand.Rand created
// by NewRand(opts.Seed); identical inputs and seed give identical moves.
//
// Concurrency: a run owns its Walker, tabu list and RNG exclusively. Separate
// runs may execute on separate goroutines as long as they share no Walker.
package search
