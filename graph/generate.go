// SPDX-License-Identifier: MIT
// Package: lvsearch/graph
//
// generate.go - synthetic instance generators.
//
// Determinism:
//   - Random trials run in fixed order (i asc, j asc with j>i), so a fixed
//     seed always yields the same graph.
//   - Path/Cycle/Complete never touch an RNG.

package graph

import (
	"fmt"
	"math/rand"
)

const (
	methodRandom     = "Random"
	methodPath       = "Path"
	methodCycle      = "Cycle"
	methodComplete   = "Complete"
	methodComplement = "Complement"
	minCycleNodes    = 3
)

// Random samples a G(n,p) graph: every unordered pair becomes an edge with
// independent probability p.
//
// Errors: ErrNegativeSize, ErrInvalidProbability, ErrNeedRandSource
// (rng is required for 0<p<1).
//
// Complexity: O(n²) Bernoulli trials.
func Random(n int, p float64, rng *rand.Rand) (*Graph, error) {
	if n < 0 {
		return nil, invalidf(methodRandom, ErrNegativeSize, "n=%d", n)
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("%s: p=%.6f not in [0,1]: %w", methodRandom, p, ErrInvalidProbability)
	}
	if rng == nil && p > 0 && p < 1 {
		return nil, fmt.Errorf("%s: %w", methodRandom, ErrNeedRandSource)
	}

	adj := make([][]int, n)
	var i, j int
	for i = 0; i < n-1; i++ {
		for j = i + 1; j < n; j++ {
			if p == 1 || (p > 0 && rng.Float64() < p) {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		}
	}

	return finalize(n, adj), nil
}

// Path returns the path 0-1-...-(n-1).
func Path(n int) (*Graph, error) {
	if n < 0 {
		return nil, invalidf(methodPath, ErrNegativeSize, "n=%d", n)
	}
	edges := make([][2]int, 0, max(n-1, 0))
	for i := 1; i < n; i++ {
		edges = append(edges, [2]int{i - 1, i})
	}

	return FromEdges(n, edges)
}

// Cycle returns the ring 0-1-...-(n-1)-0; n must be at least 3.
func Cycle(n int) (*Graph, error) {
	if n < minCycleNodes {
		return nil, invalidf(methodCycle, ErrTooFewNodes, "n=%d < min=%d", n, minCycleNodes)
	}
	edges := make([][2]int, 0, n)
	for i := 1; i < n; i++ {
		edges = append(edges, [2]int{i - 1, i})
	}
	edges = append(edges, [2]int{n - 1, 0})

	return FromEdges(n, edges)
}

// Complete returns K_n.
func Complete(n int) (*Graph, error) {
	return Random(n, 1, nil)
}

// Complement returns the graph with the same nodes whose edges are exactly
// the non-edges of g. A stable set of g is a clique of Complement(g).
//
// Complexity: O(n²).
func Complement(g *Graph) (*Graph, error) {
	if g == nil {
		return nil, fmt.Errorf("%s: nil graph: %w", methodComplement, ErrInvalidInstance)
	}
	n := g.n
	adj := make([][]int, n)

	var i, j, k int
	for i = 0; i < n; i++ {
		nb := g.adj[i]
		k = 0
		for j = 0; j < n; j++ {
			// nb is sorted: advance the cursor instead of searching.
			for k < len(nb) && nb[k] < j {
				k++
			}
			if j == i || (k < len(nb) && nb[k] == j) {
				continue
			}
			adj[i] = append(adj[i], j)
		}
	}

	return finalize(n, adj), nil
}
