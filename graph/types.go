// SPDX-License-Identifier: MIT
// Package graph defines the immutable graph instance consumed by the
// graph-structured searches (stable set, bisection, coloring).
//
// Nodes are dense integers 0..n-1. Adjacency is stored as sorted neighbor
// slices so that incremental move updates iterate neighbors in O(deg) with a
// stable, deterministic order.
//
// Errors:
//
//	ErrInvalidInstance - umbrella sentinel for every construction failure.
//	ErrNegativeSize    - n < 0.
//	ErrTooFewNodes     - generator size below its minimum (Cycle needs 3).
//	ErrNodeOutOfRange  - an edge or adjacency entry names a node outside 0..n-1.
//	ErrSelfLoop        - an edge (i,i) was given.
//	ErrAsymmetric      - adjacency lists disagree (j in adj[i] but i not in adj[j]).
//	ErrInvalidProbability - generator probability outside [0,1].
//	ErrNeedRandSource  - a stochastic generator was called without an RNG.
package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph construction.
var (
	// ErrInvalidInstance matches every instance validation failure below.
	ErrInvalidInstance = errors.New("graph: invalid instance")

	// ErrNegativeSize indicates a negative node count.
	ErrNegativeSize = errors.New("graph: negative node count")

	// ErrTooFewNodes indicates a generator size below its minimum.
	ErrTooFewNodes = errors.New("graph: too few nodes")

	// ErrNodeOutOfRange indicates an endpoint outside 0..n-1.
	ErrNodeOutOfRange = errors.New("graph: node out of range")

	// ErrSelfLoop indicates an edge from a node to itself.
	ErrSelfLoop = errors.New("graph: self-loop not allowed")

	// ErrAsymmetric indicates that adjacency is not symmetric.
	ErrAsymmetric = errors.New("graph: adjacency is not symmetric")

	// ErrInvalidProbability indicates an edge probability outside [0,1].
	ErrInvalidProbability = errors.New("graph: probability out of range")

	// ErrNeedRandSource indicates a nil *rand.Rand passed to a stochastic generator.
	ErrNeedRandSource = errors.New("graph: rng is required")
)

// invalidf tags a sentinel with method context and the umbrella ErrInvalidInstance,
// so callers may match either the precise cause or the instance class.
func invalidf(method string, cause error, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w: %w", method, fmt.Sprintf(format, args...), ErrInvalidInstance, cause)
}

// Graph is an undirected simple graph on nodes 0..n-1.
//
// A Graph never changes after construction; all queries are safe for
// concurrent readers. Search runs keep their mutable bookkeeping elsewhere.
type Graph struct {
	n     int     // node count
	m     int     // undirected edge count
	adj   [][]int // adj[i] sorted ascending, no duplicates, no i itself
	edges [][2]int
}

// N returns the number of nodes.
// Complexity: O(1).
func (g *Graph) N() int { return g.n }

// EdgeCount returns the number of undirected edges.
// Complexity: O(1).
func (g *Graph) EdgeCount() int { return g.m }

// Neighbors returns the sorted neighbor list of i.
// The returned slice is shared with the graph and must not be modified.
// Out-of-range i yields nil.
//
// Complexity: O(1).
func (g *Graph) Neighbors(i int) []int {
	if i < 0 || i >= g.n {
		return nil
	}

	return g.adj[i]
}

// Degree returns the number of neighbors of i (0 when i is out of range).
// Complexity: O(1).
func (g *Graph) Degree(i int) int {
	return len(g.Neighbors(i))
}

// HasEdge reports whether {i,j} is an edge.
// Complexity: O(log deg(i)).
func (g *Graph) HasEdge(i, j int) bool {
	var nb = g.Neighbors(i)
	lo, hi := 0, len(nb)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if nb[mid] < j {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo < len(nb) && nb[lo] == j
}

// Edges returns a copy of the edge list as pairs (i,j) with i<j, sorted
// lexicographically.
// Complexity: O(m).
func (g *Graph) Edges() [][2]int {
	out := make([][2]int, len(g.edges))
	copy(out, g.edges)

	return out
}
