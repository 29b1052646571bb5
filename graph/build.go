// SPDX-License-Identifier: MIT
// Package: lvsearch/graph
//
// build.go - validated constructors.
//
// Contract:
//   - FromEdges accepts any edge order and collapses duplicates ({i,j} == {j,i}).
//   - FromAdjacency requires mirror entries: j ∈ adj[i] ⇔ i ∈ adj[j].
//   - Both reject negative sizes, out-of-range endpoints and self-loops.
//   - No partially built Graph is ever returned alongside an error.
//
// Determinism:
//   - Neighbor slices and the edge list are sorted; the input order never leaks.

package graph

import (
	"slices"
)

const (
	methodFromEdges     = "FromEdges"
	methodFromAdjacency = "FromAdjacency"
)

// FromEdges builds a Graph with n nodes and the given undirected edges.
//
// Errors: ErrNegativeSize, ErrNodeOutOfRange, ErrSelfLoop (all also match
// ErrInvalidInstance).
//
// Complexity: O(n + m log m).
func FromEdges(n int, edges [][2]int) (*Graph, error) {
	if n < 0 {
		return nil, invalidf(methodFromEdges, ErrNegativeSize, "n=%d", n)
	}

	adj := make([][]int, n)
	var (
		e    [2]int
		u, v int
	)
	for _, e = range edges {
		u, v = e[0], e[1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return nil, invalidf(methodFromEdges, ErrNodeOutOfRange, "edge (%d,%d), n=%d", u, v, n)
		}
		if u == v {
			return nil, invalidf(methodFromEdges, ErrSelfLoop, "edge (%d,%d)", u, v)
		}
		adj[u] = append(adj[u], v)
		adj[v] = append(adj[v], u)
	}

	return finalize(n, adj), nil
}

// FromAdjacency builds a Graph from adjacency lists; len(adj) is the node count.
// The input slices are copied, never retained.
//
// Errors: ErrNodeOutOfRange, ErrSelfLoop, ErrAsymmetric (all also match
// ErrInvalidInstance).
//
// Complexity: O(n + m log m).
func FromAdjacency(adj [][]int) (*Graph, error) {
	n := len(adj)
	work := make([][]int, n)

	var i, j int
	for i = 0; i < n; i++ {
		for _, j = range adj[i] {
			if j < 0 || j >= n {
				return nil, invalidf(methodFromAdjacency, ErrNodeOutOfRange, "adj[%d] contains %d, n=%d", i, j, n)
			}
			if j == i {
				return nil, invalidf(methodFromAdjacency, ErrSelfLoop, "adj[%d] contains itself", i)
			}
		}
		work[i] = slices.Clone(adj[i])
		slices.Sort(work[i])
		work[i] = slices.Compact(work[i])
	}

	// Mirror check on the normalized lists.
	for i = 0; i < n; i++ {
		for _, j = range work[i] {
			if _, found := slices.BinarySearch(work[j], i); !found {
				return nil, invalidf(methodFromAdjacency, ErrAsymmetric, "%d lists %d but %d does not list %d", i, j, j, i)
			}
		}
	}

	return finalize(n, work), nil
}

// finalize sorts and deduplicates adjacency in place and derives the edge list.
func finalize(n int, adj [][]int) *Graph {
	g := &Graph{n: n, adj: adj}

	var i, j int
	for i = 0; i < n; i++ {
		slices.Sort(adj[i])
		adj[i] = slices.Compact(adj[i])
		for _, j = range adj[i] {
			if i < j {
				g.edges = append(g.edges, [2]int{i, j})
			}
		}
	}
	g.m = len(g.edges)

	return g
}
