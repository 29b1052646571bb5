// SPDX-License-Identifier: MIT

// Package graph is the leaf instance model for graph-structured problems.
//
// What's inside:
//
//	types.go    - Graph and sentinel errors
//	build.go    - FromEdges, FromAdjacency (validated, fail fast)
//	generate.go - Random (G(n,p)), Path, Cycle, Complete, Complement
//
// A Graph is pure data: nodes 0..n-1 with sorted, symmetric adjacency and no
// self-loops. Searches consume only N, Neighbors and Degree; how an instance
// was produced (generator, caller-side file loader) does not matter to them.
//
// Quick example:
//
//	g, err := graph.FromEdges(4, [][2]int{{0, 1}, {1, 2}, {2, 3}})
//	if err != nil {
//		// errors.Is(err, graph.ErrInvalidInstance) == true
//	}
//	_ = g.Neighbors(1) // [0 2]
package graph
