// Package gcp searches for a proper K-coloring of a graph with tabu search:
// the number of colors is fixed and the objective is the number of conflicts
// (adjacent nodes sharing a color), which the search drives to zero.
//
// Conflicts are counted per ordered node pair, so each monochromatic edge
// contributes 2.
package gcp

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/lvsearch/graph"
)

// Sentinel errors.
var (
	// ErrNilGraph indicates a nil *graph.Graph.
	ErrNilGraph = errors.New("gcp: graph is nil")

	// ErrBadK indicates a color count K < 1.
	ErrBadK = errors.New("gcp: number of colors must be >= 1")

	// ErrBadColors indicates a color vector of wrong length or with values outside 0..K-1.
	ErrBadColors = errors.New("gcp: invalid coloring")

	// ErrInconsistent is returned by Solution.Check on bookkeeping mismatch.
	ErrInconsistent = errors.New("gcp: incremental bookkeeping out of sync")
)

// Solution is a K-coloring with the bad-degree table
//
//	bad[i*K+k] = |{ j ∈ N(i) : color[j] == k }|
//
// Invariant: conflicts == Σ_i bad[i*K+color[i]].
type Solution struct {
	g         *graph.Graph
	k         int
	color     []int
	bad       []int
	conflicts int
}

// NewSolution evaluates colors under K colors from scratch.
//
// Errors: ErrNilGraph, ErrBadK, ErrBadColors.
// Complexity: O(n·K + m).
func NewSolution(g *graph.Graph, k int, colors []int) (*Solution, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if k < 1 {
		return nil, fmt.Errorf("K=%d: %w", k, ErrBadK)
	}
	if len(colors) != g.N() {
		return nil, fmt.Errorf("len=%d, n=%d: %w", len(colors), g.N(), ErrBadColors)
	}
	for i, c := range colors {
		if c < 0 || c >= k {
			return nil, fmt.Errorf("colors[%d]=%d, K=%d: %w", i, c, k, ErrBadColors)
		}
	}
	s := &Solution{
		g:     g,
		k:     k,
		color: slices.Clone(colors),
		bad:   make([]int, g.N()*k),
	}
	s.evaluate()

	return s, nil
}

func (s *Solution) evaluate() {
	clear(s.bad)
	s.conflicts = 0
	for i := range s.color {
		for _, j := range s.g.Neighbors(i) {
			s.bad[i*s.k+s.color[j]]++
		}
	}
	for i, c := range s.color {
		s.conflicts += s.bad[i*s.k+c]
	}
}

// K returns the number of colors.
func (s *Solution) K() int { return s.k }

// Color returns the color of i.
func (s *Solution) Color(i int) int { return s.color[i] }

// Colors returns a copy of the coloring.
func (s *Solution) Colors() []int { return slices.Clone(s.color) }

// Conflicts returns the doubled conflict count.
func (s *Solution) Conflicts() int { return s.conflicts }

// BadDegree returns how many neighbors of i have color k.
func (s *Solution) BadDegree(i, k int) int { return s.bad[i*s.k+k] }

// Conflicting reports whether i shares its color with a neighbor.
func (s *Solution) Conflicting(i int) bool { return s.bad[i*s.k+s.color[i]] > 0 }

// Delta returns the conflict change of recoloring i with k.
// Complexity: O(1).
func (s *Solution) Delta(i, k int) int {
	return 2 * (s.bad[i*s.k+k] - s.bad[i*s.k+s.color[i]])
}

// Recolor gives i color k and returns the conflict change.
// Complexity: O(deg(i)).
func (s *Solution) Recolor(i, k int) int {
	old := s.color[i]
	if old == k {
		return 0
	}
	d := s.Delta(i, k)
	for _, j := range s.g.Neighbors(i) {
		s.bad[j*s.k+old]--
		s.bad[j*s.k+k]++
	}
	s.color[i] = k
	s.conflicts += d

	return d
}

// Clone returns a deep copy sharing the graph.
func (s *Solution) Clone() *Solution {
	return &Solution{
		g:         s.g,
		k:         s.k,
		color:     slices.Clone(s.color),
		bad:       slices.Clone(s.bad),
		conflicts: s.conflicts,
	}
}

// CopyFrom overwrites s with o without allocating.
func (s *Solution) CopyFrom(o *Solution) {
	copy(s.color, o.color)
	copy(s.bad, o.bad)
	s.conflicts = o.conflicts
}

// Check re-evaluates from scratch and compares.
// Complexity: O(n·K + m).
func (s *Solution) Check() error {
	c := s.Clone()
	c.evaluate()
	if c.conflicts != s.conflicts || !slices.Equal(c.bad, s.bad) {
		return fmt.Errorf("conflicts=%d, recomputed %d: %w", s.conflicts, c.conflicts, ErrInconsistent)
	}

	return nil
}
