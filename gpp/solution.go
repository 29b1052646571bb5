// Package gpp solves the graph bisection problem with tabu search: split the
// nodes of a graph with an even node count into two halves of equal size so
// that as few edges as possible cross between them.
package gpp

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/lvsearch/graph"
)

// Sentinel errors.
var (
	// ErrNilGraph indicates a nil *graph.Graph.
	ErrNilGraph = errors.New("gpp: graph is nil")

	// ErrOddNodes indicates a graph with an odd number of nodes.
	ErrOddNodes = errors.New("gpp: bisection needs an even number of nodes")

	// ErrBadSides indicates a side vector of wrong length or with values other than 0 and 1.
	ErrBadSides = errors.New("gpp: invalid side assignment")

	// ErrUnbalanced indicates a side vector whose halves differ in size.
	ErrUnbalanced = errors.New("gpp: partition is not balanced")

	// ErrInconsistent is returned by Solution.Check on bookkeeping mismatch.
	ErrInconsistent = errors.New("gpp: incremental bookkeeping out of sync")
)

// Solution is a bisection with per-node degree splits.
//
// Invariants:
//   - same[i] + diff[i] == deg(i); same[i] counts neighbors on i's side.
//   - cost == Σ diff[i] / 2 (edges across the cut).
type Solution struct {
	g    *graph.Graph
	side []int
	same []int
	diff []int
	cost int
	ones int
}

// NewSolution evaluates sides (sides[i] ∈ {0,1}) from scratch.
//
// Errors: ErrNilGraph, ErrOddNodes, ErrBadSides, ErrUnbalanced.
// Complexity: O(n + m).
func NewSolution(g *graph.Graph, sides []int) (*Solution, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.N()
	if n%2 != 0 {
		return nil, fmt.Errorf("n=%d: %w", n, ErrOddNodes)
	}
	if len(sides) != n {
		return nil, fmt.Errorf("len=%d, n=%d: %w", len(sides), n, ErrBadSides)
	}
	s := &Solution{
		g:    g,
		side: slices.Clone(sides),
		same: make([]int, n),
		diff: make([]int, n),
	}
	for i, v := range sides {
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("sides[%d]=%d: %w", i, v, ErrBadSides)
		}
		s.ones += v
	}
	if s.ones != n/2 {
		return nil, fmt.Errorf("%d of %d nodes on side 1: %w", s.ones, n, ErrUnbalanced)
	}
	s.evaluate()

	return s, nil
}

func (s *Solution) evaluate() {
	s.cost = 0
	for i := range s.side {
		s.same[i], s.diff[i] = 0, 0
		for _, j := range s.g.Neighbors(i) {
			if s.side[i] == s.side[j] {
				s.same[i]++
			} else {
				s.diff[i]++
			}
		}
		s.cost += s.diff[i]
	}
	s.cost /= 2
}

// Gain returns the cut change caused by flipping i: same[i] - diff[i].
// Complexity: O(1).
func (s *Solution) Gain(i int) int { return s.same[i] - s.diff[i] }

// Flip moves i to the other side and returns the cut change.
// The partition is unbalanced until a node is flipped the other way.
//
// Complexity: O(deg(i)).
func (s *Solution) Flip(i int) int {
	gain := s.Gain(i)
	to := 1 - s.side[i]
	s.side[i] = to
	s.ones += 2*to - 1
	s.same[i], s.diff[i] = s.diff[i], s.same[i]
	for _, j := range s.g.Neighbors(i) {
		if s.side[j] == to {
			s.same[j]++
			s.diff[j]--
		} else {
			s.same[j]--
			s.diff[j]++
		}
	}
	s.cost += gain

	return gain
}

// Side returns the side of i.
func (s *Solution) Side(i int) int { return s.side[i] }

// Sides returns a copy of the side vector.
func (s *Solution) Sides() []int { return slices.Clone(s.side) }

// Cost returns the number of cut edges.
func (s *Solution) Cost() int { return s.cost }

// Balanced reports whether both halves have n/2 nodes.
func (s *Solution) Balanced() bool { return 2*s.ones == len(s.side) }

// Clone returns a deep copy sharing the graph.
func (s *Solution) Clone() *Solution {
	return &Solution{
		g:    s.g,
		side: slices.Clone(s.side),
		same: slices.Clone(s.same),
		diff: slices.Clone(s.diff),
		cost: s.cost,
		ones: s.ones,
	}
}

// CopyFrom overwrites s with o without allocating.
func (s *Solution) CopyFrom(o *Solution) {
	copy(s.side, o.side)
	copy(s.same, o.same)
	copy(s.diff, o.diff)
	s.cost = o.cost
	s.ones = o.ones
}

// Check re-evaluates from scratch and compares.
// Complexity: O(n + m).
func (s *Solution) Check() error {
	c := s.Clone()
	c.evaluate()
	if c.cost != s.cost || !slices.Equal(c.same, s.same) || !slices.Equal(c.diff, s.diff) {
		return fmt.Errorf("cost=%d, recomputed %d: %w", s.cost, c.cost, ErrInconsistent)
	}

	return nil
}
