// Package ssp solves the maximum stable set problem with tabu search.
//
// A stable (independent) set S of a graph contains no two adjacent nodes.
// The search walks across the feasibility boundary on purpose: it grows S
// while S is stable, and repairs S by dropping conflicting nodes otherwise.
package ssp

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/lvsearch/graph"
)

// Sentinel errors.
var (
	// ErrNilGraph indicates a nil *graph.Graph.
	ErrNilGraph = errors.New("ssp: graph is nil")

	// ErrBadNode indicates an initial-solution node outside 0..n-1 or listed twice.
	ErrBadNode = errors.New("ssp: invalid node in solution")

	// ErrInfeasibleStart indicates an initial solution that is not a stable set.
	ErrInfeasibleStart = errors.New("ssp: initial solution is not a stable set")

	// ErrInconsistent is returned by Solution.Check when the incremental tables
	// disagree with a from-scratch evaluation.
	ErrInconsistent = errors.New("ssp: incremental bookkeeping out of sync")
)

// Solution is a node subset with the bookkeeping that makes move evaluation O(1).
//
// Invariants (checked by Check):
//   - conflicts[i] == |{ j ∈ N(i) : j ∈ S }| for every node i (members included).
//   - infeas == number of edges with both endpoints in S.
//   - S is stable iff infeas == 0.
type Solution struct {
	g         *graph.Graph
	in        []bool
	card      int
	conflicts []int
	infeas    int
}

// NewSolution evaluates nodes from scratch on g.
//
// Errors: ErrNilGraph, ErrBadNode (out of range or duplicate).
//
// Complexity: O(n + Σ deg(i) for i in nodes).
func NewSolution(g *graph.Graph, nodes []int) (*Solution, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	s := newEmpty(g)
	for _, i := range nodes {
		if i < 0 || i >= g.N() {
			return nil, fmt.Errorf("node %d, n=%d: %w", i, g.N(), ErrBadNode)
		}
		if s.in[i] {
			return nil, fmt.Errorf("node %d listed twice: %w", i, ErrBadNode)
		}
		s.ApplyAdd(i)
	}

	return s, nil
}

func newEmpty(g *graph.Graph) *Solution {
	return &Solution{
		g:         g,
		in:        make([]bool, g.N()),
		conflicts: make([]int, g.N()),
	}
}

// EvaluateAdd returns the number of conflicts inserting i would create.
// Complexity: O(1).
func (s *Solution) EvaluateAdd(i int) int { return s.conflicts[i] }

// EvaluateDrop returns the number of conflicts removing i would resolve.
// Complexity: O(1).
func (s *Solution) EvaluateDrop(i int) int { return s.conflicts[i] }

// ApplyAdd inserts i and returns the change in infeasibility (== conflicts[i]).
// Inserting a member is a no-op returning 0.
//
// Complexity: O(deg(i)).
func (s *Solution) ApplyAdd(i int) int {
	if s.in[i] {
		return 0
	}
	s.in[i] = true
	s.card++

	delta := 0
	for _, j := range s.g.Neighbors(i) {
		s.conflicts[j]++
		if s.in[j] {
			delta++
		}
	}
	s.infeas += delta

	return delta
}

// ApplyDrop removes i and returns the change in infeasibility (<= 0).
// It is the exact inverse of ApplyAdd. Dropping a non-member is a no-op.
//
// Complexity: O(deg(i)).
func (s *Solution) ApplyDrop(i int) int {
	if !s.in[i] {
		return 0
	}
	s.in[i] = false
	s.card--

	delta := 0
	for _, j := range s.g.Neighbors(i) {
		s.conflicts[j]--
		if s.in[j] {
			delta--
		}
	}
	s.infeas += delta

	return delta
}

// Contains reports membership of i.
func (s *Solution) Contains(i int) bool { return s.in[i] }

// Conflicts returns conflicts[i], the number of members adjacent to i.
func (s *Solution) Conflicts(i int) int { return s.conflicts[i] }

// Cardinality returns |S|.
func (s *Solution) Cardinality() int { return s.card }

// Infeasibility returns the number of edges inside S.
func (s *Solution) Infeasibility() int { return s.infeas }

// Feasible reports whether S is a stable set.
func (s *Solution) Feasible() bool { return s.infeas == 0 }

// Graph returns the instance this solution lives on.
func (s *Solution) Graph() *graph.Graph { return s.g }

// Nodes returns the members in ascending order.
// Complexity: O(n).
func (s *Solution) Nodes() []int {
	out := make([]int, 0, s.card)
	for i, ok := range s.in {
		if ok {
			out = append(out, i)
		}
	}

	return out
}

// Clone returns a deep copy that shares only the immutable graph.
// Complexity: O(n).
func (s *Solution) Clone() *Solution {
	return &Solution{
		g:         s.g,
		in:        slices.Clone(s.in),
		card:      s.card,
		conflicts: slices.Clone(s.conflicts),
		infeas:    s.infeas,
	}
}

// CopyFrom overwrites s with o without allocating. Both must share a graph.
// Complexity: O(n).
func (s *Solution) CopyFrom(o *Solution) {
	copy(s.in, o.in)
	copy(s.conflicts, o.conflicts)
	s.card = o.card
	s.infeas = o.infeas
}

// Reset empties the set.
// Complexity: O(n).
func (s *Solution) Reset() {
	clear(s.in)
	clear(s.conflicts)
	s.card = 0
	s.infeas = 0
}

// Check recomputes the bookkeeping from scratch and compares.
// Complexity: O(n + m).
func (s *Solution) Check() error {
	var (
		n      = s.g.N()
		card   int
		infeas int
		cnt    int
		i, j   int
	)
	for i = 0; i < n; i++ {
		cnt = 0
		for _, j = range s.g.Neighbors(i) {
			if s.in[j] {
				cnt++
			}
		}
		if cnt != s.conflicts[i] {
			return fmt.Errorf("conflicts[%d]=%d, recomputed %d: %w", i, s.conflicts[i], cnt, ErrInconsistent)
		}
		if s.in[i] {
			card++
			infeas += cnt
		}
	}
	infeas /= 2
	if card != s.card || infeas != s.infeas {
		return fmt.Errorf("card=%d infeas=%d, recomputed card=%d infeas=%d: %w", s.card, s.infeas, card, infeas, ErrInconsistent)
	}

	return nil
}
