package ssp

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/search"
)

// Construct builds a maximal stable set: nodes are scanned in random order
// and inserted iff no member is adjacent to them.
// The result is sorted ascending.
//
// Complexity: O(n + m).
func Construct(g *graph.Graph, rng *rand.Rand) ([]int, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	s := newEmpty(g)
	fill(s, search.Perm(g.N(), rng))

	return s.Nodes(), nil
}

// ConstructFrom builds a maximal stable set that contains seed, completing it
// in random order.
//
// Errors: ErrNilGraph, ErrBadNode when seed is out of range.
//
// Complexity: O(n + m).
func ConstructFrom(g *graph.Graph, seed int, rng *rand.Rand) ([]int, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if seed < 0 || seed >= g.N() {
		return nil, fmt.Errorf("seed %d, n=%d: %w", seed, g.N(), ErrBadNode)
	}
	s := newEmpty(g)
	rebuild(s, seed, search.Perm(g.N(), rng))

	return s.Nodes(), nil
}

// fill inserts every conflict-free node of order into s.
func fill(s *Solution, order []int) {
	for _, i := range order {
		if !s.in[i] && s.conflicts[i] == 0 {
			s.ApplyAdd(i)
		}
	}
}

// rebuild empties s and grows a maximal stable set from seed.
func rebuild(s *Solution, seed int, order []int) {
	s.Reset()
	s.ApplyAdd(seed)
	fill(s, order)
}
