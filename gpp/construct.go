package gpp

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/search"
)

// Construct returns a uniformly random balanced side vector for g.
//
// Errors: ErrNilGraph, ErrOddNodes.
// Complexity: O(n).
func Construct(g *graph.Graph, rng *rand.Rand) ([]int, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	n := g.N()
	if n%2 != 0 {
		return nil, fmt.Errorf("n=%d: %w", n, ErrOddNodes)
	}
	sides := make([]int, n)
	for _, i := range search.Perm(n, rng)[:n/2] {
		sides[i] = 1
	}

	return sides, nil
}

// Perturb keeps a random number of node pairs in place and reassigns the
// rest: nodes are paired across the halves and each remaining pair lands on
// a random orientation. The partition stays balanced.
//
// Complexity: O(n).
func Perturb(sides []int, rng *rand.Rand) {
	var zero, one []int
	for i, v := range sides {
		if v == 1 {
			one = append(one, i)
		} else {
			zero = append(zero, i)
		}
	}
	half := len(one)
	if half == 0 || len(zero) != half {
		return
	}
	search.Shuffle(zero, rng)
	search.Shuffle(one, rng)

	for k := rng.Intn(half); k < half; k++ {
		bit := rng.Intn(2)
		sides[zero[k]] = bit
		sides[one[k]] = 1 - bit
	}
}
