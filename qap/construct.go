package qap

import (
	"math/rand"

	"github.com/katalvlaran/lvsearch/search"
)

// Construct returns a uniformly random permutation of 0..n-1.
func Construct(n int, rng *rand.Rand) []int {
	return search.Perm(n, rng)
}

// Perturb keeps the assignment of a random number of facilities and places
// the others randomly on the freed locations. perm is modified in place and
// stays a permutation.
//
// Complexity: O(n).
func Perturb(perm []int, rng *rand.Rand) {
	n := len(perm)
	if n < 2 {
		return
	}
	keep := rng.Intn(n)
	order := search.Perm(n, rng)

	free := make([]int, 0, n-keep)
	for _, i := range order[keep:] {
		free = append(free, perm[i])
	}
	search.Shuffle(free, rng)
	for k, i := range order[keep:] {
		perm[i] = free[k]
	}
}
