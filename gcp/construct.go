package gcp

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/search"
)

// RandomColoring assigns each of n nodes a uniform color in 0..K-1.
// A nil rng uses the default seed.
func RandomColoring(n, k int, rng *rand.Rand) ([]int, error) {
	if k < 1 {
		return nil, fmt.Errorf("K=%d: %w", k, ErrBadK)
	}
	if n < 0 {
		n = 0
	}
	if rng == nil {
		rng = search.NewRand(0)
	}
	colors := make([]int, n)
	for i := range colors {
		colors[i] = rng.Intn(k)
	}

	return colors, nil
}

// RSatur is the saturation heuristic restricted to K colors.
//
// It repeatedly colors the uncolored node adjacent to the most distinct
// colors (ties: most uncolored neighbors, then lowest index) with a random
// color absent from its neighborhood; when all K colors are present a random
// color is used, creating conflicts.
//
// Errors: ErrNilGraph, ErrBadK.
// Complexity: O(n² + m·K).
func RSatur(g *graph.Graph, k int, rng *rand.Rand) ([]int, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if k < 1 {
		return nil, fmt.Errorf("K=%d: %w", k, ErrBadK)
	}
	if rng == nil {
		rng = search.NewRand(0)
	}
	var (
		n       = g.N()
		colors  = make([]int, n)
		seen    = make([]int, n*k) // seen[i*k+c]: colored neighbors of i with color c
		sat     = make([]int, n)   // distinct neighbor colors
		unc     = make([]int, n)   // uncolored neighbors
		done    = make([]bool, n)
		palette = make([]int, k)
	)
	for i := 0; i < n; i++ {
		unc[i] = g.Degree(i)
	}
	for c := range palette {
		palette[c] = c
	}

	for step := 0; step < n; step++ {
		u := -1
		for i := 0; i < n; i++ {
			if done[i] {
				continue
			}
			if u < 0 || sat[i] > sat[u] || (sat[i] == sat[u] && unc[i] > unc[u]) {
				u = i
			}
		}

		search.Shuffle(palette, rng)
		c := -1
		for _, p := range palette {
			if seen[u*k+p] == 0 {
				c = p
				break
			}
		}
		if c < 0 {
			c = rng.Intn(k)
		}
		colors[u] = c
		done[u] = true

		for _, j := range g.Neighbors(u) {
			if done[j] {
				continue
			}
			unc[j]--
			if seen[j*k+c] == 0 {
				sat[j]++
			}
			seen[j*k+c]++
		}
	}

	return colors, nil
}
