package queens

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/lvsearch/search"
)

// Construct places the queens row by row. Each row first draws up to
// 10·floor(log10 n) random free columns and keeps the first one on two empty
// diagonals; when every draw fails it takes the free column whose diagonals
// hold the fewest queens.
//
// Errors: ErrBadSize.
// Complexity: O(n²) in the worst case, close to O(n log n) on large boards.
func Construct(n int, rng *rand.Rand) ([]int, error) {
	if n < 1 {
		return nil, ErrBadSize
	}
	var (
		cols   = make([]int, n)
		up     = make([]int, 2*n-1)
		down   = make([]int, 2*n-1)
		free   = search.Perm(n, rng)
		trials = 10 * int(math.Log10(float64(n)))
	)
	load := func(r, c int) int { return up[r+c] + down[n-1+c-r] }

	for r := 0; r < n; r++ {
		k := -1
		for t := 0; t < trials; t++ {
			x := rng.Intn(len(free))
			if load(r, free[x]) == 0 {
				k = x
				break
			}
		}
		if k < 0 {
			low := math.MaxInt
			for x, c := range free {
				if l := load(r, c); l < low {
					low, k = l, x
				}
			}
		}

		c := free[k]
		cols[r] = c
		up[r+c]++
		down[n-1+c-r]++
		free[k] = free[len(free)-1]
		free = free[:len(free)-1]
	}

	return cols, nil
}
