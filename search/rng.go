// Package search - RNG utilities shared by every search run.
//
// Goals:
//   - Determinism: same seed ⇒ identical move sequence and identical result.
//   - Encapsulation: a single RNG factory; no time-based sources anywhere.
//   - One stream per run: construction order, tie-breaks, soft admission and
//     diversification seeds are all drawn from the same *rand.Rand.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Never share a *rand.Rand across runs.
//   - Use DeriveRand to create independent streams for caller-side multi-start.
package search

import "math/rand"

// DefaultSeed is the seed used when callers pass seed==0.
const DefaultSeed int64 = 1

// NewRand returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the provided seed verbatim.
//
// Complexity: O(1).
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream identifier with a
// SplitMix64-style finalizer so that neighboring streams are decorrelated.
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// DeriveRand creates an independent deterministic stream from a base seed
// and a stream id (e.g., the index of a restart). It is a setup-time helper,
// never called inside a search loop.
//
// Complexity: O(1).
func DeriveRand(seed int64, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(deriveSeed(seed, stream)))
}

// Shuffle performs an in-place Fisher–Yates shuffle of a using rng.
// If rng==nil, the DefaultSeed stream is used.
//
// Complexity: O(n) time, O(1) extra space.
func Shuffle(a []int, rng *rand.Rand) {
	n := len(a)
	if n <= 1 {
		return
	}
	r := rng
	if r == nil {
		r = NewRand(0)
	}

	var i, j int
	for i = n - 1; i > 0; i-- {
		j = r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// Perm returns a permutation of 0..n-1 drawn from rng (n<=0 yields empty).
//
// Complexity: O(n) time, O(n) space.
func Perm(n int, rng *rand.Rand) []int {
	if n < 0 {
		n = 0
	}
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	Shuffle(p, rng)

	return p
}

// Ties collects equally good candidates and picks one uniformly.
// It replaces "collect a list, then random.choice" without allocating per
// iteration: reuse one Ties value across iterations via Reset.
type Ties struct {
	items []int
}

// Reset empties the candidate set, keeping capacity.
func (t *Ties) Reset() { t.items = t.items[:0] }

// Add appends a candidate.
func (t *Ties) Add(x int) { t.items = append(t.items, x) }

// Len returns the number of candidates.
func (t *Ties) Len() int { return len(t.items) }

// Pick returns a uniformly chosen candidate; ok is false when empty.
// A single candidate is returned without consuming randomness.
func (t *Ties) Pick(rng *rand.Rand) (int, bool) {
	switch len(t.items) {
	case 0:
		return 0, false
	case 1:
		return t.items[0], true
	default:
		return t.items[rng.Intn(len(t.items))], true
	}
}
