package qap

import (
	"fmt"
	"math"
	"slices"
)

// Evaluator holds a permutation together with the incremental cost table
//
//	delta[i*n+j] = Σ_k f[i,k] · d[j,π[k]]
//
// i.e. the cost contribution of facility i if it were placed at location j.
// With it a swap is priced in O(1) and applied in O(n²).
//
// Invariant: Cost() == Σ_i delta[i*n+π[i]] == cost(π) (see CheckDrift).
type Evaluator struct {
	in    *Instance
	n     int
	perm  []int
	delta []float64
	cost  float64
}

// NewEvaluator validates perm and builds the table.
//
// Errors: ErrBadPermutation.
// Complexity: O(n³).
func NewEvaluator(in *Instance, perm []int) (*Evaluator, error) {
	if err := checkPerm(perm, in.n); err != nil {
		return nil, err
	}
	e := &Evaluator{
		in:    in,
		n:     in.n,
		perm:  slices.Clone(perm),
		delta: make([]float64, in.n*in.n),
	}
	e.Recompute()

	return e, nil
}

// Recompute rebuilds delta and cost from the current permutation.
// Complexity: O(n³).
func (e *Evaluator) Recompute() {
	var (
		n    = e.n
		f, d = e.in.flow, e.in.dist
		s    float64
	)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s = 0
			for k := 0; k < n; k++ {
				s += f[i*n+k] * d[j*n+e.perm[k]]
			}
			e.delta[i*n+j] = s
		}
	}
	e.cost = 0
	for i := 0; i < n; i++ {
		e.cost += e.delta[i*n+e.perm[i]]
	}
}

// Reset replaces the permutation and rebuilds the table.
//
// Errors: ErrBadPermutation.
// Complexity: O(n³).
func (e *Evaluator) Reset(perm []int) error {
	if err := checkPerm(perm, e.n); err != nil {
		return err
	}
	copy(e.perm, perm)
	e.Recompute()

	return nil
}

// Cost returns the incrementally maintained cost.
func (e *Evaluator) Cost() float64 { return e.cost }

// N returns the instance size.
func (e *Evaluator) N() int { return e.n }

// Location returns π[i].
func (e *Evaluator) Location(i int) int { return e.perm[i] }

// Assignment returns a copy of π.
func (e *Evaluator) Assignment() []int { return slices.Clone(e.perm) }

// MoveCost returns the cost change of swapping the locations of i and j.
// Complexity: O(1).
func (e *Evaluator) MoveCost(i, j int) float64 {
	var (
		n      = e.n
		pi, pj = e.perm[i], e.perm[j]
		dl     = e.delta
	)
	move := dl[j*n+pi] - dl[j*n+pj] + dl[i*n+pj] - dl[i*n+pi] +
		2*e.in.flow[i*n+j]*e.in.dist[pi*n+pj]

	return move * 2
}

// Swap exchanges the locations of i and j, updating delta and cost.
// Complexity: O(n²).
func (e *Evaluator) Swap(i, j int) {
	if i == j {
		return
	}
	e.cost += e.MoveCost(i, j)

	var (
		n      = e.n
		f, d   = e.in.flow, e.in.dist
		pi, pj = e.perm[i], e.perm[j]
		df     float64
		row    int
	)
	for a := 0; a < n; a++ {
		df = f[a*n+j] - f[a*n+i]
		if df == 0 {
			continue
		}
		row = a * n
		for b := 0; b < n; b++ {
			e.delta[row+b] += df * (d[b*n+pi] - d[b*n+pj])
		}
	}
	e.perm[i], e.perm[j] = pj, pi
}

// CheckDrift compares Cost() against a from-scratch evaluation; the allowed
// error is eps·max(1, |cost|).
//
// Errors: ErrCostDrift.
// Complexity: O(n²).
func (e *Evaluator) CheckDrift(eps float64) error {
	want := cost(e.in, e.perm)
	if math.Abs(want-e.cost) > eps*math.Max(1, math.Abs(want)) {
		return fmt.Errorf("incremental %g, recomputed %g: %w", e.cost, want, ErrCostDrift)
	}

	return nil
}
