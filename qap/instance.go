// Package qap solves the symmetric quadratic assignment problem with tabu search.
//
// An instance pairs an n×n flow matrix f with an n×n distance matrix d.
// A solution is a permutation π (π[i] is the location of facility i) with
//
//	cost(π) = Σ_i Σ_k f[i,k] · d[π[i],π[k]]
//
// Both matrices are symmetric with zero diagonal, so every unordered pair is
// counted twice; all costs in this package use that doubled convention.
package qap

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvsearch/matrix"
)

// Sentinel errors.
var (
	// ErrInvalidInstance wraps every instance validation failure.
	ErrInvalidInstance = errors.New("qap: invalid instance")

	// ErrBadPermutation indicates an assignment that is not a permutation of 0..n-1.
	ErrBadPermutation = errors.New("qap: assignment is not a permutation")

	// ErrCostDrift indicates the incrementally maintained cost disagrees with
	// a from-scratch evaluation.
	ErrCostDrift = errors.New("qap: incremental cost drifted")
)

// Instance is an immutable validated QAP instance.
type Instance struct {
	n    int
	flow []float64
	dist []float64
}

// NewInstance validates flow and dist and copies their data.
//
// Contracts: both non-nil, same size, symmetric, zero diagonal.
// Every failure wraps ErrInvalidInstance and the matrix sentinel at fault.
//
// Complexity: O(n²).
func NewInstance(flow, dist *matrix.Dense) (*Instance, error) {
	named := [...]struct {
		name string
		m    *matrix.Dense
	}{{"flow", flow}, {"distance", dist}}
	for _, c := range named {
		if err := matrix.ValidateNotNil(c.m); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", c.name, ErrInvalidInstance, err)
		}
	}
	if err := matrix.ValidateSameShape(flow, dist); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInstance, err)
	}
	for _, c := range named {
		if err := matrix.ValidateSymmetric(c.m, 0); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", c.name, ErrInvalidInstance, err)
		}
		if err := matrix.ValidateZeroDiagonal(c.m, 0); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", c.name, ErrInvalidInstance, err)
		}
	}

	return &Instance{
		n:    flow.Size(),
		flow: append([]float64(nil), flow.Data()...),
		dist: append([]float64(nil), dist.Data()...),
	}, nil
}

// NewInstanceFromRows builds the matrices from row slices and validates them
// like NewInstance. Ragged rows and non-finite entries also wrap
// ErrInvalidInstance, next to matrix.ErrNonSquare or matrix.ErrNaNInf.
//
// Complexity: O(n²).
func NewInstanceFromRows(flow, dist [][]float64) (*Instance, error) {
	f, err := matrix.FromRows(flow)
	if err != nil {
		return nil, fmt.Errorf("flow: %w: %w", ErrInvalidInstance, err)
	}
	d, err := matrix.FromRows(dist)
	if err != nil {
		return nil, fmt.Errorf("distance: %w: %w", ErrInvalidInstance, err)
	}

	return NewInstance(f, d)
}

// RandomInstance draws a symmetric instance with integer entries in
// [0, scale) off the diagonal.
//
// Complexity: O(n²).
func RandomInstance(n, scale int, rng *rand.Rand) (*Instance, error) {
	if n < 0 || scale < 1 {
		return nil, fmt.Errorf("n=%d scale=%d: %w", n, scale, ErrInvalidInstance)
	}
	inst := &Instance{n: n, flow: make([]float64, n*n), dist: make([]float64, n*n)}

	var i, j int
	for i = 0; i < n-1; i++ {
		for j = i + 1; j < n; j++ {
			f := float64(rng.Intn(scale))
			d := float64(rng.Intn(scale))
			inst.flow[i*n+j], inst.flow[j*n+i] = f, f
			inst.dist[i*n+j], inst.dist[j*n+i] = d, d
		}
	}

	return inst, nil
}

// N returns the number of facilities (and locations).
func (in *Instance) N() int { return in.n }

// Flow returns f[i,j].
func (in *Instance) Flow(i, j int) float64 { return in.flow[i*in.n+j] }

// Distance returns d[i,j].
func (in *Instance) Distance(i, j int) float64 { return in.dist[i*in.n+j] }

// Cost evaluates perm from scratch under the doubled convention.
//
// Errors: ErrBadPermutation.
// Complexity: O(n²).
func Cost(in *Instance, perm []int) (float64, error) {
	if err := checkPerm(perm, in.n); err != nil {
		return 0, err
	}

	return cost(in, perm), nil
}

func cost(in *Instance, perm []int) float64 {
	var (
		n = in.n
		c float64
	)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			c += in.flow[i*n+j] * in.dist[perm[i]*n+perm[j]]
		}
	}

	return c * 2
}

func checkPerm(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("len=%d, n=%d: %w", len(perm), n, ErrBadPermutation)
	}
	seen := make([]bool, n)
	for i, v := range perm {
		if v < 0 || v >= n || seen[v] {
			return fmt.Errorf("perm[%d]=%d: %w", i, v, ErrBadPermutation)
		}
		seen[v] = true
	}

	return nil
}
