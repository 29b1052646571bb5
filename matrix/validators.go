// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Single source of truth for the structural checks instance constructors need.
//  - Return sentinel errors wrapped with the validator tag.
//
// Determinism & Performance:
//  - Pure, allocation-free scans in fixed i→j order.

package matrix

import "math"

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures a and b are both non-nil with equal size.
// Complexity: O(1).
func ValidateSameShape(a, b *Dense) error {
	if a == nil || b == nil {
		return validatorErrorf("ValidateSameShape", ErrNilMatrix)
	}
	if a.n != b.n {
		return validatorErrorf("ValidateSameShape", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSymmetric checks |A[i,j] - A[j,i]| ≤ tol for all i<j.
// A negative tol is treated as its absolute value; NaN/Inf tol yields ErrNaNInf.
//
// Complexity: O(n²) over the strict upper triangle.
func ValidateSymmetric(m *Dense, tol float64) error {
	if m == nil {
		return validatorErrorf("ValidateSymmetric", ErrNilMatrix)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	n := m.n
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if math.Abs(m.data[i*n+j]-m.data[j*n+i]) > tol {
				return denseErrorf("ValidateSymmetric", i, j, ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateZeroDiagonal checks |A[i,i]| ≤ tol for every i.
// Complexity: O(n).
func ValidateZeroDiagonal(m *Dense, tol float64) error {
	if m == nil {
		return validatorErrorf("ValidateZeroDiagonal", ErrNilMatrix)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateZeroDiagonal", ErrNaNInf)
	}
	tol = math.Abs(tol)

	for i := 0; i < m.n; i++ {
		if math.Abs(m.data[i*m.n+i]) > tol {
			return denseErrorf("ValidateZeroDiagonal", i, i, ErrNonZeroDiagonal)
		}
	}

	return nil
}
