// SPDX-License-Identifier: MIT

// Package matrix - Dense square storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly n×n buffer with the explicit index formula i*n + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Expose the flat buffer (Data) for hot loops that already validated shape.
//
// Complexity quicksheet:
//   - NewDense: O(n²) zero-init; At/Set: O(1); Clone: O(n²); FromRows: O(n²).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

const (
	ctxAt  = "At"
	ctxSet = "Set"
)

// Dense is an n×n row-major matrix of float64 values.
// data holds n*n elements; entry (i,j) lives at i*n+j.
type Dense struct {
	n    int
	data []float64
}

var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an n×n zero matrix. n == 0 is legal (empty instance).
//
// Errors: ErrBadShape for n < 0.
// Complexity: O(n²) time and memory.
func NewDense(n int) (*Dense, error) {
	if n < 0 {
		return nil, validatorErrorf("NewDense", ErrBadShape)
	}

	return &Dense{n: n, data: make([]float64, n*n)}, nil
}

// FromRows copies a [][]float64 into a Dense.
//
// Contracts:
//   - every row has len(rows) entries (square), else ErrNonSquare.
//   - every entry is finite, else ErrNaNInf.
//
// Complexity: O(n²).
func FromRows(rows [][]float64) (*Dense, error) {
	n := len(rows)
	m := &Dense{n: n, data: make([]float64, n*n)}

	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		if len(rows[i]) != n {
			return nil, validatorErrorf(fmt.Sprintf("FromRows: row %d has %d entries, want %d", i, len(rows[i]), n), ErrNonSquare)
		}
		for j = 0; j < n; j++ {
			v = rows[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, denseErrorf("FromRows", i, j, ErrNaNInf)
			}
			m.data[i*n+j] = v
		}
	}

	return m, nil
}

// Size returns n (rows == cols).
// Complexity: O(1).
func (m *Dense) Size() int { return m.n }

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		return 0, denseErrorf(ctxAt, row, col, ErrOutOfRange)
	}

	return m.data[row*m.n+col], nil
}

// Set assigns a finite value v at (row, col).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	if row < 0 || row >= m.n || col < 0 || col >= m.n {
		return denseErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[row*m.n+col] = v

	return nil
}

// Data returns the flat row-major buffer. The slice aliases the matrix:
// writes are visible through At. Intended for read-only hot loops.
// Complexity: O(1).
func (m *Dense) Data() []float64 { return m.data }

// Clone returns a deep copy.
// Complexity: O(n²).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{n: m.n, data: cp}
}

// String implements fmt.Stringer, one bracketed row per line.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j int
	for i = 0; i < m.n; i++ {
		b.WriteString("[")
		for j = 0; j < m.n; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%g", m.data[i*m.n+j])
		}
		b.WriteString("]\n")
	}

	return b.String()
}
