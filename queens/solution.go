// Package queens solves the n-queens problem with tabu search.
//
// A board holds one queen per row and per column: col[r] is the column of
// the queen in row r, a permutation of 0..n-1. Rows and columns are then
// attack-free by construction and only diagonals can collide. A diagonal
// holding k >= 1 queens contributes k-1 collisions; a board without
// collisions is a solution. Moves exchange the columns of two rows.
package queens

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sentinel errors.
var (
	// ErrBadSize indicates a board with fewer than one row.
	ErrBadSize = errors.New("queens: board size must be >= 1")

	// ErrBadPermutation indicates columns that are not a permutation of 0..n-1.
	ErrBadPermutation = errors.New("queens: columns are not a permutation")

	// ErrInconsistent is returned by Solution.Check when the diagonal counters
	// disagree with a from-scratch evaluation.
	ErrInconsistent = errors.New("queens: diagonal counters out of sync")
)

// Solution is a board with per-diagonal queen counts.
//
// Invariants (checked by Check):
//   - up[r+col[r]] counts the queens on each ascending diagonal;
//   - down[n-1+col[r]-r] counts the queens on each descending diagonal;
//   - colls == Σ max(k-1, 0) over all 2(2n-1) diagonals.
type Solution struct {
	n     int
	col   []int
	up    []int
	down  []int
	colls int
}

// NewSolution evaluates cols from scratch.
//
// Errors: ErrBadSize, ErrBadPermutation.
// Complexity: O(n).
func NewSolution(cols []int) (*Solution, error) {
	n := len(cols)
	if n < 1 {
		return nil, ErrBadSize
	}
	seen := make([]bool, n)
	for r, c := range cols {
		if c < 0 || c >= n || seen[c] {
			return nil, fmt.Errorf("col[%d]=%d: %w", r, c, ErrBadPermutation)
		}
		seen[c] = true
	}

	s := &Solution{
		n:    n,
		col:  slices.Clone(cols),
		up:   make([]int, 2*n-1),
		down: make([]int, 2*n-1),
	}
	for r, c := range s.col {
		s.place(r, c)
	}

	return s, nil
}

func (s *Solution) upIdx(r, c int) int   { return r + c }
func (s *Solution) downIdx(r, c int) int { return s.n - 1 + c - r }

// place puts a queen on (r, c) and updates the counters.
func (s *Solution) place(r, c int) {
	if u := s.upIdx(r, c); s.up[u] > 0 {
		s.colls++
		s.up[u]++
	} else {
		s.up[u] = 1
	}
	if d := s.downIdx(r, c); s.down[d] > 0 {
		s.colls++
		s.down[d]++
	} else {
		s.down[d] = 1
	}
}

// lift removes the queen on (r, c) and updates the counters.
func (s *Solution) lift(r, c int) {
	u, d := s.upIdx(r, c), s.downIdx(r, c)
	s.up[u]--
	if s.up[u] > 0 {
		s.colls--
	}
	s.down[d]--
	if s.down[d] > 0 {
		s.colls--
	}
}

// N returns the board size.
func (s *Solution) N() int { return s.n }

// Column returns the column of the queen in row r.
func (s *Solution) Column(r int) int { return s.col[r] }

// Columns returns a copy of the column vector.
func (s *Solution) Columns() []int { return slices.Clone(s.col) }

// Collisions returns the number of diagonal collisions.
func (s *Solution) Collisions() int { return s.colls }

// Attacked reports whether the queen of row r shares a diagonal.
// Complexity: O(1).
func (s *Solution) Attacked(r int) bool {
	c := s.col[r]
	return s.up[s.upIdx(r, c)] > 1 || s.down[s.downIdx(r, c)] > 1
}

// SwapDelta returns the change in collisions of exchanging the columns of
// rows i and j (i != j).
//
// Complexity: O(1).
func (s *Solution) SwapDelta(i, j int) int {
	ci, cj := s.col[i], s.col[j]

	delta := vacate(s.up, s.upIdx(i, ci), s.upIdx(j, cj))
	delta += vacate(s.down, s.downIdx(i, ci), s.downIdx(j, cj))
	delta += occupy(s.up, s.upIdx(i, cj), s.upIdx(j, ci))
	delta += occupy(s.down, s.downIdx(i, cj), s.downIdx(j, ci))

	return delta
}

// vacate returns the collisions removed when one queen leaves each of the
// diagonals a and b of one family.
func vacate(cnt []int, a, b int) int {
	delta := 0
	if cnt[a] >= 2 {
		delta--
	}
	if cnt[b] >= 2 {
		delta--
	}
	if a == b && cnt[a] == 2 {
		delta++
	}
	return delta
}

// occupy returns the collisions created when one queen enters each of the
// diagonals a and b. The new diagonals of a swap are never among the
// vacated ones of the same family.
func occupy(cnt []int, a, b int) int {
	delta := 0
	if cnt[a] >= 1 {
		delta++
	}
	if cnt[b] >= 1 {
		delta++
	}
	if a == b && cnt[a] == 0 {
		delta++
	}
	return delta
}

// Swap exchanges the columns of rows i and j.
// Complexity: O(1).
func (s *Solution) Swap(i, j int) {
	ci, cj := s.col[i], s.col[j]
	s.lift(i, ci)
	s.lift(j, cj)
	s.col[i], s.col[j] = cj, ci
	s.place(i, cj)
	s.place(j, ci)
}

// Clone returns a deep copy.
func (s *Solution) Clone() *Solution {
	return &Solution{
		n:     s.n,
		col:   slices.Clone(s.col),
		up:    slices.Clone(s.up),
		down:  slices.Clone(s.down),
		colls: s.colls,
	}
}

// CopyFrom overwrites s with o without allocating. Both must have the same size.
func (s *Solution) CopyFrom(o *Solution) {
	copy(s.col, o.col)
	copy(s.up, o.up)
	copy(s.down, o.down)
	s.colls = o.colls
}

// Check recomputes the counters from scratch and compares.
// Complexity: O(n).
func (s *Solution) Check() error {
	fresh, err := NewSolution(s.col)
	if err != nil {
		return fmt.Errorf("columns: %w: %w", ErrInconsistent, err)
	}
	if !slices.Equal(fresh.up, s.up) || !slices.Equal(fresh.down, s.down) {
		return fmt.Errorf("diagonal counts differ: %w", ErrInconsistent)
	}
	if fresh.colls != s.colls {
		return fmt.Errorf("colls=%d, recomputed %d: %w", s.colls, fresh.colls, ErrInconsistent)
	}

	return nil
}

// String draws the board, one row per line, 'Q' for a queen and '.' otherwise.
func (s *Solution) String() string {
	var b strings.Builder
	b.Grow(s.n * (2*s.n + 1))
	for r := 0; r < s.n; r++ {
		for c := 0; c < s.n; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			if s.col[r] == c {
				b.WriteByte('Q')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}

	return b.String()
}
