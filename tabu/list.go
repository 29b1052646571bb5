// Package tabu implements the short-term memory of a tabu search: a
// forbidden-until marker per move element, an admission test with an
// aspiration override, and the adaptive tenure formulas.
//
// Elements are dense integers 0..m-1 chosen by the caller (a node for
// stable-set moves, a location*n+facility pair for assignment swaps).
//
// Concurrency:
//   - A List belongs to exactly one search run; it is not safe for concurrent use.
package tabu

import (
	"errors"
	"math/rand"
)

// ErrBadPolicy is returned by Policy.Validate for unknown admission policies.
var ErrBadPolicy = errors.New("tabu: unknown admission policy")

// Policy selects how tabu status is tested.
type Policy int

const (
	// Hard admits element e at iteration it iff until[e] <= it.
	Hard Policy = iota
	// Soft admits a tabu element with probability 1 - (until[e]-it)/tenure,
	// so markers fade out gradually instead of expiring at once.
	Soft
)

// String returns "hard" or "soft".
func (p Policy) String() string {
	switch p {
	case Hard:
		return "hard"
	case Soft:
		return "soft"
	default:
		return "unknown"
	}
}

// Validate reports ErrBadPolicy for values other than Hard and Soft.
func (p Policy) Validate() error {
	if p != Hard && p != Soft {
		return ErrBadPolicy
	}

	return nil
}

// ParsePolicy maps "hard"/"soft" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "hard", "":
		return Hard, nil
	case "soft":
		return Soft, nil
	default:
		return Hard, ErrBadPolicy
	}
}

// List holds forbidden_until markers.
//
// Invariant: element e may be used at iteration it only if until[e] <= it,
// unless the aspiration criterion holds (see Admit).
type List struct {
	until  []int
	policy Policy
}

// NewList returns a List over m elements with every marker at 0.
// Complexity: O(m).
func NewList(m int, policy Policy) *List {
	if m < 0 {
		m = 0
	}

	return &List{until: make([]int, m), policy: policy}
}

// Len returns the number of tracked elements.
func (l *List) Len() int { return len(l.until) }

// Policy returns the admission policy.
func (l *List) Policy() Policy { return l.policy }

// Until returns the forbidden-until iteration of e.
func (l *List) Until(e int) int { return l.until[e] }

// Forbid marks e as tabu until iteration it+tenure.
// Complexity: O(1).
func (l *List) Forbid(e, it, tenure int) {
	l.until[e] = it + tenure
}

// Set overwrites the marker of e. Used to seed a List in tests and restarts.
func (l *List) Set(e, until int) {
	l.until[e] = until
}

// Tabu reports whether e is still forbidden at iteration it.
// Complexity: O(1).
func (l *List) Tabu(e, it int) bool {
	return l.until[e] > it
}

// Admit is the admission test for element e at iteration it.
//
// Rules:
//   - aspires == true admits unconditionally (the move reaches a new best).
//   - Hard: admitted iff until[e] <= it.
//   - Soft: admitted iff rng.Float64() > (until[e]-it)/tenure; an expired
//     marker (until[e] <= it) is always admitted without consuming randomness.
//
// tenure is the tenure the marker would have been set with (it scales the
// soft fade-out); rng is consulted only by Soft.
//
// Complexity: O(1).
func (l *List) Admit(e, it, tenure int, aspires bool, rng *rand.Rand) bool {
	if aspires {
		return true
	}
	left := l.until[e] - it
	if left <= 0 {
		return true
	}
	if l.policy != Soft || rng == nil {
		return false
	}
	if tenure < 1 {
		tenure = 1
	}

	return rng.Float64() > float64(left)/float64(tenure)
}

// Clear lifts every marker to at most it, so nothing is tabu at it.
// It never raises a marker; expired history keeps its value, which the
// blocked-recovery and intensification steps rely on.
//
// Complexity: O(m).
func (l *List) Clear(it int) {
	for e := range l.until {
		if l.until[e] > it {
			l.until[e] = it
		}
	}
}

// Blocked reports whether every element is tabu at it under the hard rule.
// An empty list is never blocked.
// Complexity: O(m).
func (l *List) Blocked(it int) bool {
	if len(l.until) == 0 {
		return false
	}
	for _, u := range l.until {
		if u <= it {
			return false
		}
	}

	return true
}
