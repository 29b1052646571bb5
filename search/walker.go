package search

import "github.com/katalvlaran/lvsearch/tabu"

// Progress classifies the outcome of one iteration for the best-found record
// and the stagnation manager.
type Progress int

const (
	// NoProgress: the iteration neither reached a new best nor improved locally.
	NoProgress Progress = iota
	// Improved: the live solution improved on its last feasible value but
	// did not beat the best-found record.
	Improved
	// NewBest: the best-found record was overwritten with a strictly better
	// feasible solution.
	NewBest
)

// String returns a short label for logs.
func (p Progress) String() string {
	switch p {
	case Improved:
		return "improved"
	case NewBest:
		return "new-best"
	default:
		return "none"
	}
}

// Sense is the optimization direction of a Walker's objective.
type Sense int

const (
	// Minimize: smaller objectives are better (assignment cost, cut size, conflicts).
	Minimize Sense = iota
	// Maximize: larger objectives are better (stable set cardinality).
	Maximize
)

// Better reports whether a is strictly better than b.
func (s Sense) Better(a, b float64) bool {
	if s == Maximize {
		return a > b
	}

	return a < b
}

// Reached reports whether a is at least as good as target.
func (s Sense) Reached(a, target float64) bool {
	if s == Maximize {
		return a >= target
	}

	return a <= target
}

// Walker is the mutable state of one local-search run: a solution with its
// incremental bookkeeping, a tabu list and a best-found record. Run drives a
// Walker; a Walker never loops on its own.
//
// Contracts:
//   - Move evaluates the neighborhood, applies exactly one admissible move and
//     updates every incremental table before returning true. When no move is
//     admissible it changes nothing and returns false (blocked).
//   - Unblock clears tabu memory so that the next Move at the same iteration
//     can succeed.
//   - Record is called after every successful Move; it is the only method that
//     may overwrite the best-found record (besides Restarter.Diversify, whose
//     reconstruction can itself be a new best).
//   - BestObjective is monotone over a run in the Walker's Sense.
type Walker interface {
	Sense() Sense
	Objective() float64
	BestObjective() float64
	Move(it int) (bool, error)
	Unblock(it int)
	Record(it int) Progress
}

// Restarter is implemented by Walkers that support stagnation handling.
type Restarter interface {
	// Intensify clears tabu memory and reverts the live solution to the
	// best-found snapshot.
	Intensify(it int)
	// Diversify rebuilds the live solution from a rarely used element and
	// clears tabu memory. The rebuilt solution may be a new best.
	Diversify(it int) (Progress, error)
}

// Memory is implemented by Walkers that expose their tabu list.
type Memory interface {
	Tabu() *tabu.List
}

// Verifier is implemented by Walkers whose incremental objective can be
// checked against a from-scratch recomputation.
type Verifier interface {
	Verify() error
}

// State is the controller state.
type State int

const (
	Constructing State = iota
	Searching
	Blocked
	Terminated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Constructing:
		return "constructing"
	case Searching:
		return "searching"
	case Blocked:
		return "blocked"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Reason tells why a run terminated.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonBudget: MaxIterations units were spent.
	ReasonBudget
	// ReasonTarget: the best objective reached Options.Target.
	ReasonTarget
	// ReasonExhausted: MaxBlockedRetries consecutive blocked iterations; the
	// neighborhood is empty even without tabu restrictions.
	ReasonExhausted
	// ReasonTimeLimit: Options.TimeLimit elapsed.
	ReasonTimeLimit
	// ReasonCanceled: the context was canceled.
	ReasonCanceled
	// ReasonError: a Walker or Verifier returned an error.
	ReasonError
)

// String returns the reason label.
func (r Reason) String() string {
	switch r {
	case ReasonBudget:
		return "budget"
	case ReasonTarget:
		return "target"
	case ReasonExhausted:
		return "exhausted"
	case ReasonTimeLimit:
		return "time-limit"
	case ReasonCanceled:
		return "canceled"
	case ReasonError:
		return "error"
	default:
		return "none"
	}
}
