// Package search - run parameters and their validation.
//
// Options replaces process-wide knobs (log flags, module-level tabu tables):
// every run receives its own copy, so two runs never share mutable state.
package search

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/lvsearch/tabu"
)

// Sentinel errors for option validation.
var (
	// ErrBadIterations indicates MaxIterations < 0.
	ErrBadIterations = errors.New("search: max iterations must be >= 0")

	// ErrBadTenure indicates a negative or non-finite tenure.
	ErrBadTenure = errors.New("search: tenure must be finite and >= 0")

	// ErrBadPolicy indicates an unknown admission policy.
	ErrBadPolicy = errors.New("search: unknown admission policy")

	// ErrBadTimeLimit indicates a negative time limit.
	ErrBadTimeLimit = errors.New("search: time limit must be >= 0")

	// ErrBadDriftCheck indicates a negative drift-check period.
	ErrBadDriftCheck = errors.New("search: drift check period must be >= 0")

	// ErrBadRetries indicates MaxBlockedRetries < 1.
	ErrBadRetries = errors.New("search: max blocked retries must be >= 1")

	// ErrNoRestarts is returned by Run when Diversify is requested for a
	// Walker that does not implement Restarter.
	ErrNoRestarts = errors.New("search: walker does not support intensification/diversification")
)

// Reporter receives the objective of every new best-found solution together
// with a short annotation ("iter:17"). It is called synchronously after the
// move completed; it must not block for long and must not mutate the run.
type Reporter func(objective float64, note string)

// Defaults.
const (
	DefaultMaxIterations     = 1000
	DefaultTenure            = 10.0
	DefaultMaxBlockedRetries = 3
)

// Options configures one search run.
type Options struct {
	// MaxIterations is the iteration budget. Every applied move and every
	// blocked-recovery retry consumes one unit. 0 returns the initial solution.
	MaxIterations int

	// Tenure is the base tabu tenure. Its meaning is problem specific:
	// the stable set search reads it as a percentage for the adaptive
	// insert/remove tenures; assignment and bisection use floor(Tenure)
	// iterations; coloring draws 1+floor(Tenure*U) per move.
	Tenure float64

	// Policy selects hard (default) or soft tabu admission.
	Policy tabu.Policy

	// Seed drives the single RNG stream of the run (0 ⇒ DefaultSeed).
	Seed int64

	// TimeLimit stops the run at an iteration boundary once exceeded (0 = none).
	TimeLimit time.Duration

	// Diversify enables the stagnation manager (intensify/diversify cycles).
	Diversify bool

	// UseTarget stops the run as soon as the best objective reaches Target
	// (>= for maximization, <= for minimization).
	UseTarget bool
	Target    float64

	// DriftCheckEvery > 0 re-derives the incrementally maintained objective
	// from scratch every that many iterations and once at the end, failing
	// the run on mismatch. Intended for debugging and tests.
	DriftCheckEvery int

	// MaxBlockedRetries bounds consecutive blocked iterations; past it the
	// neighborhood is considered exhausted and the run terminates normally.
	MaxBlockedRetries int

	// Report is invoked on every improvement of the best-found record.
	Report Reporter

	// Logger receives debug traces per iteration and info lines for
	// blocked/intensify/diversify events. nil disables logging.
	Logger *log.Logger
}

// DefaultOptions returns the recommended defaults: 1000 iterations, tenure 10,
// hard admission, default seed, no time limit, no diversification.
func DefaultOptions() Options {
	return Options{
		MaxIterations:     DefaultMaxIterations,
		Tenure:            DefaultTenure,
		Policy:            tabu.Hard,
		MaxBlockedRetries: DefaultMaxBlockedRetries,
	}
}

// Validate checks option domains and returns the first violated sentinel.
// Complexity: O(1).
func (o Options) Validate() error {
	if o.MaxIterations < 0 {
		return fmt.Errorf("MaxIterations=%d: %w", o.MaxIterations, ErrBadIterations)
	}
	if math.IsNaN(o.Tenure) || math.IsInf(o.Tenure, 0) || o.Tenure < 0 {
		return fmt.Errorf("Tenure=%g: %w", o.Tenure, ErrBadTenure)
	}
	if err := o.Policy.Validate(); err != nil {
		return fmt.Errorf("Policy=%d: %w: %w", o.Policy, ErrBadPolicy, err)
	}
	if o.TimeLimit < 0 {
		return fmt.Errorf("TimeLimit=%s: %w", o.TimeLimit, ErrBadTimeLimit)
	}
	if o.DriftCheckEvery < 0 {
		return fmt.Errorf("DriftCheckEvery=%d: %w", o.DriftCheckEvery, ErrBadDriftCheck)
	}
	if o.MaxBlockedRetries < 1 {
		return fmt.Errorf("MaxBlockedRetries=%d: %w", o.MaxBlockedRetries, ErrBadRetries)
	}

	return nil
}

// FixedTenure returns floor(Tenure) for problems with a constant tenure.
func (o Options) FixedTenure() int {
	return int(o.Tenure)
}
