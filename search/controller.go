// Package search - the iteration controller.
//
// State machine:
//
//	Constructing ──► Searching ──► Terminated
//	                   ▲   │
//	                   │   ▼
//	                  Blocked
//
//   - Constructing: the caller builds the Walker (initial solution, incremental
//     tables, best record); NewController accepts it and moves to Searching.
//   - Searching: each Step performs exactly one move via Walker.Move, updates
//     the best record via Walker.Record, reports new bests, then consults the
//     stagnation manager.
//   - Blocked: Walker.Move found no admissible move; the controller clears tabu
//     memory (Walker.Unblock) and retries the same iteration number. Each retry
//     consumes one unit of MaxIterations, which guarantees termination.
//   - Terminated: budget spent, target reached, time limit, cancellation,
//     exhausted neighborhood or an error.
//
// Concurrency:
//   - A Controller and its Walker belong to one goroutine. Cancellation and
//     time limits are observed only between Steps; a move is never interrupted.
package search

import (
	"context"
	"fmt"
	"time"
)

// Stats summarizes a run. It is a value snapshot, safe to keep after the run.
type Stats struct {
	State  State
	Reason Reason

	// Iterations is the number of applied moves.
	Iterations int
	// Spent is the budget consumed: applied moves plus blocked retries.
	Spent int
	// Blocked counts iterations on which no admissible move existed.
	Blocked int
	// Saturated counts the blocked iterations on which every element of a
	// Memory walker's tabu list was forbidden.
	Saturated int
	// Improvements counts overwrites of the best-found record.
	Improvements     int
	Intensifications int
	Diversifications int
	// Tolerance is the final stagnation tolerance D (0 when Diversify is off).
	Tolerance int

	Best    float64
	Elapsed time.Duration
}

// Controller drives a Walker through the search state machine.
type Controller struct {
	w     Walker
	r     Restarter
	v     Verifier
	m     Memory
	opts  Options
	sense Sense
	stag  *Stagnation

	stats      Stats
	it         int // iteration number handed to the Walker
	blockedRun int // consecutive blocked attempts
	start      time.Time
}

// NewController validates opts and wraps w.
//
// Errors: option sentinels (see Options.Validate); ErrNoRestarts when
// opts.Diversify is set and w does not implement Restarter.
func NewController(w Walker, opts Options) (*Controller, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		w:     w,
		opts:  opts,
		sense: w.Sense(),
		start: time.Now(),
	}
	c.r, _ = w.(Restarter)
	c.v, _ = w.(Verifier)
	c.m, _ = w.(Memory)
	if opts.Diversify {
		if c.r == nil {
			return nil, ErrNoRestarts
		}
		c.stag = NewStagnation()
	}
	c.stats.State = Searching
	c.stats.Best = w.BestObjective()

	if l := opts.Logger; l != nil {
		l.Debug("search started", "objective", w.Objective(), "best", c.stats.Best,
			"max_iterations", opts.MaxIterations, "tenure", opts.Tenure, "policy", opts.Policy, "diversify", opts.Diversify)
	}

	return c, nil
}

// Stagnation returns the stagnation manager, or nil when Diversify is off.
func (c *Controller) Stagnation() *Stagnation { return c.stag }

// Iteration returns the iteration number the next Step will use.
func (c *Controller) Iteration() int { return c.it }

// Stats returns a snapshot of the run statistics.
func (c *Controller) Stats() Stats {
	s := c.stats
	s.Best = c.w.BestObjective()
	s.Elapsed = time.Since(c.start)
	if c.stag != nil {
		s.Tolerance = c.stag.D()
	}

	return s
}

// Run steps until termination. ctx and TimeLimit are checked between steps.
//
// On cancellation it returns ctx.Err() together with valid stats; the Walker's
// best record is still the best feasible solution seen.
func (c *Controller) Run(ctx context.Context) (Stats, error) {
	var deadline time.Time
	if c.opts.TimeLimit > 0 {
		deadline = c.start.Add(c.opts.TimeLimit)
	}

	for {
		if err := ctx.Err(); err != nil {
			c.finish(ReasonCanceled)
			return c.Stats(), err
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			c.finish(ReasonTimeLimit)
			break
		}
		done, err := c.Step()
		if err != nil {
			return c.Stats(), err
		}
		if done {
			break
		}
	}

	if c.v != nil && c.opts.DriftCheckEvery > 0 {
		if err := c.v.Verify(); err != nil {
			c.stats.Reason = ReasonError
			return c.Stats(), fmt.Errorf("final check: %w", err)
		}
	}

	return c.Stats(), nil
}

// Step performs one unit of work: a move, or a blocked-recovery retry.
// It returns done=true once the run has terminated.
func (c *Controller) Step() (bool, error) {
	if c.stats.State == Terminated {
		return true, nil
	}
	if c.opts.UseTarget && c.sense.Reached(c.w.BestObjective(), c.opts.Target) {
		c.finish(ReasonTarget)
		return true, nil
	}
	if c.stats.Spent >= c.opts.MaxIterations {
		c.finish(ReasonBudget)
		return true, nil
	}

	c.stats.Spent++
	moved, err := c.w.Move(c.it)
	if err != nil {
		c.finish(ReasonError)
		return true, fmt.Errorf("iter %d: move: %w", c.it, err)
	}
	if !moved {
		return c.blocked()
	}
	c.blockedRun = 0
	c.stats.State = Searching

	p := c.w.Record(c.it)
	if p == NewBest {
		c.improved()
	}

	if c.stag != nil {
		c.stag.Observe(p)
		if c.stag.Due() {
			if err = c.intervene(); err != nil {
				c.finish(ReasonError)
				return true, err
			}
		}
	}

	if c.v != nil && c.opts.DriftCheckEvery > 0 && (c.it+1)%c.opts.DriftCheckEvery == 0 {
		if err = c.v.Verify(); err != nil {
			c.finish(ReasonError)
			return true, fmt.Errorf("iter %d: %w", c.it, err)
		}
	}

	if l := c.opts.Logger; l != nil {
		l.Debug("iteration", "iter", c.it+1, "objective", c.w.Objective(), "best", c.w.BestObjective(), "progress", p)
	}

	c.it++
	c.stats.Iterations = c.it

	return false, nil
}

// blocked handles an iteration without admissible moves.
func (c *Controller) blocked() (bool, error) {
	c.stats.Blocked++
	c.blockedRun++
	c.stats.State = Blocked
	saturated := c.m != nil && c.m.Tabu().Blocked(c.it)
	if saturated {
		c.stats.Saturated++
	}

	if c.blockedRun > c.opts.MaxBlockedRetries {
		if l := c.opts.Logger; l != nil {
			l.Info("neighborhood exhausted", "iter", c.it, "retries", c.blockedRun-1)
		}
		c.finish(ReasonExhausted)
		return true, nil
	}
	if l := c.opts.Logger; l != nil {
		l.Info("blocked, no admissible move: clearing tabu memory", "iter", c.it, "saturated", saturated)
	}
	c.w.Unblock(c.it)

	return false, nil
}

// intervene runs the intensify/diversify action the stagnation manager asks for.
func (c *Controller) intervene() error {
	phase := c.stag.Phase()
	switch phase {
	case PhaseIntensify:
		c.r.Intensify(c.it)
		c.stats.Intensifications++
	case PhaseDiversify:
		p, err := c.r.Diversify(c.it)
		if err != nil {
			return fmt.Errorf("iter %d: diversify: %w", c.it, err)
		}
		c.stats.Diversifications++
		if p == NewBest {
			c.improved()
		}
	}
	if l := c.opts.Logger; l != nil {
		l.Info(phase.String(), "iter", c.it, "tolerance", c.stag.D(), "objective", c.w.Objective(), "best", c.w.BestObjective())
	}
	c.stag.Advance()

	return nil
}

// improved accounts for a new best record and notifies the reporter.
func (c *Controller) improved() {
	c.stats.Improvements++
	best := c.w.BestObjective()
	if c.opts.Report != nil {
		c.opts.Report(best, fmt.Sprintf("iter:%d", c.it))
	}
	if l := c.opts.Logger; l != nil {
		l.Info("new best", "iter", c.it, "objective", best)
	}
}

func (c *Controller) finish(r Reason) {
	c.stats.State = Terminated
	c.stats.Reason = r
}

// Run is shorthand for NewController(w, opts) followed by Controller.Run.
func Run(ctx context.Context, w Walker, opts Options) (Stats, error) {
	c, err := NewController(w, opts)
	if err != nil {
		return Stats{}, err
	}

	return c.Run(ctx)
}
