package ssp

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/search"
	"github.com/katalvlaran/lvsearch/tabu"
)

// Walker is the stable set search state driven by search.Controller.
//
// Moves oscillate around the feasibility boundary:
//   - feasible S: insert the admissible non-member with the fewest member
//     neighbors, then forbid removing it for InsertTenure(card) iterations;
//   - infeasible S: drop the admissible member with the most member
//     neighbors, then forbid re-inserting it for RemoveTenure(card) iterations.
//
// Ties are broken uniformly at random. A tabu move is still admitted when it
// yields a stable set larger than the best one recorded (aspiration).
//
// Walker implements search.Walker, search.Restarter and search.Verifier.
type Walker struct {
	g    *graph.Graph
	n    int
	base float64

	sol      *Solution
	best     *Solution
	bestCard int
	lastCard int

	list  *tabu.List
	rng   *rand.Rand
	ties  search.Ties
	usage []int

	// clearOnBest lifts tabu memory whenever a new best is recorded.
	clearOnBest bool
}

// NewWalker validates the instance and the initial solution and returns a
// walker ready for search.Run. A nil initial builds one with Construct.
//
// Errors: ErrNilGraph, ErrBadNode, ErrInfeasibleStart, option sentinels.
func NewWalker(g *graph.Graph, initial []int, opts search.Options) (*Walker, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	rng := search.NewRand(opts.Seed)
	var err error
	if initial == nil {
		if initial, err = Construct(g, rng); err != nil {
			return nil, err
		}
	}
	sol, err := NewSolution(g, initial)
	if err != nil {
		return nil, err
	}
	if !sol.Feasible() {
		return nil, fmt.Errorf("%d conflicting edges: %w", sol.Infeasibility(), ErrInfeasibleStart)
	}

	w := &Walker{
		g:           g,
		n:           g.N(),
		base:        opts.Tenure,
		sol:         sol,
		best:        sol.Clone(),
		bestCard:    sol.Cardinality(),
		lastCard:    sol.Cardinality(),
		list:        tabu.NewList(g.N(), opts.Policy),
		rng:         rng,
		usage:       make([]int, g.N()),
		clearOnBest: opts.Diversify,
	}
	w.touch()

	return w, nil
}

// Sense implements search.Walker.
func (w *Walker) Sense() search.Sense { return search.Maximize }

// Objective returns the cardinality of the current, possibly infeasible, set.
func (w *Walker) Objective() float64 { return float64(w.sol.Cardinality()) }

// BestObjective returns the cardinality of the best stable set.
func (w *Walker) BestObjective() float64 { return float64(w.bestCard) }

// Solution returns the live current solution. Callers must not mutate it.
func (w *Walker) Solution() *Solution { return w.sol }

// Tabu returns the tabu list.
func (w *Walker) Tabu() *tabu.List { return w.list }

// Usage returns how many improving solutions contained i.
func (w *Walker) Usage(i int) int { return w.usage[i] }

// BestNodes returns the best stable set found, sorted ascending.
func (w *Walker) BestNodes() []int { return w.best.Nodes() }

// BestCardinality returns the size of the best stable set found.
func (w *Walker) BestCardinality() int { return w.bestCard }

// Move applies one insertion or removal. It returns false when every
// candidate is tabu.
func (w *Walker) Move(it int) (bool, error) {
	card := w.sol.Cardinality()
	tIn := tabu.InsertTenure(w.base, card)
	tOut := tabu.RemoveTenure(w.base, w.n, card)

	if w.sol.Feasible() {
		i, ok := w.bestAdd(it, tOut)
		if !ok {
			return false, nil
		}
		w.list.Forbid(i, it, tIn)
		w.sol.ApplyAdd(i)

		return true, nil
	}

	i, ok := w.bestDrop(it, tIn)
	if !ok {
		return false, nil
	}
	w.list.Forbid(i, it, tOut)
	w.sol.ApplyDrop(i)

	return true, nil
}

// bestAdd scans non-members for the admissible one with the fewest conflicts.
// tenure is the one their markers were set with on removal.
func (w *Walker) bestAdd(it, tenure int) (int, bool) {
	var (
		card  = w.sol.Cardinality()
		best  = w.n + 1
		delta int
	)
	w.ties.Reset()
	for i := 0; i < w.n; i++ {
		if w.sol.Contains(i) {
			continue
		}
		delta = w.sol.EvaluateAdd(i)
		if delta > best {
			continue
		}
		aspires := delta == 0 && card+1 > w.bestCard
		if !w.list.Admit(i, it, tenure, aspires, w.rng) {
			continue
		}
		if delta < best {
			best = delta
			w.ties.Reset()
		}
		w.ties.Add(i)
	}

	return w.ties.Pick(w.rng)
}

// bestDrop scans members for the admissible one with the most conflicts.
func (w *Walker) bestDrop(it, tenure int) (int, bool) {
	var (
		card   = w.sol.Cardinality()
		infeas = w.sol.Infeasibility()
		best   = -1
		delta  int
	)
	w.ties.Reset()
	for i := 0; i < w.n; i++ {
		if !w.sol.Contains(i) {
			continue
		}
		delta = w.sol.EvaluateDrop(i)
		if delta < best {
			continue
		}
		aspires := infeas == delta && card-1 > w.bestCard
		if !w.list.Admit(i, it, tenure, aspires, w.rng) {
			continue
		}
		if delta > best {
			best = delta
			w.ties.Reset()
		}
		w.ties.Add(i)
	}

	return w.ties.Pick(w.rng)
}

// Unblock clears tabu memory so the iteration can be retried.
func (w *Walker) Unblock(it int) { w.list.Clear(it) }

// Record updates the best record after a move. Only stable sets count:
// a larger one than ever seen is NewBest, one larger than the previous
// stable set is Improved.
func (w *Walker) Record(it int) search.Progress {
	if !w.sol.Feasible() {
		return search.NoProgress
	}

	return w.recordFeasible(it)
}

func (w *Walker) recordFeasible(it int) search.Progress {
	card := w.sol.Cardinality()
	prev := w.lastCard
	w.lastCard = card

	switch {
	case card > w.bestCard:
		w.best.CopyFrom(w.sol)
		w.bestCard = card
		w.touch()
		if w.clearOnBest {
			w.list.Clear(it)
		}
		return search.NewBest
	case card > prev:
		w.touch()
		return search.Improved
	default:
		return search.NoProgress
	}
}

// touch bumps the usage counter of every member of the current set.
func (w *Walker) touch() {
	for i := 0; i < w.n; i++ {
		if w.sol.Contains(i) {
			w.usage[i]++
		}
	}
}

// Intensify reverts to the best stable set and clears tabu memory.
func (w *Walker) Intensify(it int) {
	w.list.Clear(it)
	w.sol.CopyFrom(w.best)
	w.lastCard = w.bestCard
}

// Diversify rebuilds a maximal stable set around the least used node outside
// the current set, then clears tabu memory.
func (w *Walker) Diversify(it int) (search.Progress, error) {
	if w.n == 0 {
		return search.NoProgress, nil
	}
	seed := w.leastUsed()
	rebuild(w.sol, seed, search.Perm(w.n, w.rng))
	w.list.Clear(it)

	return w.recordFeasible(it), nil
}

// leastUsed picks a minimum-usage non-member; when S holds every node the
// whole node set competes.
func (w *Walker) leastUsed() int {
	var (
		best    = -1
		outside = w.sol.Cardinality() < w.n
	)
	w.ties.Reset()
	for i := 0; i < w.n; i++ {
		if outside && w.sol.Contains(i) {
			continue
		}
		u := w.usage[i]
		if best >= 0 && u > best {
			continue
		}
		if best < 0 || u < best {
			best = u
			w.ties.Reset()
		}
		w.ties.Add(i)
	}
	i, _ := w.ties.Pick(w.rng)

	return i
}

// Verify checks the incremental tables of the current and best solutions.
func (w *Walker) Verify() error {
	if err := w.sol.Check(); err != nil {
		return fmt.Errorf("current: %w", err)
	}
	if err := w.best.Check(); err != nil {
		return fmt.Errorf("best: %w", err)
	}
	if !w.best.Feasible() || w.best.Cardinality() != w.bestCard {
		return fmt.Errorf("best record card=%d feasible=%t, want card=%d: %w",
			w.best.Cardinality(), w.best.Feasible(), w.bestCard, ErrInconsistent)
	}

	return nil
}
