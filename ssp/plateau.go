package ssp

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/search"
)

var (
	// ErrBadLength indicates a negative plateau length.
	ErrBadLength = errors.New("ssp: plateau length must be >= 0")

	// ErrBadExpansion indicates an unknown expansion rule.
	ErrBadExpansion = errors.New("ssp: unknown expansion rule")
)

// Expansion selects the node a plateau search inserts next among the nodes
// that can join the set without conflict.
type Expansion int

const (
	// ExpandRandom picks a candidate uniformly.
	ExpandRandom Expansion = iota
	// ExpandStaticDegree picks a candidate of minimum degree in the graph.
	ExpandStaticDegree
	// ExpandDynamicDegree picks a candidate with the fewest neighbors among
	// the remaining candidates.
	ExpandDynamicDegree
)

var expansionNames = [...]string{"random", "static", "dynamic"}

// String returns the rule name.
func (e Expansion) String() string {
	if e < 0 || int(e) >= len(expansionNames) {
		return fmt.Sprintf("Expansion(%d)", int(e))
	}
	return expansionNames[e]
}

// ParseExpansion maps "random", "static" or "dynamic" to an Expansion.
func ParseExpansion(s string) (Expansion, error) {
	for i, name := range expansionNames {
		if strings.EqualFold(s, name) {
			return Expansion(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrBadExpansion)
}

// Plateau configures PlateauSearch.
type Plateau struct {
	// Length bounds the iterations of one plateau phase. Every node
	// replacement costs two (an insertion and a removal). 0 disables plateau
	// phases, leaving repeated greedy expansions.
	Length int

	Expansion Expansion

	// Memory restarts from long-term memory: with probability 1/2 from the
	// best set (intensification), otherwise from the nodes that joined
	// expanded sets least often (diversification).
	Memory bool
}

// Validate checks the plateau parameters.
func (p Plateau) Validate() error {
	if p.Length < 0 {
		return fmt.Errorf("Length=%d: %w", p.Length, ErrBadLength)
	}
	if p.Expansion < ExpandRandom || p.Expansion > ExpandDynamicDegree {
		return fmt.Errorf("Expansion=%d: %w", int(p.Expansion), ErrBadExpansion)
	}
	return nil
}

// PlateauSearch looks for a maximum stable set by walking the plateaux of the
// stable set landscape instead of crossing into infeasible sets.
//
// Each restart empties the set and alternates two phases until neither can
// continue:
//   - expansion inserts conflict-free nodes chosen by p.Expansion until the
//     set is maximal;
//   - the plateau phase inserts a node with exactly one member neighbor and
//     removes that neighbor, keeping the cardinality, and hands back to
//     expansion as soon as the removal frees a node. It spends at most
//     p.Length iterations.
//
// opts supplies MaxIterations (every insertion and removal costs one),
// Seed, TimeLimit, UseTarget/Target, Report, Logger and DriftCheckEvery
// (a final consistency check when > 0). Tenure, Policy and Diversify do not
// apply. Stats counts memory restarts from the best set as intensifications
// and the others as diversifications.
//
// On cancellation the result still holds the best set and the error is ctx.Err().
//
// Errors: ErrNilGraph, ErrBadLength, ErrBadExpansion, search option sentinels.
func PlateauSearch(ctx context.Context, g *graph.Graph, p Plateau, opts search.Options) (Result, error) {
	if g == nil {
		return Result{}, ErrNilGraph
	}
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	r := newPlateauRun(g, p, opts)
	err := r.run(ctx)
	if err == nil && opts.DriftCheckEvery > 0 {
		err = r.verify()
	}

	return Result{
		Nodes:       r.best.Nodes(),
		Cardinality: r.bestCard,
		Stats:       r.stats,
	}, err
}

// plateauRun is the state of one PlateauSearch.
type plateauRun struct {
	g    *graph.Graph
	n    int
	p    Plateau
	opts search.Options

	sol      *Solution
	best     *Solution
	bestCard int

	rng  *rand.Rand
	ties search.Ties

	// marked and degree serve ExpandDynamicDegree: membership of the
	// candidate list and the number of marked neighbors.
	marked []bool
	degree []int
	ltm    []int

	stats search.Stats
	begin time.Time
}

func newPlateauRun(g *graph.Graph, p Plateau, opts search.Options) *plateauRun {
	r := &plateauRun{
		g:     g,
		n:     g.N(),
		p:     p,
		opts:  opts,
		sol:   newEmpty(g),
		best:  newEmpty(g),
		rng:   search.NewRand(opts.Seed),
		begin: time.Now(),
	}
	if p.Expansion == ExpandDynamicDegree {
		r.marked = make([]bool, r.n)
		r.degree = make([]int, r.n)
	}
	if p.Memory {
		r.ltm = make([]int, r.n)
	}
	r.stats.State = search.Searching

	return r
}

func (r *plateauRun) run(ctx context.Context) error {
	if l := r.opts.Logger; l != nil {
		l.Debug("plateau search started", "nodes", r.n, "length", r.p.Length,
			"expansion", r.p.Expansion, "memory", r.p.Memory, "max_iterations", r.opts.MaxIterations)
	}
	defer r.finish()

	for {
		if stop, err := r.halt(ctx); stop {
			return err
		}
		r.sol.Reset()
		add := r.seeds()

		for len(add) > 0 {
			if stop, err := r.halt(ctx); stop {
				return err
			}
			if r.p.Memory {
				r.expandThrough(add)
				r.remember()
			} else {
				r.expand(add)
			}
			r.record()
			add = r.plateau(min(r.p.Length, r.opts.MaxIterations-r.stats.Spent))
		}
	}
}

// halt sets the termination reason and reports whether the run must stop.
func (r *plateauRun) halt(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		r.stats.Reason = search.ReasonCanceled
		return true, err
	}
	switch {
	case r.opts.UseTarget && search.Maximize.Reached(float64(r.bestCard), r.opts.Target):
		r.stats.Reason = search.ReasonTarget
	case r.stats.Spent >= r.opts.MaxIterations || r.n == 0:
		r.stats.Reason = search.ReasonBudget
	case r.opts.TimeLimit > 0 && time.Since(r.begin) > r.opts.TimeLimit:
		r.stats.Reason = search.ReasonTimeLimit
	default:
		return false, nil
	}
	return true, nil
}

func (r *plateauRun) finish() {
	r.stats.State = search.Terminated
	r.stats.Iterations = r.stats.Spent
	r.stats.Best = float64(r.bestCard)
	r.stats.Elapsed = time.Since(r.begin)
	if l := r.opts.Logger; l != nil {
		l.Debug("plateau search finished", "best", r.bestCard, "spent", r.stats.Spent, "reason", r.stats.Reason)
	}
}

// seeds returns the candidates the next restart expands from.
func (r *plateauRun) seeds() []int {
	if !r.p.Memory {
		return allNodes(r.n)
	}
	if r.rng.Float64() < 0.5 {
		r.stats.Intensifications++
		if r.bestCard > 0 {
			return r.best.Nodes()
		}
		return allNodes(r.n)
	}

	r.stats.Diversifications++
	least := r.ltm[0]
	for _, u := range r.ltm[1:] {
		least = min(least, u)
	}
	out := make([]int, 0, r.n)
	for i, u := range r.ltm {
		if u == least {
			out = append(out, i)
		}
	}
	return out
}

func allNodes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// expand inserts nodes of add, which must all be conflict-free non-members,
// until none is left or the budget is spent. add is reused as scratch.
func (r *plateauRun) expand(add []int) {
	if r.p.Expansion == ExpandDynamicDegree {
		r.countDegrees(add)
		defer r.unmark(add)
	}
	for len(add) > 0 && r.stats.Spent < r.opts.MaxIterations {
		i := r.choose(add)
		if r.p.Expansion == ExpandDynamicDegree {
			for _, j := range r.g.Neighbors(i) {
				if r.marked[j] {
					r.leave(j)
				}
			}
			r.leave(i)
		}
		r.sol.ApplyAdd(i)
		r.stats.Spent++
		add = r.addable(add)
	}
}

// expandThrough expands from add first, then from every node still addable.
func (r *plateauRun) expandThrough(add []int) {
	r.expand(add)
	r.expand(r.addable(allNodes(r.n)))
}

// addable filters add in place down to conflict-free non-members.
func (r *plateauRun) addable(add []int) []int {
	out := add[:0]
	for _, j := range add {
		if !r.sol.Contains(j) && r.sol.Conflicts(j) == 0 {
			out = append(out, j)
		}
	}
	return out
}

// choose picks the next node to insert according to the expansion rule.
func (r *plateauRun) choose(add []int) int {
	if r.p.Expansion == ExpandRandom {
		return add[r.rng.Intn(len(add))]
	}

	best := -1
	r.ties.Reset()
	for _, i := range add {
		d := r.g.Degree(i)
		if r.p.Expansion == ExpandDynamicDegree {
			d = r.degree[i]
		}
		if best >= 0 && d > best {
			continue
		}
		if best < 0 || d < best {
			best = d
			r.ties.Reset()
		}
		r.ties.Add(i)
	}
	i, _ := r.ties.Pick(r.rng)

	return i
}

func (r *plateauRun) countDegrees(add []int) {
	for _, i := range add {
		r.marked[i] = true
	}
	for _, i := range add {
		r.degree[i] = 0
		for _, j := range r.g.Neighbors(i) {
			if r.marked[j] {
				r.degree[i]++
			}
		}
	}
}

// leave removes x from the candidate list.
func (r *plateauRun) leave(x int) {
	r.marked[x] = false
	for _, k := range r.g.Neighbors(x) {
		if r.marked[k] {
			r.degree[k]--
		}
	}
}

func (r *plateauRun) unmark(add []int) {
	for _, i := range add {
		r.marked[i] = false
	}
}

// plateau swaps one-conflict nodes into the set within limit iterations.
// It returns the nodes a removal freed, or nil when the phase ends without
// an expansion opportunity.
func (r *plateauRun) plateau(limit int) []int {
	used := 0
	defer func() { r.stats.Spent += used }()

	for used+2 <= limit {
		v, ok := r.oneConflict()
		if !ok {
			return nil
		}
		used += 2
		r.sol.ApplyAdd(v)
		if free := r.replace(v); len(free) > 0 {
			return free
		}
	}
	return nil
}

// oneConflict picks a non-member with exactly one member neighbor.
func (r *plateauRun) oneConflict() (int, bool) {
	r.ties.Reset()
	for i := 0; i < r.n; i++ {
		if !r.sol.Contains(i) && r.sol.Conflicts(i) == 1 {
			r.ties.Add(i)
		}
	}
	return r.ties.Pick(r.rng)
}

// replace drops the member in conflict with the freshly inserted v and
// returns its neighbors that became addable.
func (r *plateauRun) replace(v int) []int {
	var out []int
	for _, i := range r.g.Neighbors(v) {
		if !r.sol.Contains(i) {
			continue
		}
		r.sol.ApplyDrop(i)
		for _, j := range r.g.Neighbors(i) {
			if !r.sol.Contains(j) && r.sol.Conflicts(j) == 0 {
				out = append(out, j)
			}
		}
		break
	}
	return out
}

// remember counts the members of an expanded set in long-term memory.
func (r *plateauRun) remember() {
	for i := 0; i < r.n; i++ {
		if r.sol.Contains(i) {
			r.ltm[i]++
		}
	}
}

// record keeps the current set when it beats the best one.
func (r *plateauRun) record() {
	card := r.sol.Cardinality()
	if card <= r.bestCard {
		return
	}
	r.best.CopyFrom(r.sol)
	r.bestCard = card
	r.stats.Improvements++
	if r.opts.Report != nil {
		r.opts.Report(float64(card), fmt.Sprintf("iter:%d", r.stats.Spent))
	}
	if l := r.opts.Logger; l != nil {
		l.Info("new best", "iter", r.stats.Spent, "objective", card)
	}
}

func (r *plateauRun) verify() error {
	if err := r.sol.Check(); err != nil {
		return fmt.Errorf("final check: current: %w", err)
	}
	if err := r.best.Check(); err != nil {
		return fmt.Errorf("final check: best: %w", err)
	}
	if !r.best.Feasible() {
		return fmt.Errorf("final check: best set has %d conflicting edges: %w", r.best.Infeasibility(), ErrInconsistent)
	}
	return nil
}
