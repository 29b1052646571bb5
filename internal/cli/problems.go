package cli

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/katalvlaran/lvsearch/gcp"
	"github.com/katalvlaran/lvsearch/gpp"
	"github.com/katalvlaran/lvsearch/graph"
	"github.com/katalvlaran/lvsearch/qap"
	"github.com/katalvlaran/lvsearch/queens"
	"github.com/katalvlaran/lvsearch/search"
	"github.com/katalvlaran/lvsearch/ssp"
)

// instanceStream is the RNG stream reserved for instance generation, so the
// instance stays fixed while the search seed varies.
const instanceStream = 1 << 32

// outcome is the problem-independent view of one finished search.
type outcome struct {
	Problem   string
	Sense     search.Sense
	Objective float64
	Detail    string
	Stats     search.Stats
}

// problem builds a random instance from cfg and solves it.
type problem struct {
	name  string
	short string
	long  string
	solve func(ctx context.Context, cfg RunConfig, opts search.Options) (outcome, error)
}

var problems = []problem{
	{
		name:  "ssp",
		short: "Find a large stable set in a random graph",
		long: `Runs the oscillating tabu search for the maximum stable set problem on a
G(nodes, density) random graph. The objective is the stable set cardinality.`,
		solve: solveSSP,
	},
	{
		name:  "qap",
		short: "Solve a random symmetric quadratic assignment instance",
		long: `Runs pairwise-swap tabu search on a random symmetric QAP instance with
integer flows and distances below --scale. Costs use the doubled convention.`,
		solve: solveQAP,
	},
	{
		name:  "gpp",
		short: "Bisect a random graph with a small cut",
		long: `Runs tabu search for balanced graph bisection on a G(nodes, density) random
graph. --nodes must be even. The objective is the number of cut edges.`,
		solve: solveGPP,
	},
	{
		name:  "gcp",
		short: "Color a random graph with --colors colors",
		long: `Runs tabu search for a proper K-coloring of a G(nodes, density) random graph.
The search stops as soon as no conflicts remain. Diversification is not
available for this problem.`,
		solve: solveGCP,
	},
	{
		name:  "plateau",
		short: "Find a large stable set by plateau search",
		long: `Runs plateau search for the maximum stable set problem on a G(nodes, density)
random graph: greedy expansions by the --expansion rule alternate with plateau
phases of at most --length iterations. --diversify restarts from long-term
memory instead of the empty set's full candidate list.`,
		solve: solvePlateau,
	},
	{
		name:  "queens",
		short: "Place --nodes non-attacking queens",
		long: `Runs swap-based tabu search on an n-queens board with n = --nodes. The
objective is the number of diagonal collisions; the search stops at 0.`,
		solve: solveQueens,
	},
}

func lookupProblem(name string) (problem, error) {
	for _, p := range problems {
		if p.name == name {
			return p, nil
		}
	}
	names := make([]string, len(problems))
	for i, p := range problems {
		names[i] = p.name
	}

	return problem{}, fmt.Errorf("unknown problem %q (want one of %s)", name, strings.Join(names, ", "))
}

func instanceRand(cfg RunConfig) *rand.Rand {
	return search.DeriveRand(cfg.Seed, instanceStream)
}

func randomGraph(cfg RunConfig) (*graph.Graph, error) {
	return graph.Random(cfg.Nodes, cfg.Density, instanceRand(cfg))
}

func solveSSP(ctx context.Context, cfg RunConfig, opts search.Options) (outcome, error) {
	g, err := randomGraph(cfg)
	if err != nil {
		return outcome{}, err
	}
	res, err := ssp.TabuSearch(ctx, g, nil, opts)

	return outcome{
		Problem:   "ssp",
		Sense:     search.Maximize,
		Objective: float64(res.Cardinality),
		Detail:    fmt.Sprintf("stable set of %d nodes in G(%d, %.2f), %d edges", res.Cardinality, g.N(), cfg.Density, g.EdgeCount()),
		Stats:     res.Stats,
	}, err
}

func solveQAP(ctx context.Context, cfg RunConfig, opts search.Options) (outcome, error) {
	in, err := qap.RandomInstance(cfg.Nodes, cfg.Scale, instanceRand(cfg))
	if err != nil {
		return outcome{}, err
	}
	res, err := qap.TabuSearch(ctx, in, nil, opts)

	return outcome{
		Problem:   "qap",
		Sense:     search.Minimize,
		Objective: res.Cost,
		Detail:    fmt.Sprintf("assignment of %d facilities with cost %g", in.N(), res.Cost),
		Stats:     res.Stats,
	}, err
}

func solveGPP(ctx context.Context, cfg RunConfig, opts search.Options) (outcome, error) {
	g, err := randomGraph(cfg)
	if err != nil {
		return outcome{}, err
	}
	res, err := gpp.TabuSearch(ctx, g, nil, opts)

	return outcome{
		Problem:   "gpp",
		Sense:     search.Minimize,
		Objective: float64(res.Cut),
		Detail:    fmt.Sprintf("bisection cutting %d of %d edges", res.Cut, g.EdgeCount()),
		Stats:     res.Stats,
	}, err
}

func solveGCP(ctx context.Context, cfg RunConfig, opts search.Options) (outcome, error) {
	g, err := randomGraph(cfg)
	if err != nil {
		return outcome{}, err
	}
	res, err := gcp.TabuSearch(ctx, g, cfg.Colors, nil, opts)

	detail := fmt.Sprintf("proper %d-coloring", cfg.Colors)
	if !res.Proper() {
		detail = fmt.Sprintf("%d-coloring with %d conflicting edges", cfg.Colors, res.Conflicts/2)
	}

	return outcome{
		Problem:   "gcp",
		Sense:     search.Minimize,
		Objective: float64(res.Conflicts),
		Detail:    detail,
		Stats:     res.Stats,
	}, err
}

func solvePlateau(ctx context.Context, cfg RunConfig, opts search.Options) (outcome, error) {
	p, err := cfg.Plateau()
	if err != nil {
		return outcome{}, err
	}
	g, err := randomGraph(cfg)
	if err != nil {
		return outcome{}, err
	}
	res, err := ssp.PlateauSearch(ctx, g, p, opts)

	return outcome{
		Problem:   "plateau",
		Sense:     search.Maximize,
		Objective: float64(res.Cardinality),
		Detail:    fmt.Sprintf("stable set of %d nodes in G(%d, %.2f), %s expansion", res.Cardinality, g.N(), cfg.Density, p.Expansion),
		Stats:     res.Stats,
	}, err
}

func solveQueens(ctx context.Context, cfg RunConfig, opts search.Options) (outcome, error) {
	res, err := queens.TabuSearch(ctx, cfg.Nodes, nil, opts)

	detail := fmt.Sprintf("%d non-attacking queens", cfg.Nodes)
	if !res.Solved() {
		detail = fmt.Sprintf("%d queens with %d diagonal collisions", cfg.Nodes, res.Collisions)
	}

	return outcome{
		Problem:   "queens",
		Sense:     search.Minimize,
		Objective: float64(res.Collisions),
		Detail:    detail,
		Stats:     res.Stats,
	}, err
}
