package cli

import (
	"context"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// version is injected with -ldflags at build time.
var version = "dev"

// Execute runs the lvsearch CLI with stdout and stderr.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree. Results go to out, logs to errOut.
//
// Every command accepts the run flags below; a --config file (.toml or .yaml)
// supplies the same keys, and flags set explicitly win over the file.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	var (
		verbose    bool
		configPath string
		flags      = DefaultRunConfig()
	)

	root := &cobra.Command{
		Use:          "lvsearch",
		Short:        "lvsearch runs tabu search on combinatorial problems",
		Long:         `lvsearch runs tabu search with intensification and diversification on random instances of the stable set, quadratic assignment, graph bisection and graph coloring problems, plateau search for stable sets, and tabu search for n-queens boards.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(errOut, level).With("run", uuid.NewString()[:8])
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVarP(&configPath, "config", "c", "", "run config file (.toml, .yaml)")
	pf.IntVarP(&flags.Iterations, "iterations", "n", flags.Iterations, "iteration budget")
	pf.Float64Var(&flags.Tenure, "tenure", flags.Tenure, "tabu tenure (percent of the set size for ssp)")
	pf.StringVar(&flags.Policy, "policy", flags.Policy, "aspiration policy: hard or soft")
	pf.Int64Var(&flags.Seed, "seed", flags.Seed, "seed for the instance and the search")
	pf.DurationVar(&flags.TimeLimit, "time-limit", flags.TimeLimit, "wall-clock limit (0 = none)")
	pf.BoolVar(&flags.Diversify, "diversify", flags.Diversify, "enable intensification/diversification")
	pf.IntVar(&flags.DriftCheck, "drift-check", flags.DriftCheck, "verify incremental state every k iterations and at the end (0 = off)")
	pf.IntVar(&flags.MaxBlockedRetries, "max-blocked-retries", flags.MaxBlockedRetries, "consecutive blocked iterations before giving up")
	pf.IntVar(&flags.Nodes, "nodes", flags.Nodes, "instance size (nodes or facilities)")
	pf.Float64Var(&flags.Density, "density", flags.Density, "edge probability of random graphs")
	pf.IntVar(&flags.Colors, "colors", flags.Colors, "number of colors for gcp")
	pf.IntVar(&flags.Scale, "scale", flags.Scale, "exclusive upper bound of qap flows and distances")
	pf.IntVar(&flags.Length, "length", flags.Length, "plateau phase length in iterations (0 = greedy restarts only)")
	pf.StringVar(&flags.Expansion, "expansion", flags.Expansion, "plateau expansion rule: random, static or dynamic")
	pf.IntVar(&flags.Runs, "runs", flags.Runs, "number of seeds for bench")

	for _, p := range problems {
		root.AddCommand(newSolveCmd(p, &configPath, &flags))
	}
	root.AddCommand(newBenchCmd(&configPath, &flags))

	return root
}
