package cli

import (
	"context"
	"math"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func newBenchCmd(configPath *string, flags *RunConfig) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Repeat one problem over several seeds",
		Long: `Runs the chosen problem --runs times on the same random instance, seeding
run r with --seed+r, and prints the mean, standard deviation and range of the
best objective.`,
		Example: `  lvsearch bench --problem qap --nodes 20 --runs 30
  lvsearch bench --problem ssp --config run.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := lookupProblem(name)
			if err != nil {
				return err
			}
			cfg, err := resolveConfig(*configPath, *flags, cmd.Flags().Changed)
			if err != nil {
				return err
			}
			summary, err := bench(cmd.Context(), p, cfg)
			if err != nil {
				return err
			}
			printBench(cmd.OutOrStdout(), summary)

			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "problem", "p", "ssp", "problem to benchmark (ssp, qap, gpp, gcp, plateau, queens)")

	return cmd
}

// bench runs p cfg.Runs times sequentially and aggregates the best objectives.
func bench(ctx context.Context, p problem, cfg RunConfig) (benchSummary, error) {
	objs := make([]float64, 0, cfg.Runs)
	iters := make([]float64, 0, cfg.Runs)
	summary := benchSummary{Problem: p.name, Runs: cfg.Runs}

	for r := 0; r < cfg.Runs; r++ {
		seed := cfg.Seed + int64(r)
		out, err := runOnce(ctx, p, cfg, seed)
		if err != nil {
			return benchSummary{}, err
		}
		if r == 0 || out.Sense.Better(out.Objective, objs[summary.bestIndex]) {
			summary.BestSeed = seed
			summary.bestIndex = r
		}
		summary.Sense = out.Sense
		objs = append(objs, out.Objective)
		iters = append(iters, float64(out.Stats.Iterations))
	}

	summary.Mean, summary.StdDev = stat.MeanStdDev(objs, nil)
	if math.IsNaN(summary.StdDev) {
		summary.StdDev = 0
	}
	summary.Min, summary.Max = floats.Min(objs), floats.Max(objs)
	summary.MeanIterations = stat.Mean(iters, nil)

	return summary, nil
}
