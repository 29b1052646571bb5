package cli

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// newSolveCmd creates the command running one search for p.
func newSolveCmd(p problem, configPath *string, flags *RunConfig) *cobra.Command {
	return &cobra.Command{
		Use:   p.name,
		Short: p.short,
		Long:  p.long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(*configPath, *flags, cmd.Flags().Changed)
			if err != nil {
				return err
			}
			out, err := runOnce(cmd.Context(), p, cfg, cfg.Seed)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), out)

			return nil
		},
	}
}

// runOnce solves p with the search seeded by seed; the instance depends on
// cfg.Seed only.
func runOnce(ctx context.Context, p problem, cfg RunConfig, seed int64) (outcome, error) {
	logger := loggerFromContext(ctx).With("problem", p.name, "seed", seed)

	opts, err := cfg.Options()
	if err != nil {
		return outcome{}, err
	}
	opts.Seed = seed
	if logger.GetLevel() <= log.DebugLevel {
		opts.Logger = logger
	}
	opts.Report = func(obj float64, note string) {
		logger.Debug("improved", "objective", obj, "at", note)
	}

	logger.Debug("instance", "nodes", cfg.Nodes, "density", cfg.Density, "scale", cfg.Scale)
	prog := newProgress(logger)
	out, err := p.solve(ctx, cfg, opts)
	if err != nil {
		return out, err
	}
	prog.done("search finished", "best", out.Objective, "reason", out.Stats.Reason)

	return out, nil
}
