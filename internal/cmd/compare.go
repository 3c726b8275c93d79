package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/loglens/internal/engine/compare"
	"github.com/crimson-sun/loglens/internal/model"
	"github.com/crimson-sun/loglens/internal/output"
)

func newCompareCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "compare files...",
		Short: "Compare error rates and findings across log files",
		Long: `Analyze two or more log files and compare them side by side. Reports
files whose error rates diverge, files with unusually many patterns, and
the most common patterns and anomaly types across all of them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, f)
			if err != nil {
				return err
			}
			reports, runErr := rt.run(cmd.Context(), cmd, args, nopOutput{})

			results := make([]model.AnalysisResult, len(reports))
			for i, r := range reports {
				results[i] = r.Analysis
			}
			c, err := compare.Compare(results)
			if err != nil {
				return errors.Join(runErr, err)
			}
			if err := output.EncodeComparison(rt.stdout, rt.format, rt.cfg.Output.Pretty, c, compare.Trends(results)); err != nil {
				return errors.Join(runErr, err)
			}
			return runErr
		},
	}
}
