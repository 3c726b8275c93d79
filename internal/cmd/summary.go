package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/loglens/internal/output"
)

func newSummaryCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary [files...]",
		Short: "Print headline numbers for each log file",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, f)
			if err != nil {
				return err
			}
			reports, runErr := rt.run(cmd.Context(), cmd, args, nopOutput{})
			for _, r := range reports {
				if err := output.EncodeSummary(rt.stdout, rt.format, rt.cfg.Output.Pretty, r.Filename, r.Summary); err != nil {
					return errors.Join(runErr, err)
				}
			}
			return runErr
		},
	}
}
