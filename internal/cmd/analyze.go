package cmd

import (
	"github.com/spf13/cobra"

	"github.com/crimson-sun/loglens/internal/engine/compactor"
	"github.com/crimson-sun/loglens/internal/output"
	"github.com/crimson-sun/loglens/internal/output/file"
	"github.com/crimson-sun/loglens/internal/output/multi"
	"github.com/crimson-sun/loglens/internal/output/stdout"
)

func newAnalyzeCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Analyze log files and print full reports",
		Long: `Analyze one or more log files (or glob patterns) and print one report per
file: counts, time range, patterns, anomalies, insights, top errors, an
hourly timeline, latency statistics and the parsed entries.

Examples:
  loglens analyze /var/log/app.log
  loglens analyze "logs/*.log.gz" --output text
  cat app.log | loglens analyze --verbosity minimal`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd, f)
			if err != nil {
				return err
			}
			verbosity, _ := compactor.ParseVerbosity(rt.cfg.Engine.Verbosity)

			var out output.Output = stdout.NewWriter(rt.stdout, rt.format, verbosity, rt.cfg.Output.Pretty)
			if path := rt.cfg.Output.Path; path != "" {
				fo, err := file.New(path, verbosity,
					file.WithFormat(rt.format),
					file.WithMaxSize(rt.cfg.Output.MaxSize),
					file.WithCompress(rt.cfg.Output.Compress),
				)
				if err != nil {
					return err
				}
				out = multi.New(out, fo)
			}

			_, err = rt.run(cmd.Context(), cmd, args, out)
			return err
		},
	}
}
