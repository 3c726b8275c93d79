// Package cmd implements the loglens command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crimson-sun/loglens/internal/config"
	"github.com/crimson-sun/loglens/internal/engine"
	"github.com/crimson-sun/loglens/internal/logging"
	"github.com/crimson-sun/loglens/internal/metrics"
	"github.com/crimson-sun/loglens/internal/model"
	"github.com/crimson-sun/loglens/internal/output"
	"github.com/crimson-sun/loglens/internal/pipeline"
	"github.com/crimson-sun/loglens/internal/source"

	// Register source implementations.
	_ "github.com/crimson-sun/loglens/internal/source/file"
	"github.com/crimson-sun/loglens/internal/source/stdin"
)

// Version is set at build time.
var Version = "dev"

type rootFlags struct {
	configPath string
	format     string
	outFile    string
	pretty     bool
	verbosity  string
	workers    int
	syslogYear int
	verbose    bool
	textfile   string
}

// NewRootCommand builds the loglens command tree.
func NewRootCommand() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:   "loglens",
		Short: "Analyze unstructured log files",
		Long: `loglens turns plain-text log files into structured entries and reports
error patterns, anomalies, latency statistics and insights.

Files may be plain, gzip (.gz) or zstd (.zst) compressed. With no file
arguments, or "-", input is read from stdin.

Input sources: ` + strings.Join(source.Kinds(), ", "),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	pf.StringVarP(&f.format, "output", "o", "", "report format: json, text")
	pf.StringVar(&f.outFile, "out-file", "", "also append reports to this file")
	pf.BoolVar(&f.pretty, "pretty", false, "indent JSON reports")
	pf.StringVar(&f.verbosity, "verbosity", "", "entry detail: minimal, standard, full")
	pf.IntVarP(&f.workers, "workers", "w", 0, "files analyzed concurrently")
	pf.IntVar(&f.syslogYear, "syslog-year", 0, "year for timestamps that carry none")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&f.textfile, "metrics-textfile", "", "write Prometheus metrics to this file")

	root.AddCommand(
		newAnalyzeCommand(f),
		newSummaryCommand(f),
		newCompareCommand(f),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "loglens:", err)
		return 1
	}
	return 0
}

// loadConfig applies explicitly set flags over the file and environment.
func loadConfig(cmd *cobra.Command, f *rootFlags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Format = f.format
	}
	if flags.Changed("out-file") {
		cfg.Output.Path = f.outFile
	}
	if flags.Changed("pretty") {
		cfg.Output.Pretty = f.pretty
	}
	if flags.Changed("verbosity") {
		cfg.Engine.Verbosity = f.verbosity
	}
	if flags.Changed("workers") {
		cfg.Pipeline.Workers = f.workers
	}
	if flags.Changed("syslog-year") {
		cfg.Engine.SyslogYear = f.syslogYear
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = f.textfile
	}
	if f.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration:\n%w", err)
	}
	return cfg, nil
}

// runEnv is everything a subcommand needs to run the pipeline.
type runEnv struct {
	cfg     config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	format  output.Format
	stdout  io.Writer
}

func newRuntime(cmd *cobra.Command, f *rootFlags) (*runEnv, error) {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return nil, err
	}
	format, _ := output.ParseFormat(cfg.Output.Format)
	logger := logging.New(cmd.ErrOrStderr(), cfg.Log.Format, logging.ParseLevel(cfg.Log.Level), format == output.JSON)
	return &runEnv{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(),
		format:  format,
		stdout:  cmd.OutOrStdout(),
	}, nil
}

// run analyzes the documents named by args and delivers reports to out.
func (rt *runEnv) run(ctx context.Context, cmd *cobra.Command, args []string, out output.Output) ([]model.Report, error) {
	srcCfg := source.Config{Kind: "file", Paths: args, MaxSize: rt.cfg.Pipeline.MaxInput}
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		srcCfg.Kind = "stdin"
	}
	ctor, err := source.Get(srcCfg.Kind)
	if err != nil {
		return nil, err
	}
	src := ctor()
	if s, ok := src.(*stdin.Source); ok {
		s.Reader = cmd.InOrStdin()
	}

	eng := engine.New(
		engine.WithLogger(rt.logger.Named("engine")),
		engine.WithSyslogYear(rt.cfg.Engine.SyslogYear),
	)

	opts := []pipeline.Option{
		pipeline.WithLogger(rt.logger.Named("pipeline")),
		pipeline.WithWorkers(rt.cfg.Pipeline.Workers),
		pipeline.WithMetrics(rt.metrics),
	}
	if rt.cfg.Pipeline.CacheMB > 0 {
		cache, err := pipeline.NewCache(ctx, rt.cfg.Pipeline.CacheMB)
		if err != nil {
			return nil, err
		}
		defer cache.Close()
		opts = append(opts, pipeline.WithCache(cache))
	}

	p := pipeline.New(src, eng, out, opts...)
	reports, runErr := p.Run(ctx, srcCfg)
	closeErr := p.Close()

	if path := rt.cfg.Metrics.Textfile; path != "" {
		if err := rt.metrics.WriteTextfile(path); err != nil {
			rt.logger.Warn("metrics export failed", zap.String("path", path), zap.Error(err))
		}
	}
	rt.logger.Sync()

	if runErr != nil {
		return reports, runErr
	}
	return reports, closeErr
}

// nopOutput discards reports for commands that render their own view.
type nopOutput struct{}

func (nopOutput) Write(context.Context, model.Report) error { return nil }
func (nopOutput) Close() error                              { return nil }
