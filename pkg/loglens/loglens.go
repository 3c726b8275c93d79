package loglens

import (
	"github.com/crimson-sun/loglens/internal/engine"
	"github.com/crimson-sun/loglens/internal/engine/compare"
	"github.com/crimson-sun/loglens/internal/engine/summary"
	"github.com/crimson-sun/loglens/internal/engine/taxonomy"
	"github.com/crimson-sun/loglens/internal/model"
)

// Result types re-exported from the engine.
type (
	Result     = model.AnalysisResult
	Entry      = model.ParsedEntry
	Summary    = model.SummaryStats
	Comparison = model.ComparisonReport
	Trends     = model.Trends
)

// MaxEntries is the number of parsed entries Analyze returns at most.
const MaxEntries = engine.MaxEntries

var (
	// ErrAnalysisFailed matches any error returned by Analyze.
	ErrAnalysisFailed = engine.ErrAnalysisFailed
	// ErrNotEnoughResults is returned by Compare for fewer than two results.
	ErrNotEnoughResults = compare.ErrNotEnoughResults
)

// Analyzer runs the analysis pipeline over log content.
type Analyzer struct {
	engine *engine.Engine
}

// New creates an Analyzer with the built-in level, signature and timestamp
// tables.
func New(opts ...Option) *Analyzer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var engOpts []engine.Option
	if o.logger != nil {
		engOpts = append(engOpts, engine.WithLogger(o.logger))
	}
	if o.syslogYear != 0 {
		engOpts = append(engOpts, engine.WithSyslogYear(o.syslogYear))
	}
	return &Analyzer{engine: engine.New(engOpts...)}
}

// Analyze parses content and returns the analysis record together with at
// most MaxEntries parsed entries.
func (a *Analyzer) Analyze(content, filename string) (Result, []Entry, error) {
	return a.engine.Analyze(content, filename)
}

// Summarize condenses an analysis record into headline statistics.
func Summarize(r Result) Summary {
	return summary.Summarize(r)
}

// Compare contrasts two or more analysis records.
func Compare(results []Result) (Comparison, error) {
	return compare.Compare(results)
}

// TrendsOf aggregates errors, patterns and anomaly types across records.
func TrendsOf(results []Result) Trends {
	return compare.Trends(results)
}

// Levels returns the level names the parser recognises, in match order.
func Levels() []string {
	rules := taxonomy.Default().Levels()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}
