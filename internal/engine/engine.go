// Package engine drives a full analysis over one file's content: parse
// every line, then run each aggregator over the same entry list.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/crimson-sun/loglens/internal/engine/anomaly"
	"github.com/crimson-sun/loglens/internal/engine/insight"
	"github.com/crimson-sun/loglens/internal/engine/parser"
	"github.com/crimson-sun/loglens/internal/engine/patterns"
	"github.com/crimson-sun/loglens/internal/engine/perf"
	"github.com/crimson-sun/loglens/internal/engine/taxonomy"
	"github.com/crimson-sun/loglens/internal/engine/timeline"
	"github.com/crimson-sun/loglens/internal/engine/timestamp"
	"github.com/crimson-sun/loglens/internal/model"
)

// MaxEntries caps the entry list returned by Analyze. Aggregates are always
// computed over every entry.
const MaxEntries = 1000

// ErrAnalysisFailed is matched by every error Analyze returns.
var ErrAnalysisFailed = errors.New("log analysis failed")

// AnalysisError reports an unexpected failure while analyzing a file.
type AnalysisError struct {
	Filename string
	Cause    error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrAnalysisFailed, e.Filename, e.Cause)
}

func (e *AnalysisError) Unwrap() error { return e.Cause }

// Is makes errors.Is(err, ErrAnalysisFailed) hold for any AnalysisError.
func (e *AnalysisError) Is(target error) bool { return target == ErrAnalysisFailed }

// Engine analyzes log content. It holds only read-only tables and may be
// shared by concurrent analyses.
type Engine struct {
	parser     *parser.Parser
	stamps     *timestamp.Extractor
	taxonomy   *taxonomy.Taxonomy
	syslogYear int
	logger     *zap.Logger
}

type options struct {
	logger     *zap.Logger
	taxonomy   *taxonomy.Taxonomy
	syslogYear int
}

// Option configures an Engine.
type Option func(*options)

// WithLogger sets the logger used for per-analysis debug records.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTaxonomy replaces the default rule tables.
func WithTaxonomy(t *taxonomy.Taxonomy) Option {
	return func(o *options) { o.taxonomy = t }
}

// WithSyslogYear sets the year given to short month/day/time stamps. When
// unset, the year comes from the first dated stamp in the analyzed content,
// or stays 0 when there is none.
func WithSyslogYear(year int) Option {
	return func(o *options) { o.syslogYear = year }
}

// New creates an Engine. Without options it uses the default taxonomy and a
// no-op logger.
func New(opts ...Option) *Engine {
	o := options{}
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.taxonomy == nil {
		o.taxonomy = taxonomy.Default()
	}
	ts := timestamp.New(o.taxonomy, timestamp.WithSyslogYear(o.syslogYear))
	return &Engine{
		parser:     parser.New(o.taxonomy, ts),
		stamps:     ts,
		taxonomy:   o.taxonomy,
		syslogYear: o.syslogYear,
		logger:     o.logger,
	}
}

// Analyze parses content line by line and assembles the analysis record.
// The returned entries are capped at MaxEntries. On failure no partial
// result is returned.
func (e *Engine) Analyze(content, filename string) (result model.AnalysisResult, entries []model.ParsedEntry, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			result, entries, err = model.AnalysisResult{}, nil, &AnalysisError{Filename: filename, Cause: cause}
		}
	}()

	lines := strings.Split(content, "\n")
	p := e.parserFor(lines)
	all := make([]model.ParsedEntry, 0, len(lines))
	for i, line := range lines {
		if entry, ok := p.Parse(line, i+1); ok {
			all = append(all, entry)
		}
	}

	result = Aggregate(filename, len(lines), all)

	e.logger.Debug("analysis complete",
		zap.String("filename", filename),
		zap.Int("total_lines", result.TotalLines),
		zap.Int("parsed_lines", result.ParsedLines),
		zap.Int("errors", result.ErrorCount),
		zap.Duration("elapsed", time.Since(start)),
	)

	if len(all) > MaxEntries {
		all = all[:MaxEntries]
	}
	return result, all, nil
}

// parserFor returns the parser for one analysis. Without a configured syslog
// year, short stamps take the year of the content's first dated stamp so that
// mixed files share one calendar.
func (e *Engine) parserFor(lines []string) *parser.Parser {
	if e.syslogYear != 0 {
		return e.parser
	}
	year, ok := e.stamps.DatedYear(lines)
	if !ok {
		return e.parser
	}
	return parser.New(e.taxonomy, timestamp.New(e.taxonomy, timestamp.WithSyslogYear(year)))
}

// Aggregate builds the analysis record for an already-parsed entry list.
func Aggregate(filename string, totalLines int, entries []model.ParsedEntry) model.AnalysisResult {
	r := model.AnalysisResult{
		Filename:    filename,
		TotalLines:  totalLines,
		ParsedLines: len(entries),
		LogLevels:   model.NewLevelCounts(),
	}
	for _, entry := range entries {
		r.LogLevels[entry.Level]++
		if entry.IsError {
			r.ErrorCount++
		}
		if !entry.HasTimestamp() {
			continue
		}
		ts := *entry.Timestamp
		if r.TimeRange.Start == nil || ts.Before(*r.TimeRange.Start) {
			r.TimeRange.Start = &ts
		}
		if r.TimeRange.End == nil || ts.After(*r.TimeRange.End) {
			end := ts
			r.TimeRange.End = &end
		}
	}

	r.Patterns = orEmpty(patterns.Mine(entries))
	r.Anomalies = orEmpty(anomaly.Detect(entries))
	r.TopErrors = orEmpty(timeline.TopErrors(entries))
	r.Timeline = orEmpty(timeline.Hourly(entries))
	r.Performance = perf.Analyze(entries)
	// Insights read the counts gathered above.
	r.Insights = orEmpty(insight.Generate(r, entries))
	return r
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
