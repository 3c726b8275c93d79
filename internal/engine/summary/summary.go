// Package summary reduces a finished AnalysisResult to headline numbers.
package summary

import (
	"fmt"
	"maps"

	"github.com/crimson-sun/loglens/internal/engine/insight"
	"github.com/crimson-sun/loglens/internal/engine/stats"
	"github.com/crimson-sun/loglens/internal/model"
)

// Summarize derives SummaryStats from r without looking at any entries.
func Summarize(r model.AnalysisResult) model.SummaryStats {
	span := "unknown"
	if hours, ok := insight.SpanHours(r.TimeRange); ok {
		span = fmt.Sprintf("%d hours", hours)
	}

	s := model.SummaryStats{
		Overview: model.SummaryOverview{
			TotalLines:  r.TotalLines,
			ParsedLines: r.ParsedLines,
			ParsingRate: percent(r.ParsedLines, r.TotalLines, 1),
			TimeSpan:    span,
		},
		LogLevels: maps.Clone(r.LogLevels),
		ErrorAnalysis: model.ErrorSummary{
			TotalErrors:  r.ErrorCount,
			ErrorRate:    percent(r.ErrorCount, r.ParsedLines, 2),
			UniqueErrors: len(r.TopErrors),
		},
		Patterns:  model.PatternSummary{Total: len(r.Patterns)},
		Anomalies: model.AnomalySummary{Total: len(r.Anomalies)},
	}
	if s.LogLevels == nil {
		s.LogLevels = model.NewLevelCounts()
	}
	for _, p := range r.Patterns {
		if p.Severity == model.SeverityHigh {
			s.Patterns.HighSeverity++
		}
	}
	for _, a := range r.Anomalies {
		if a.Severity == model.SeverityHigh {
			s.Anomalies.Critical++
		}
	}
	return s
}

// percent returns n/of*100 rounded to decimals, or 0 when of is 0.
func percent(n, of, decimals int) float64 {
	if of == 0 {
		return 0
	}
	return stats.Round(float64(n)/float64(of)*100, decimals)
}
