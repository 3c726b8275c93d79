// Package insight turns aggregate statistics into natural-language findings.
package insight

import (
	"fmt"

	"github.com/crimson-sun/loglens/internal/engine/stats"
	"github.com/crimson-sun/loglens/internal/model"
)

// Insight type names.
const (
	TypeErrorRate       = "error_rate"
	TypeTimeSpan        = "time_span"
	TypeLogDistribution = "log_distribution"
	TypeErrorDiversity  = "error_diversity"
)

// Thresholds at which recommendations change.
const (
	highErrorRate      = 5.0  // percent of parsed lines
	longSpanHours      = 24   // hours
	highErrorLevelPct  = 10.0 // percent of ERROR-level lines
	highErrorDiversity = 20   // distinct error messages
)

// Generate derives insights from the counts already in result plus the
// entry list. A result with no parsed lines yields none.
func Generate(result model.AnalysisResult, entries []model.ParsedEntry) []model.Insight {
	if result.ParsedLines == 0 {
		return nil
	}

	out := []model.Insight{errorRate(result)}
	if in, ok := timeSpan(result.TimeRange); ok {
		out = append(out, in)
	}
	if in, ok := levelDistribution(result.LogLevels); ok {
		out = append(out, in)
	}
	if in, ok := errorDiversity(entries); ok {
		out = append(out, in)
	}
	return out
}

func errorRate(result model.AnalysisResult) model.Insight {
	rate := stats.Round(float64(result.ErrorCount)/float64(result.ParsedLines)*100, 2)
	rec := "Error rate is within normal range."
	if rate > highErrorRate {
		rec = "High error rate detected. Consider investigating root causes."
	}
	return model.Insight{
		Type:           TypeErrorRate,
		Value:          fmt.Sprintf("%.2f%%", rate),
		Metric:         rate,
		Description:    fmt.Sprintf("Error rate is %.2f%%", rate),
		Recommendation: rec,
	}
}

// SpanHours returns the whole hours between start and end, truncated, and
// false when either bound is missing.
func SpanHours(tr model.TimeRange) (int, bool) {
	if tr.Start == nil || tr.End == nil {
		return 0, false
	}
	return int((tr.End.Unix() - tr.Start.Unix()) / 3600), true
}

func timeSpan(tr model.TimeRange) (model.Insight, bool) {
	hours, ok := SpanHours(tr)
	if !ok {
		return model.Insight{}, false
	}
	rec := "Time span is manageable for analysis."
	if hours > longSpanHours {
		rec = "Consider archiving older logs for better performance."
	}
	return model.Insight{
		Type:           TypeTimeSpan,
		Value:          fmt.Sprintf("%d hours", hours),
		Metric:         float64(hours),
		Description:    fmt.Sprintf("Log data spans %d hours", hours),
		Recommendation: rec,
	}, true
}

func levelDistribution(levels map[model.Level]int) (model.Insight, bool) {
	total := 0
	for _, n := range levels {
		total += n
	}
	if total == 0 {
		return model.Insight{}, false
	}
	pct := stats.Round(float64(levels[model.LevelError])/float64(total)*100, 1)
	if pct <= highErrorLevelPct {
		return model.Insight{}, false
	}
	return model.Insight{
		Type:           TypeLogDistribution,
		Value:          fmt.Sprintf("%.1f%% errors", pct),
		Metric:         pct,
		Description:    "High proportion of error messages",
		Recommendation: "Review error handling and logging practices.",
	}, true
}

func errorDiversity(entries []model.ParsedEntry) (model.Insight, bool) {
	distinct := make(map[string]struct{})
	for _, e := range entries {
		if e.IsError {
			distinct[e.Message] = struct{}{}
		}
	}
	n := len(distinct)
	if n == 0 {
		return model.Insight{}, false
	}
	rec := "Error patterns are focused and manageable."
	if n > highErrorDiversity {
		rec = "High error diversity suggests multiple system issues."
	}
	return model.Insight{
		Type:           TypeErrorDiversity,
		Value:          fmt.Sprintf("%d unique error types", n),
		Metric:         float64(n),
		Description:    fmt.Sprintf("Found %d different error patterns", n),
		Recommendation: rec,
	}, true
}
