// Package compare relates several finished analyses to each other: a
// side-by-side comparison and trend aggregation.
package compare

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/crimson-sun/loglens/internal/engine/stats"
	"github.com/crimson-sun/loglens/internal/model"
)

// ErrNotEnoughResults is returned by Compare for fewer than two results.
var ErrNotEnoughResults = errors.New("compare: at least 2 results are required")

const (
	rateVarianceThreshold = 5.0 // percentage points
	patternOutlierFactor  = 1.5
	maxErrorTrends        = 20
	maxPatternTrends      = 10
)

// ErrorRate is errorCount/parsedLines as a percentage with 2 decimals, 0 for
// an empty result.
func ErrorRate(r model.AnalysisResult) float64 {
	if r.ParsedLines == 0 {
		return 0
	}
	return stats.Round(float64(r.ErrorCount)/float64(r.ParsedLines)*100, 2)
}

// Compare lines up results and reports error-rate variance and files with an
// unusually high pattern count.
func Compare(results []model.AnalysisResult) (model.ComparisonReport, error) {
	if len(results) < 2 {
		return model.ComparisonReport{}, ErrNotEnoughResults
	}

	report := model.ComparisonReport{
		Comparisons: make([]model.Comparison, 0, len(results)),
		Insights:    []model.ComparisonInsight{},
	}
	rates := make([]float64, 0, len(results))
	totalPatterns := 0
	for _, r := range results {
		c := model.Comparison{
			Filename:   r.Filename,
			ErrorRate:  ErrorRate(r),
			TotalLines: r.TotalLines,
			ErrorCount: r.ErrorCount,
			Patterns:   len(r.Patterns),
			Anomalies:  len(r.Anomalies),
		}
		report.Comparisons = append(report.Comparisons, c)
		rates = append(rates, c.ErrorRate)
		totalPatterns += c.Patterns
	}

	lo, hi := slices.Min(rates), slices.Max(rates)
	if hi-lo > rateVarianceThreshold {
		report.Insights = append(report.Insights, model.ComparisonInsight{
			Type:           "error_rate_variance",
			Description:    fmt.Sprintf("Significant variance in error rates: %s%% to %s%%", formatRate(lo), formatRate(hi)),
			Recommendation: "Investigate systems with higher error rates",
		})
	}

	avgPatterns := float64(totalPatterns) / float64(len(results))
	for _, c := range report.Comparisons {
		if float64(c.Patterns) > avgPatterns*patternOutlierFactor {
			report.Insights = append(report.Insights, model.ComparisonInsight{
				Type:           "high_pattern_count",
				Description:    fmt.Sprintf("%s has unusually high pattern count: %d", c.Filename, c.Patterns),
				Recommendation: "Review this system for recurring issues",
			})
		}
	}
	return report, nil
}

// Trends aggregates error rates, pattern keys and anomaly types across
// results, which are taken in the order given.
func Trends(results []model.AnalysisResult) model.Trends {
	t := model.Trends{
		ErrorTrends:   []model.ErrorRatePoint{},
		PatternTrends: []model.KeyCount{},
		AnomalyTrends: []model.KeyCount{},
	}

	patterns := stats.NewCounter()
	anomalies := stats.NewCounter()
	for _, r := range results {
		if len(t.ErrorTrends) < maxErrorTrends {
			t.ErrorTrends = append(t.ErrorTrends, model.ErrorRatePoint{Filename: r.Filename, ErrorRate: ErrorRate(r)})
		}
		for _, p := range r.Patterns {
			key := p.Pattern
			if key == "" {
				key = p.Type
			}
			patterns.Add(key)
		}
		for _, a := range r.Anomalies {
			anomalies.Add(a.Type)
		}
	}

	for i, kc := range patterns.Ranked() {
		if i == maxPatternTrends {
			break
		}
		t.PatternTrends = append(t.PatternTrends, model.KeyCount{Key: kc.Key, Count: kc.Count})
	}
	for _, kc := range anomalies.Ranked() {
		t.AnomalyTrends = append(t.AnomalyTrends, model.KeyCount{Key: kc.Key, Count: kc.Count})
	}
	return t
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
