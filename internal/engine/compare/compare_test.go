package compare

import (
	"errors"
	"fmt"
	"testing"

	"github.com/crimson-sun/loglens/internal/model"
)

func result(name string, parsed, errs, patterns int, anomalyTypes ...string) model.AnalysisResult {
	r := model.AnalysisResult{Filename: name, TotalLines: parsed, ParsedLines: parsed, ErrorCount: errs}
	for i := 0; i < patterns; i++ {
		r.Patterns = append(r.Patterns, model.Pattern{Type: model.PatternRecurringError, Pattern: fmt.Sprintf("p%d", i)})
	}
	for _, typ := range anomalyTypes {
		r.Anomalies = append(r.Anomalies, model.Anomaly{Type: typ})
	}
	return r
}

func TestCompareRequiresTwo(t *testing.T) {
	_, err := Compare([]model.AnalysisResult{result("a", 10, 1, 0)})
	if !errors.Is(err, ErrNotEnoughResults) {
		t.Fatalf("err = %v, want ErrNotEnoughResults", err)
	}
}

func TestCompareInsights(t *testing.T) {
	report, err := Compare([]model.AnalysisResult{
		result("api.log", 100, 2, 1),
		result("db.log", 100, 15, 6),
		result("web.log", 0, 0, 1),
	})
	if err != nil {
		t.Fatalf("Compare() error: %v", err)
	}
	if len(report.Comparisons) != 3 {
		t.Fatalf("got %d comparisons, want 3", len(report.Comparisons))
	}
	if report.Comparisons[1].ErrorRate != 15 {
		t.Errorf("db.log error rate = %v, want 15", report.Comparisons[1].ErrorRate)
	}
	if report.Comparisons[2].ErrorRate != 0 {
		t.Errorf("empty file error rate = %v, want 0", report.Comparisons[2].ErrorRate)
	}

	if len(report.Insights) != 2 {
		t.Fatalf("got %d insights, want 2: %+v", len(report.Insights), report.Insights)
	}
	if report.Insights[0].Type != "error_rate_variance" {
		t.Errorf("insight[0] = %+v", report.Insights[0])
	}
	if report.Insights[0].Description != "Significant variance in error rates: 0% to 15%" {
		t.Errorf("Description = %q", report.Insights[0].Description)
	}
	if report.Insights[1].Type != "high_pattern_count" ||
		report.Insights[1].Description != "db.log has unusually high pattern count: 6" {
		t.Errorf("insight[1] = %+v", report.Insights[1])
	}
}

func TestCompareNoInsights(t *testing.T) {
	report, err := Compare([]model.AnalysisResult{
		result("a", 100, 1, 2),
		result("b", 100, 3, 2),
	})
	if err != nil {
		t.Fatalf("Compare() error: %v", err)
	}
	if len(report.Insights) != 0 {
		t.Fatalf("expected no insights, got %+v", report.Insights)
	}
}

func TestTrends(t *testing.T) {
	results := []model.AnalysisResult{
		result("a", 10, 1, 2, model.AnomalySilencePeriod),
		result("b", 10, 2, 1, model.AnomalyErrorSpike, model.AnomalyErrorSpike),
		result("c", 10, 5, 0, model.AnomalySilencePeriod, model.AnomalyErrorSpike),
	}
	tr := Trends(results)

	if len(tr.ErrorTrends) != 3 || tr.ErrorTrends[2].ErrorRate != 50 {
		t.Errorf("ErrorTrends = %+v", tr.ErrorTrends)
	}
	if len(tr.PatternTrends) != 2 || tr.PatternTrends[0] != (model.KeyCount{Key: "p0", Count: 2}) {
		t.Errorf("PatternTrends = %+v", tr.PatternTrends)
	}
	want := []model.KeyCount{{Key: model.AnomalyErrorSpike, Count: 3}, {Key: model.AnomalySilencePeriod, Count: 2}}
	if len(tr.AnomalyTrends) != 2 || tr.AnomalyTrends[0] != want[0] || tr.AnomalyTrends[1] != want[1] {
		t.Errorf("AnomalyTrends = %+v, want %+v", tr.AnomalyTrends, want)
	}
}

func TestTrendsCapsErrorSeries(t *testing.T) {
	var results []model.AnalysisResult
	for i := 0; i < 25; i++ {
		results = append(results, result(fmt.Sprintf("f%d", i), 10, 1, 0))
	}
	if got := len(Trends(results).ErrorTrends); got != 20 {
		t.Fatalf("got %d error trend points, want 20", got)
	}
}
