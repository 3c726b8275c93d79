// Package perf extracts embedded millisecond latencies from log messages and
// summarizes them.
package perf

import (
	"errors"
	"math"
	"regexp"
	"strconv"

	"github.com/crimson-sun/loglens/internal/engine/stats"
	"github.com/crimson-sun/loglens/internal/model"
)

const (
	maxSlowRequests = 20
	slowSigma       = 2
)

var responseTime = regexp.MustCompile(`(?i)(\d+)(?:ms|milliseconds?)`)

// ResponseTime returns the first millisecond value embedded in msg. Values
// too large for an int64 are clamped to math.MaxInt64.
func ResponseTime(msg string) (int64, bool) {
	m := responseTime.FindStringSubmatch(msg)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

type sample struct {
	entry model.ParsedEntry
	ms    int64
}

// Analyze computes latency statistics over every entry carrying a
// millisecond value and lists the first 20 entries slower than the mean plus
// two population standard deviations.
func Analyze(entries []model.ParsedEntry) model.Performance {
	var samples []sample
	for _, e := range entries {
		if ms, ok := ResponseTime(e.Message); ok {
			samples = append(samples, sample{entry: e, ms: ms})
		}
	}
	if len(samples) == 0 {
		return model.Performance{SlowRequests: []model.SlowRequest{}}
	}

	values := make([]float64, len(samples))
	var peak int64
	for i, s := range samples {
		values[i] = float64(s.ms)
		peak = max(peak, s.ms)
	}
	mean := stats.Mean(values)
	threshold := mean + slowSigma*stats.PopStdDev(values)

	slow := []model.SlowRequest{}
	for _, s := range samples {
		if len(slow) == maxSlowRequests {
			break
		}
		if float64(s.ms) > threshold {
			slow = append(slow, model.SlowRequest{
				LineNumber:     s.entry.LineNumber,
				Timestamp:      s.entry.Timestamp,
				Message:        s.entry.Message,
				ResponseTimeMs: s.ms,
			})
		}
	}

	return model.Performance{
		ResponseTime: &model.ResponseTimeStats{
			Average: stats.Round(mean, 2),
			Median:  stats.Median(values),
			P95:     toMillis(stats.Percentile(values, 95)),
			Max:     peak,
			Count:   len(samples),
		},
		SlowRequests: slow,
	}
}

// toMillis converts a statistic back to whole milliseconds, saturating at
// math.MaxInt64 where float64 rounding would overflow the conversion.
func toMillis(f float64) int64 {
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(f)
}
