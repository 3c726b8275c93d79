// Package patterns mines recurring error signatures and hourly error-rate
// spikes from parsed entries.
package patterns

import (
	"fmt"
	"regexp"

	"github.com/crimson-sun/loglens/internal/engine/stats"
	"github.com/crimson-sun/loglens/internal/model"
)

const (
	maxRecurring = 10
	// HourLayout buckets timestamps by calendar hour.
	HourLayout = "2006-01-02 15"
	// spikeFactor is the multiple of the mean hourly error count above which
	// an hour is flagged.
	spikeFactor = 2
)

var (
	digitRun = regexp.MustCompile(`\d+`)
	hexRun   = regexp.MustCompile(`(?i)[a-f0-9]{8,}`)
)

// Normalize reduces a message to its signature: digit runs become "X", then
// remaining hexadecimal runs of 8 or more characters become "HASH".
func Normalize(msg string) string {
	return hexRun.ReplaceAllString(digitRun.ReplaceAllString(msg, "X"), "HASH")
}

// Mine runs both detectors: recurring error signatures first, then the
// hourly spike pattern if any hour qualifies.
func Mine(entries []model.ParsedEntry) []model.Pattern {
	patterns := Recurring(entries)
	if p, ok := HourlySpike(entries); ok {
		patterns = append(patterns, p)
	}
	return patterns
}

// Recurring returns up to 10 normalized error messages seen more than once,
// most frequent first. Ties keep first-seen order.
func Recurring(entries []model.ParsedEntry) []model.Pattern {
	counts := stats.NewCounter()
	for _, e := range entries {
		if e.IsError {
			counts.Add(Normalize(e.Message))
		}
	}

	var out []model.Pattern
	for _, kc := range counts.Ranked() {
		if kc.Count <= 1 || len(out) == maxRecurring {
			break
		}
		out = append(out, model.Pattern{
			Type:      model.PatternRecurringError,
			Pattern:   kc.Key,
			Frequency: kc.Count,
			Severity:  model.SeverityHigh,
		})
	}
	return out
}

// HourlyBuckets groups timestamped entries by hour, in first-seen order.
func HourlyBuckets(entries []model.ParsedEntry) []model.HourBucket {
	index := make(map[string]int)
	var buckets []model.HourBucket
	for _, e := range entries {
		if !e.HasTimestamp() {
			continue
		}
		key := e.Timestamp.Format(HourLayout)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, model.HourBucket{Hour: key})
		}
		buckets[i].TotalCount++
		if e.IsError {
			buckets[i].ErrorCount++
		}
	}
	return buckets
}

// HourlySpike flags hours whose error count exceeds twice the mean across
// all hours. Reports false when no hour qualifies.
func HourlySpike(entries []model.ParsedEntry) (model.Pattern, bool) {
	buckets := HourlyBuckets(entries)
	if len(buckets) == 0 {
		return model.Pattern{}, false
	}

	counts := make([]int, len(buckets))
	for i, b := range buckets {
		counts[i] = b.ErrorCount
	}
	threshold := stats.Mean(stats.Ints(counts)) * spikeFactor

	var flagged []model.HourBucket
	for _, b := range buckets {
		if float64(b.ErrorCount) > threshold {
			flagged = append(flagged, b)
		}
	}
	if len(flagged) == 0 {
		return model.Pattern{}, false
	}
	return model.Pattern{
		Type:     model.PatternErrorSpike,
		Pattern:  fmt.Sprintf("High error rates detected in %d time periods", len(flagged)),
		Details:  flagged,
		Severity: model.SeverityMedium,
	}, true
}
