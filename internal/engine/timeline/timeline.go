// Package timeline builds the charting views of an analysis: the most
// frequent error messages and per-hour level counts.
package timeline

import (
	"sort"

	"github.com/crimson-sun/loglens/internal/engine/stats"
	"github.com/crimson-sun/loglens/internal/model"
)

const (
	maxTopErrors  = 10
	maxMessageLen = 200
	// HourLayout is the bucket key of a timeline point.
	HourLayout = "2006-01-02 15:00"
)

// TopErrors returns up to 10 error messages by descending frequency, each
// with its share of all error entries. Ties keep first-seen order.
func TopErrors(entries []model.ParsedEntry) []model.TopError {
	counts := stats.NewCounter()
	total := 0
	for _, e := range entries {
		if e.IsError {
			counts.Add(e.Message)
			total++
		}
	}

	ranked := counts.Ranked()
	if len(ranked) > maxTopErrors {
		ranked = ranked[:maxTopErrors]
	}
	out := make([]model.TopError, 0, len(ranked))
	for _, kc := range ranked {
		out = append(out, model.TopError{
			Message:    truncate(kc.Key, maxMessageLen),
			Count:      kc.Count,
			Percentage: stats.Round(float64(kc.Count)/float64(total)*100, 1),
		})
	}
	return out
}

// Hourly groups timestamped entries by hour and returns one bucket per hour,
// oldest first.
func Hourly(entries []model.ParsedEntry) []model.TimelineBucket {
	index := make(map[string]int)
	var out []model.TimelineBucket
	for _, e := range entries {
		if !e.HasTimestamp() {
			continue
		}
		key := e.Timestamp.Format(HourLayout)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, model.TimelineBucket{Timestamp: key})
		}
		b := &out[i]
		b.Total++
		if e.IsError {
			b.Errors++
		}
		switch e.Level {
		case model.LevelWarn:
			b.Warnings++
		case model.LevelInfo:
			b.Info++
		}
	}
	// Keys are fixed-width, so lexical order is chronological.
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
