// Package anomaly detects statistically or structurally unusual conditions
// in a parsed entry list.
package anomaly

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/crimson-sun/loglens/internal/engine/stats"
	"github.com/crimson-sun/loglens/internal/model"
)

const (
	// MinuteLayout buckets timestamps by calendar minute.
	MinuteLayout = "2006-01-02 15:04"

	spikeSigma      = 2
	silenceSeconds  = 30 * 60
	repetitionRatio = 0.1
)

// Detect runs the spike, silence and repetition detectors in that order and
// concatenates their findings. Findings are not merged across detectors.
func Detect(entries []model.ParsedEntry) []model.Anomaly {
	var out []model.Anomaly
	out = append(out, ErrorSpikes(entries)...)
	out = append(out, SilencePeriods(entries)...)
	if a, ok := Repetition(entries); ok {
		out = append(out, a)
	}
	return out
}

type minuteBucket struct {
	key   string
	count int
}

// ErrorSpikes flags minutes whose error count exceeds the mean plus two
// population standard deviations, computed over minutes with at least one
// error. Minutes are reported in first-seen order.
func ErrorSpikes(entries []model.ParsedEntry) []model.Anomaly {
	index := make(map[string]int)
	var buckets []minuteBucket
	for _, e := range entries {
		if !e.IsError || !e.HasTimestamp() {
			continue
		}
		key := e.Timestamp.Format(MinuteLayout)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, minuteBucket{key: key})
		}
		buckets[i].count++
	}
	if len(buckets) == 0 {
		return nil
	}

	counts := make([]int, len(buckets))
	for i, b := range buckets {
		counts[i] = b.count
	}
	x := stats.Ints(counts)
	mean := stats.Mean(x)
	threshold := mean + spikeSigma*stats.PopStdDev(x)

	var out []model.Anomaly
	for _, b := range buckets {
		if float64(b.count) <= threshold {
			continue
		}
		out = append(out, model.Anomaly{
			Type:        model.AnomalyErrorSpike,
			Severity:    model.SeverityHigh,
			Timestamp:   b.key,
			Value:       b.count,
			Expected:    int(math.Round(mean)),
			Description: fmt.Sprintf("Unusual spike in errors: %d errors in 1 minute", b.count),
		})
	}
	return out
}

// SilencePeriods reports every gap longer than 30 minutes between
// consecutive timestamps, in chronological order.
func SilencePeriods(entries []model.ParsedEntry) []model.Anomaly {
	var stamps []time.Time
	for _, e := range entries {
		if e.HasTimestamp() {
			stamps = append(stamps, *e.Timestamp)
		}
	}
	slices.SortStableFunc(stamps, func(a, b time.Time) int { return a.Compare(b) })

	var out []model.Anomaly
	for i := 1; i < len(stamps); i++ {
		// Unix seconds, since a Duration saturates at about 292 years.
		gap := stamps[i].Unix() - stamps[i-1].Unix()
		if gap <= silenceSeconds {
			continue
		}
		minutes := int(math.Round(float64(gap) / 60))
		start, end := stamps[i-1], stamps[i]
		out = append(out, model.Anomaly{
			Type:        model.AnomalySilencePeriod,
			Severity:    model.SeverityMedium,
			Start:       &start,
			End:         &end,
			Duration:    minutes,
			Description: fmt.Sprintf("%d minute gap in logging activity", minutes),
		})
	}
	return out
}

// Repetition reports low message diversity: fewer distinct messages than
// 10% of all entries.
func Repetition(entries []model.ParsedEntry) (model.Anomaly, bool) {
	distinct := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		distinct[e.Message] = struct{}{}
	}
	if float64(len(distinct)) >= float64(len(entries))*repetitionRatio {
		return model.Anomaly{}, false
	}
	return model.Anomaly{
		Type:        model.AnomalyRepetitiveMessages,
		Severity:    model.SeverityLow,
		Value:       len(distinct),
		Total:       len(entries),
		Description: "High repetition in log messages detected",
	}, true
}
