package model

import "time"

// Severity grades patterns and anomalies.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Pattern and anomaly type names.
const (
	PatternRecurringError = "recurring_error"
	PatternErrorSpike     = "error_spike"

	AnomalyErrorSpike         = "error_spike"
	AnomalySilencePeriod      = "silence_period"
	AnomalyRepetitiveMessages = "repetitive_messages"
)

// TimeRange is the earliest and latest timestamp seen. Both are nil when no
// entry carried a timestamp.
type TimeRange struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// HourBucket is the per-hour error tally attached to an error_spike pattern.
type HourBucket struct {
	Hour       string `json:"hour"`
	ErrorCount int    `json:"error_count"`
	TotalCount int    `json:"total_count"`
}

// Pattern is a recurring signature mined from the entry list.
type Pattern struct {
	Type      string       `json:"type"`
	Pattern   string       `json:"pattern"`
	Frequency int          `json:"frequency,omitempty"`
	Details   []HourBucket `json:"details,omitempty"`
	Severity  Severity     `json:"severity"`
}

// Anomaly is an unusual condition detected over the entry list. Which of the
// optional fields are set depends on Type.
type Anomaly struct {
	Type        string     `json:"type"`
	Severity    Severity   `json:"severity"`
	Description string     `json:"description"`
	Timestamp   string     `json:"timestamp,omitempty"` // minute bucket for error_spike
	Value       int        `json:"value,omitempty"`
	Expected    int        `json:"expected,omitempty"`
	Total       int        `json:"total,omitempty"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	Duration    int        `json:"duration,omitempty"` // minutes
}

// Insight is a natural-language finding with a recommendation.
type Insight struct {
	Type           string  `json:"type"`
	Value          string  `json:"value"`
	Metric         float64 `json:"metric"`
	Description    string  `json:"description"`
	Recommendation string  `json:"recommendation"`
}

// TopError is one of the most frequent error messages.
type TopError struct {
	Message    string  `json:"message"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TimelineBucket holds per-hour counts for charting.
type TimelineBucket struct {
	Timestamp string `json:"timestamp"`
	Total     int    `json:"total"`
	Errors    int    `json:"errors"`
	Warnings  int    `json:"warnings"`
	Info      int    `json:"info"`
}

// ResponseTimeStats describes the embedded millisecond values of a file.
type ResponseTimeStats struct {
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
	P95     int64   `json:"p95"`
	Max     int64   `json:"max"`
	Count   int     `json:"count"`
}

// SlowRequest is an entry whose embedded latency is an outlier.
type SlowRequest struct {
	LineNumber     int        `json:"line_number"`
	Timestamp      *time.Time `json:"timestamp"`
	Message        string     `json:"message"`
	ResponseTimeMs int64      `json:"response_time_ms"`
}

// Performance is the latency view of a file. ResponseTime is nil when no
// line carried a millisecond value.
type Performance struct {
	ResponseTime *ResponseTimeStats `json:"response_time"`
	SlowRequests []SlowRequest      `json:"slow_requests"`
}

// AnalysisResult is the aggregate record for one file.
type AnalysisResult struct {
	Filename    string           `json:"filename"`
	TotalLines  int              `json:"total_lines"`
	ParsedLines int              `json:"parsed_lines"`
	TimeRange   TimeRange        `json:"time_range"`
	LogLevels   map[Level]int    `json:"log_levels"`
	ErrorCount  int              `json:"error_count"`
	Patterns    []Pattern        `json:"patterns"`
	Anomalies   []Anomaly        `json:"anomalies"`
	Insights    []Insight        `json:"insights"`
	TopErrors   []TopError       `json:"top_errors"`
	Timeline    []TimelineBucket `json:"timeline"`
	Performance Performance      `json:"performance"`
}

// NewLevelCounts returns a level map with every level present at zero.
func NewLevelCounts() map[Level]int {
	m := make(map[Level]int, len(Levels))
	for _, l := range Levels {
		m[l] = 0
	}
	return m
}
