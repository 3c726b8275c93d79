package model

// SummaryStats is a compact reduction of an AnalysisResult.
type SummaryStats struct {
	Overview      SummaryOverview `json:"overview"`
	LogLevels     map[Level]int   `json:"log_levels"`
	ErrorAnalysis ErrorSummary    `json:"error_analysis"`
	Patterns      PatternSummary  `json:"patterns"`
	Anomalies     AnomalySummary  `json:"anomalies"`
}

type SummaryOverview struct {
	TotalLines  int     `json:"total_lines"`
	ParsedLines int     `json:"parsed_lines"`
	ParsingRate float64 `json:"parsing_rate"` // percent, 1 decimal
	TimeSpan    string  `json:"time_span"`    // "N hours" or "unknown"
}

type ErrorSummary struct {
	TotalErrors  int     `json:"total_errors"`
	ErrorRate    float64 `json:"error_rate"` // percent, 2 decimals
	UniqueErrors int     `json:"unique_errors"`
}

type PatternSummary struct {
	Total        int `json:"total"`
	HighSeverity int `json:"high_severity"`
}

type AnomalySummary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
}

// Comparison is one file's row in a cross-file comparison.
type Comparison struct {
	Filename   string  `json:"filename"`
	ErrorRate  float64 `json:"error_rate"`
	TotalLines int     `json:"total_lines"`
	ErrorCount int     `json:"error_count"`
	Patterns   int     `json:"patterns"`
	Anomalies  int     `json:"anomalies"`
}

// ComparisonInsight is a finding across compared files.
type ComparisonInsight struct {
	Type           string `json:"type"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// ComparisonReport is the outcome of comparing two or more results.
type ComparisonReport struct {
	Comparisons []Comparison        `json:"comparisons"`
	Insights    []ComparisonInsight `json:"insights"`
}

// ErrorRatePoint is one file's error rate in a trend series.
type ErrorRatePoint struct {
	Filename  string  `json:"filename"`
	ErrorRate float64 `json:"error_rate"`
}

// KeyCount is a ranked key with its occurrence count.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Trends aggregates patterns and anomalies across many results.
type Trends struct {
	ErrorTrends   []ErrorRatePoint `json:"error_trends"`
	PatternTrends []KeyCount       `json:"pattern_trends"`
	AnomalyTrends []KeyCount       `json:"anomaly_trends"`
}
