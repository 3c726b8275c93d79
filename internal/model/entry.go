package model

import "time"

// Level is the coarse severity assigned to a parsed line.
type Level string

const (
	LevelError   Level = "ERROR"
	LevelWarn    Level = "WARN"
	LevelInfo    Level = "INFO"
	LevelDebug   Level = "DEBUG"
	LevelUnknown Level = "UNKNOWN"
)

// Levels lists every level in classification priority order, UNKNOWN last.
var Levels = []Level{LevelError, LevelWarn, LevelInfo, LevelDebug, LevelUnknown}

// ParsedEntry is one structured, non-blank log line.
type ParsedEntry struct {
	LineNumber int        `json:"line_number"`
	RawLine    string     `json:"raw_line"`
	Timestamp  *time.Time `json:"timestamp"`
	Level      Level      `json:"level"`
	Message    string     `json:"message"`
	IsError    bool       `json:"is_error"`
	Tokens     []string   `json:"tokens,omitempty"`
}

// HasTimestamp reports whether a timestamp was extracted from the line.
func (e ParsedEntry) HasTimestamp() bool {
	return e.Timestamp != nil
}
