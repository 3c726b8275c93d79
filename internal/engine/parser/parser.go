// Package parser turns raw log lines into structured entries.
package parser

import (
	"regexp"
	"strings"

	"github.com/crimson-sun/loglens/internal/engine/classifier"
	"github.com/crimson-sun/loglens/internal/engine/taxonomy"
	"github.com/crimson-sun/loglens/internal/engine/timestamp"
	"github.com/crimson-sun/loglens/internal/engine/tokenizer"
	"github.com/crimson-sun/loglens/internal/model"
)

// Prefixes stripped from the start of a line, in order, to obtain the message.
var (
	leadingISO    = regexp.MustCompile(`^\[?\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}(?:[.,]\d+)?(?:Z|[+-]\d{2}:?\d{2})?\]?\s*`)
	leadingSyslog = regexp.MustCompile(`^\w{3} \d{2} \d{2}:\d{2}:\d{2}\s*`)
	leadingLevel  = regexp.MustCompile(`^(?:\[(?i:error|warn|warning|info|debug)\]:?\s*|(?:ERROR|WARN|WARNING|INFO|DEBUG)(?::\s*|\s+))`)
)

// Parser converts a line into a ParsedEntry. It holds only compiled,
// read-only tables and is safe for concurrent use.
type Parser struct {
	levels     *classifier.Classifier
	signatures *classifier.Classifier
	timestamps *timestamp.Extractor
}

// New creates a Parser from the taxonomy and a timestamp extractor.
func New(tax *taxonomy.Taxonomy, ts *timestamp.Extractor) *Parser {
	return &Parser{
		levels:     classifier.New(tax.Levels()),
		signatures: classifier.New(tax.Signatures()),
		timestamps: ts,
	}
}

// Parse returns the entry for line. The second result is false when the line
// is blank, in which case no entry exists.
func (p *Parser) Parse(line string, lineNumber int) (entry model.ParsedEntry, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return model.ParsedEntry{}, false
	}

	entry = model.ParsedEntry{
		LineNumber: lineNumber,
		RawLine:    trimmed,
		Level:      model.LevelUnknown,
		Message:    trimmed,
	}
	defer func() {
		// A line that trips a matcher degrades to an untimed UNKNOWN entry.
		if r := recover(); r != nil {
			entry = model.ParsedEntry{
				LineNumber: lineNumber,
				RawLine:    trimmed,
				Level:      model.LevelUnknown,
				Message:    trimmed,
			}
			ok = true
		}
	}()

	if ts, found := p.timestamps.Extract(trimmed); found {
		entry.Timestamp = &ts
	}
	entry.Level = model.Level(p.levels.Classify(trimmed).Label())
	entry.IsError = p.signatures.Any(trimmed)
	entry.Message = Message(trimmed)
	entry.Tokens = tokenizer.Tokenize(entry.Message)

	return entry, true
}

// Message strips a leading timestamp and level tag from line.
func Message(line string) string {
	msg := leadingISO.ReplaceAllString(line, "")
	msg = leadingSyslog.ReplaceAllString(msg, "")
	msg = leadingLevel.ReplaceAllString(msg, "")
	return strings.TrimSpace(msg)
}
