package compactor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/crimson-sun/loglens/internal/model"
)

// Verbosity controls how much of the parsed entry list is kept in a report.
type Verbosity int

const (
	Minimal  Verbosity = iota // no entries, aggregates only
	Standard                  // entries with long lines truncated and tokens dropped
	Full                      // entries as parsed
)

const standardMaxLine = 2000

// String returns the config name of v.
func (v Verbosity) String() string {
	switch v {
	case Minimal:
		return "minimal"
	case Full:
		return "full"
	default:
		return "standard"
	}
}

// ParseVerbosity maps "minimal", "standard" or "full" to a Verbosity.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimal":
		return Minimal, nil
	case "standard", "":
		return Standard, nil
	case "full":
		return Full, nil
	}
	return Standard, fmt.Errorf("unknown verbosity %q", s)
}

// Compactor trims parsed entries before they leave the engine.
type Compactor struct {
	Verbosity Verbosity
}

// New creates a Compactor with the given verbosity level.
func New(v Verbosity) *Compactor {
	return &Compactor{Verbosity: v}
}

// Compact returns a trimmed copy of entries. The input is never modified.
func (c *Compactor) Compact(entries []model.ParsedEntry) []model.ParsedEntry {
	switch c.Verbosity {
	case Minimal:
		return nil
	case Full:
		return append([]model.ParsedEntry(nil), entries...)
	}

	out := make([]model.ParsedEntry, len(entries))
	for i, e := range entries {
		e.RawLine = truncate(e.RawLine, standardMaxLine)
		e.Message = truncate(e.Message, standardMaxLine)
		e.Tokens = nil
		out[i] = e
	}
	return out
}

// truncate cuts s to maxRunes runes and appends "..." when it was longer.
func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	i := 0
	for pos := range s {
		if i == maxRunes {
			return s[:pos] + "..."
		}
		i++
	}
	return s
}
