// Package timestamp locates and parses calendar timestamps embedded in log
// lines.
package timestamp

import (
	"time"

	"github.com/crimson-sun/loglens/internal/engine/taxonomy"
)

// Extractor finds the first known timestamp surface in a line and parses it.
// It is immutable and safe for concurrent use.
type Extractor struct {
	formats    []taxonomy.TimestampFormat
	layouts    []string
	syslogYear int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSyslogYear sets the year assigned to short month/day/time stamps,
// which carry none. Default: 0.
func WithSyslogYear(year int) Option {
	return func(e *Extractor) { e.syslogYear = year }
}

// New creates an Extractor over the taxonomy's timestamp tables.
func New(tax *taxonomy.Taxonomy, opts ...Option) *Extractor {
	e := &Extractor{
		formats: tax.Timestamps(),
		layouts: tax.Layouts(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the timestamp in line, or false when none is present.
// Only the first surface pattern that matches is considered; if its text
// fails every layout the line has no timestamp.
func (e *Extractor) Extract(line string) (time.Time, bool) {
	ts, _, ok := e.extract(line)
	return ts, ok
}

// DatedYear returns the year of the first timestamp in lines that carries
// its own year. Short syslog stamps are skipped. False when no line has a
// dated stamp.
func (e *Extractor) DatedYear(lines []string) (int, bool) {
	for _, line := range lines {
		ts, layout, ok := e.extract(line)
		if ok && layout != taxonomy.SyslogLayout && ts.Year() != 0 {
			return ts.Year(), true
		}
	}
	return 0, false
}

func (e *Extractor) extract(line string) (time.Time, string, bool) {
	for _, f := range e.formats {
		text := f.Surface.FindString(line)
		if text == "" {
			continue
		}
		return e.parse(text)
	}
	return time.Time{}, "", false
}

func (e *Extractor) parse(text string) (time.Time, string, bool) {
	for _, layout := range e.layouts {
		ts, err := time.Parse(layout, text)
		if err != nil {
			continue
		}
		if layout == taxonomy.SyslogLayout && e.syslogYear != 0 {
			ts = time.Date(e.syslogYear, ts.Month(), ts.Day(),
				ts.Hour(), ts.Minute(), ts.Second(), 0, time.UTC)
		}
		return ts, layout, true
	}
	return time.Time{}, "", false
}
