package output

import (
	"fmt"
	"strings"

	"github.com/crimson-sun/loglens/internal/engine/compactor"
	"github.com/crimson-sun/loglens/internal/model"
)

// Format selects how reports are encoded.
type Format string

const (
	JSON Format = "json"
	Text Format = "text"
)

// ParseFormat converts "json" or "text" to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case JSON, Text:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: json, text)", s)
	}
}

// FormatReport returns a copy of the report with its entry list trimmed
// according to verbosity. The analysis and summary are never changed.
func FormatReport(r model.Report, verbosity compactor.Verbosity) model.Report {
	r.Entries = compactor.New(verbosity).Compact(r.Entries)
	return r
}
