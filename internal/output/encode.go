package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/crimson-sun/loglens/internal/model"
)

// Encode writes one report to w. JSON is a single line unless pretty is
// set; text is a human-readable block.
func Encode(w io.Writer, format Format, pretty bool, r model.Report) error {
	if format == Text {
		return RenderText(w, r)
	}
	return encodeJSON(w, pretty, r)
}

// EncodeComparison writes a comparison and its trends to w.
func EncodeComparison(w io.Writer, format Format, pretty bool, c model.ComparisonReport, t model.Trends) error {
	if format == Text {
		return RenderComparisonText(w, c, t)
	}
	return encodeJSON(w, pretty, struct {
		Comparison model.ComparisonReport `json:"comparison"`
		Trends     model.Trends           `json:"trends"`
	}{c, t})
}

// EncodeSummary writes one file's summary to w.
func EncodeSummary(w io.Writer, format Format, pretty bool, filename string, s model.SummaryStats) error {
	if format != Text {
		return encodeJSON(w, pretty, struct {
			Filename string             `json:"filename"`
			Summary  model.SummaryStats `json:"summary"`
		}{filename, s})
	}
	_, err := fmt.Fprintf(w, "%s: %s lines, %.1f%% parsed, span %s, %s errors (%.2f%%, %d unique), %d patterns (%d high), %d anomalies (%d critical)\n",
		filename, humanize.Comma(int64(s.Overview.TotalLines)), s.Overview.ParsingRate, s.Overview.TimeSpan,
		humanize.Comma(int64(s.ErrorAnalysis.TotalErrors)), s.ErrorAnalysis.ErrorRate, s.ErrorAnalysis.UniqueErrors,
		s.Patterns.Total, s.Patterns.HighSeverity, s.Anomalies.Total, s.Anomalies.Critical)
	return err
}

func encodeJSON(w io.Writer, pretty bool, v any) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// RenderText writes the report as an aligned plain-text block.
func RenderText(w io.Writer, r model.Report) error {
	var b strings.Builder
	a, s := r.Analysis, r.Summary
	pal := newPalette(w)

	fmt.Fprintf(&b, "== %s (%s) ==\n", r.Filename, humanize.Bytes(uint64(max(r.Size, 0))))
	if r.RunID != "" {
		fmt.Fprintf(&b, "%-11s %s\n", "run", r.RunID)
	}
	fmt.Fprintf(&b, "%-11s %s total, %s parsed (%.1f%%)\n", "lines",
		humanize.Comma(int64(a.TotalLines)), humanize.Comma(int64(a.ParsedLines)), s.Overview.ParsingRate)
	fmt.Fprintf(&b, "%-11s %s", "span", s.Overview.TimeSpan)
	if a.TimeRange.Start != nil && a.TimeRange.End != nil {
		fmt.Fprintf(&b, " (%s to %s)", a.TimeRange.Start.Format(timeLayout), a.TimeRange.End.Format(timeLayout))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%-11s", "levels")
	for _, lvl := range model.Levels {
		fmt.Fprintf(&b, " %s %s", lvl, humanize.Comma(int64(s.LogLevels[lvl])))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-11s %s (%.2f%%), %d unique\n", "errors",
		humanize.Comma(int64(s.ErrorAnalysis.TotalErrors)), s.ErrorAnalysis.ErrorRate, s.ErrorAnalysis.UniqueErrors)

	fmt.Fprintf(&b, "%-11s %d (%d high)\n", "patterns", s.Patterns.Total, s.Patterns.HighSeverity)
	for _, p := range a.Patterns {
		fmt.Fprintf(&b, "  %s %s %s", pal.tag(p.Severity), p.Type, p.Pattern)
		if p.Frequency > 0 {
			fmt.Fprintf(&b, " x%d", p.Frequency)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%-11s %d (%d critical)\n", "anomalies", s.Anomalies.Total, s.Anomalies.Critical)
	for _, an := range a.Anomalies {
		fmt.Fprintf(&b, "  %s %s: %s\n", pal.tag(an.Severity), an.Type, an.Description)
	}

	if len(a.Insights) > 0 {
		b.WriteString("insights\n")
		for _, in := range a.Insights {
			fmt.Fprintf(&b, "  %s %s: %s %s\n", in.Type, in.Value, in.Description, in.Recommendation)
		}
	}

	if len(a.TopErrors) > 0 {
		b.WriteString("top errors\n")
		for _, te := range a.TopErrors {
			fmt.Fprintf(&b, "  %5s %5.1f%%  %s\n", humanize.Comma(int64(te.Count)), te.Percentage, te.Message)
		}
	}

	if rt := a.Performance.ResponseTime; rt != nil {
		fmt.Fprintf(&b, "%-11s %s samples, avg %.2fms, median %.1fms, p95 %dms, max %dms, %d slow\n", "latency",
			humanize.Comma(int64(rt.Count)), rt.Average, rt.Median, rt.P95, rt.Max, len(a.Performance.SlowRequests))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderComparisonText writes a comparison table followed by trends.
func RenderComparisonText(w io.Writer, c model.ComparisonReport, t model.Trends) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%-30s %10s %8s %8s %9s %9s\n", "FILE", "LINES", "ERRORS", "RATE", "PATTERNS", "ANOMALIES")
	for _, row := range c.Comparisons {
		fmt.Fprintf(&b, "%-30s %10s %8s %7.2f%% %9d %9d\n", row.Filename,
			humanize.Comma(int64(row.TotalLines)), humanize.Comma(int64(row.ErrorCount)),
			row.ErrorRate, row.Patterns, row.Anomalies)
	}
	for _, in := range c.Insights {
		fmt.Fprintf(&b, "! %s: %s. %s\n", in.Type, in.Description, in.Recommendation)
	}
	if len(t.PatternTrends) > 0 {
		b.WriteString("common patterns\n")
		for _, kc := range t.PatternTrends {
			fmt.Fprintf(&b, "  %5d  %s\n", kc.Count, kc.Key)
		}
	}
	if len(t.AnomalyTrends) > 0 {
		b.WriteString("anomaly types\n")
		for _, kc := range t.AnomalyTrends {
			fmt.Fprintf(&b, "  %5d  %s\n", kc.Count, kc.Key)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

const timeLayout = "2006-01-02 15:04:05"

// palette styles severity tags for w. Writers that are not color terminals
// get plain text.
type palette struct {
	high, medium, low lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	return palette{
		high:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // red bold
		medium: r.NewStyle().Foreground(lipgloss.Color("220")),            // yellow
		low:    r.NewStyle().Foreground(lipgloss.Color("245")),            // gray
	}
}

func (p palette) tag(sev model.Severity) string {
	tag := "[" + string(sev) + "]"
	switch sev {
	case model.SeverityHigh:
		return p.high.Render(tag)
	case model.SeverityMedium:
		return p.medium.Render(tag)
	default:
		return p.low.Render(tag)
	}
}
