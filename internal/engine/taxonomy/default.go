package taxonomy

import "regexp"

// DefaultLevels returns the level classifiers. Order matters: a line naming
// both an ERROR and a WARN synonym is an ERROR.
func DefaultLevels() []Rule {
	return []Rule{
		{Name: "ERROR", Priority: 0, Pattern: regexp.MustCompile(`(?i)\b(error|err|exception|fail|fatal|critical)\b`)},
		{Name: "WARN", Priority: 1, Pattern: regexp.MustCompile(`(?i)\b(warn|warning|caution)\b`)},
		{Name: "INFO", Priority: 2, Pattern: regexp.MustCompile(`(?i)\b(info|information|notice)\b`)},
		{Name: "DEBUG", Priority: 3, Pattern: regexp.MustCompile(`(?i)\b(debug|trace|verbose)\b`)},
	}
}

// DefaultSignatures returns the domain error signatures. Any match flags a
// line as an error regardless of its level.
func DefaultSignatures() []Rule {
	return []Rule{
		{Name: "resource_failure", Priority: 0, Pattern: regexp.MustCompile(`(?i)\b(timeout|connection.*refused|out.*of.*memory|null.*pointer|segmentation.*fault)\b`)},
		{Name: "http_status", Priority: 1, Pattern: regexp.MustCompile(`\b(404|500|502|503|504)\b`)},
		{Name: "dependency_failure", Priority: 2, Pattern: regexp.MustCompile(`(?i)\b(failed.*to.*connect|database.*(error|fail\w*)|connection.*failed|authentication.*failed)\b`)},
		{Name: "stack_trace", Priority: 3, Pattern: regexp.MustCompile(`(?i)\b(stack.*trace|exception|error.*code)\b`)},
	}
}

// DefaultTimestampFormats returns the timestamp surface patterns.
func DefaultTimestampFormats() []TimestampFormat {
	return []TimestampFormat{
		{Name: "datetime", Priority: 0, Surface: regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)},
		{Name: "slash_datetime", Priority: 1, Surface: regexp.MustCompile(`\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}`)},
		{Name: "syslog", Priority: 2, Surface: regexp.MustCompile(`\w{3} \d{2} \d{2}:\d{2}:\d{2}`)},
		{Name: "iso8601", Priority: 3, Surface: regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)},
		{Name: "bracketed", Priority: 4, Surface: regexp.MustCompile(`\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\]`)},
	}
}

// SyslogLayout is the layout of short month/day/time stamps, which carry no year.
const SyslogLayout = "Jan 02 15:04:05"

// DefaultLayouts returns the layouts tried, in order, against matched text.
func DefaultLayouts() []string {
	return []string{
		"2006-01-02 15:04:05",
		"01/02/2006 15:04:05",
		SyslogLayout,
		"2006-01-02T15:04:05",
		"[2006-01-02 15:04:05]",
	}
}
