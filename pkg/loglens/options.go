package loglens

import "go.uber.org/zap"

type options struct {
	logger     *zap.Logger
	syslogYear int
}

// Option configures an Analyzer.
type Option func(*options)

// WithLogger sets the logger used for per-analysis debug records.
// Default: a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSyslogYear sets the year assigned to syslog timestamps, which carry
// none. Default: 0.
func WithSyslogYear(year int) Option {
	return func(o *options) {
		o.syslogYear = year
	}
}
