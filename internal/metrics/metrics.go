// Package metrics keeps Prometheus counters for analysis runs. A batch CLI
// has no scrape endpoint, so the registry is exported as a node-exporter
// textfile instead.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/crimson-sun/loglens/internal/model"
)

const namespace = "loglens"

// Metrics owns a private registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	analyses  prometheus.Counter
	failures  prometheus.Counter
	cacheHits prometheus.Counter
	lines     *prometheus.CounterVec
	findings  *prometheus.CounterVec
	duration  prometheus.Histogram
}

// New creates a Metrics with all collectors registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Files analyzed successfully.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_failures_total",
			Help:      "Files that failed to load or analyze.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Analyses served from the content cache.",
		}),
		lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Lines seen, by state.",
		}, []string{"state"}),
		findings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "findings_total",
			Help:      "Patterns and anomalies reported, by kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Time spent analyzing one file.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
	m.registry.MustRegister(m.analyses, m.failures, m.cacheHits, m.lines, m.findings, m.duration)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveAnalysis records a successful analysis that took d.
func (m *Metrics) ObserveAnalysis(r model.AnalysisResult, d time.Duration) {
	m.analyses.Inc()
	m.duration.Observe(d.Seconds())
	m.lines.WithLabelValues("total").Add(float64(r.TotalLines))
	m.lines.WithLabelValues("parsed").Add(float64(r.ParsedLines))
	m.lines.WithLabelValues("error").Add(float64(r.ErrorCount))
	m.findings.WithLabelValues("pattern").Add(float64(len(r.Patterns)))
	m.findings.WithLabelValues("anomaly").Add(float64(len(r.Anomalies)))
}

// ObserveFailure records a file that produced no result.
func (m *Metrics) ObserveFailure() { m.failures.Inc() }

// ObserveCacheHit records a result reused from the cache.
func (m *Metrics) ObserveCacheHit() { m.cacheHits.Inc() }

// WriteTextfile atomically writes the registry in text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
