// Package pipeline runs documents from a source through the engine and
// delivers one report per document to an output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crimson-sun/loglens/internal/engine"
	"github.com/crimson-sun/loglens/internal/engine/summary"
	"github.com/crimson-sun/loglens/internal/metrics"
	"github.com/crimson-sun/loglens/internal/model"
	"github.com/crimson-sun/loglens/internal/output"
	"github.com/crimson-sun/loglens/internal/source"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Default: no-op.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithWorkers bounds how many documents are analyzed at once. Default: 1.
func WithWorkers(n int) Option {
	return func(p *Pipeline) { p.workers = n }
}

// WithCache reuses results for documents with identical content.
func WithCache(c *Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// WithMetrics records every analysis on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// Pipeline connects a source, engine, and output into a processing pipeline.
type Pipeline struct {
	source  source.Source
	engine  *engine.Engine
	output  output.Output
	logger  *zap.Logger
	metrics *metrics.Metrics
	cache   *Cache
	workers int
}

// New creates a Pipeline from the given components.
func New(src source.Source, eng *engine.Engine, out output.Output, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:  src,
		engine:  eng,
		output:  out,
		logger:  zap.NewNop(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers < 1 {
		p.workers = 1
	}
	return p
}

// Run reads every document cfg names, analyzes them on the worker pool and
// writes reports to the output in document order. A document that fails
// does not stop the others; all failures are joined into the returned
// error alongside the reports that succeeded.
func (p *Pipeline) Run(ctx context.Context, cfg source.Config) ([]model.Report, error) {
	docs, err := p.source.Read(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pipeline read: %w", err)
	}

	runID := uuid.NewString()
	p.logger.Info("run started",
		zap.String("run_id", runID),
		zap.Int("documents", len(docs)),
		zap.Int("workers", p.workers),
	)

	reports := make([]model.Report, len(docs))
	errs := make([]error, len(docs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(p.workers, len(docs)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				reports[i], errs[i] = p.analyze(runID, docs[i])
			}
		}()
	}

feed:
	for i := range docs {
		if ctx.Err() == nil {
			select {
			case <-ctx.Done():
			case jobs <- i:
				continue
			}
		}
		for j := i; j < len(docs); j++ {
			errs[j] = fmt.Errorf("%s: %w", docs[j].Name, ctx.Err())
		}
		break feed
	}
	close(jobs)
	wg.Wait()

	var out []model.Report
	for i, r := range reports {
		if errs[i] != nil {
			continue
		}
		if err := p.output.Write(ctx, r); err != nil {
			errs[i] = fmt.Errorf("pipeline output %s: %w", r.Filename, err)
			continue
		}
		out = append(out, r)
	}

	joined := errors.Join(errs...)
	p.logger.Info("run finished",
		zap.String("run_id", runID),
		zap.Int("reports", len(out)),
		zap.Int("failed", len(docs)-len(out)),
	)
	return out, joined
}

func (p *Pipeline) analyze(runID string, doc source.Document) (model.Report, error) {
	start := time.Now()
	key := ""
	if p.cache != nil {
		key = Key(doc.Content)
		if r, entries, ok := p.cache.Get(key); ok {
			r.Filename = doc.Name
			p.logger.Debug("cache hit", zap.String("filename", doc.Name), zap.String("key", key))
			if p.metrics != nil {
				p.metrics.ObserveCacheHit()
			}
			return p.report(runID, doc, r, entries), nil
		}
	}

	r, entries, err := p.engine.Analyze(doc.Content, doc.Name)
	if err != nil {
		p.logger.Warn("analysis failed", zap.String("filename", doc.Name), zap.Error(err))
		if p.metrics != nil {
			p.metrics.ObserveFailure()
		}
		return model.Report{}, err
	}
	if p.metrics != nil {
		p.metrics.ObserveAnalysis(r, time.Since(start))
	}
	if p.cache != nil {
		if err := p.cache.Set(key, r, entries); err != nil {
			p.logger.Warn("result not cached", zap.String("filename", doc.Name), zap.Error(err))
		}
	}
	return p.report(runID, doc, r, entries), nil
}

func (p *Pipeline) report(runID string, doc source.Document, r model.AnalysisResult, entries []model.ParsedEntry) model.Report {
	return model.Report{
		RunID:    runID,
		Filename: doc.Name,
		Size:     doc.Size,
		Analysis: r,
		Summary:  summary.Summarize(r),
		Entries:  entries,
	}
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
