package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/crimson-sun/loglens/internal/engine"
	"github.com/crimson-sun/loglens/internal/engine/testdata"
	"github.com/crimson-sun/loglens/internal/metrics"
	"github.com/crimson-sun/loglens/internal/model"
	"github.com/crimson-sun/loglens/internal/source"
)

type stubSource struct {
	docs []source.Document
	err  error
}

func (s *stubSource) Read(context.Context, source.Config) ([]source.Document, error) {
	return s.docs, s.err
}

type mockOutput struct {
	mu      sync.Mutex
	reports []model.Report
	failOn  string
	closed  bool
}

func (m *mockOutput) Write(_ context.Context, r model.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.Filename == m.failOn {
		return errors.New("sink rejected report")
	}
	m.reports = append(m.reports, r)
	return nil
}

func (m *mockOutput) Close() error {
	m.closed = true
	return nil
}

func docs() []source.Document {
	sample := testdata.Sample()
	syslog := testdata.MustLoad("syslog.log")
	return []source.Document{
		{Name: "sample.log", Size: int64(len(sample)), Content: sample},
		{Name: "syslog.log", Size: int64(len(syslog)), Content: syslog},
		{Name: "blank.log", Content: "\n\n"},
	}
}

func TestRunPreservesOrder(t *testing.T) {
	out := &mockOutput{}
	p := New(&stubSource{docs: docs()}, engine.New(), out, WithWorkers(3))

	reports, err := p.Run(context.Background(), source.Config{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(reports) != 3 || len(out.reports) != 3 {
		t.Fatalf("got %d reports / %d written, want 3", len(reports), len(out.reports))
	}
	for i, want := range []string{"sample.log", "syslog.log", "blank.log"} {
		if out.reports[i].Filename != want {
			t.Errorf("report %d = %q, want %q", i, out.reports[i].Filename, want)
		}
	}

	r := reports[0]
	if r.RunID == "" || r.RunID != reports[2].RunID {
		t.Errorf("run IDs = %q, %q; want one shared non-empty ID", r.RunID, reports[2].RunID)
	}
	if r.Size != int64(len(testdata.Sample())) {
		t.Errorf("Size = %d", r.Size)
	}
	if r.Summary.Overview.TotalLines != r.Analysis.TotalLines || r.Summary.ErrorAnalysis.TotalErrors != 3 {
		t.Errorf("summary does not match analysis: %+v", r.Summary)
	}
	if len(r.Entries) != r.Analysis.ParsedLines {
		t.Errorf("got %d entries, want %d", len(r.Entries), r.Analysis.ParsedLines)
	}
}

func TestRunSourceError(t *testing.T) {
	p := New(&stubSource{err: errors.New("no such file")}, engine.New(), &mockOutput{})
	if _, err := p.Run(context.Background(), source.Config{}); err == nil {
		t.Fatal("expected error from source")
	}
}

func TestRunContinuesPastOutputFailure(t *testing.T) {
	out := &mockOutput{failOn: "syslog.log"}
	p := New(&stubSource{docs: docs()}, engine.New(), out, WithWorkers(2))

	reports, err := p.Run(context.Background(), source.Config{})
	if err == nil || !strings.Contains(err.Error(), "syslog.log") {
		t.Fatalf("Run() error = %v, want failure naming syslog.log", err)
	}
	if len(reports) != 2 || len(out.reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := &mockOutput{}
	reports, err := New(&stubSource{docs: docs()}, engine.New(), out).Run(ctx, source.Config{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(reports) != 0 {
		t.Errorf("got %d reports after cancel, want 0", len(reports))
	}
}

func TestRunCacheAndMetrics(t *testing.T) {
	cache, err := NewCache(context.Background(), 8)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}
	defer cache.Close()
	m := metrics.New()

	content := testdata.Sample()
	src := &stubSource{docs: []source.Document{
		{Name: "a.log", Content: content},
		{Name: "copy-of-a.log", Content: content},
	}}
	reports, err := New(src, engine.New(), &mockOutput{}, WithCache(cache), WithMetrics(m)).Run(context.Background(), source.Config{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if cache.Len() != 1 {
		t.Errorf("cache holds %d analyses, want 1", cache.Len())
	}
	if reports[1].Analysis.Filename != "copy-of-a.log" {
		t.Errorf("cached result filename = %q, want copy-of-a.log", reports[1].Analysis.Filename)
	}
	if reports[1].Analysis.ErrorCount != reports[0].Analysis.ErrorCount {
		t.Error("cached result differs from the original")
	}

	path := filepath.Join(t.TempDir(), "run.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	for _, want := range []string{"loglens_analyses_total 1", "loglens_cache_hits_total 1"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestKeyStable(t *testing.T) {
	if Key("abc") != Key("abc") || Key("abc") == Key("abd") {
		t.Fatal("Key should be a stable content hash")
	}
}

func TestClose(t *testing.T) {
	out := &mockOutput{}
	if err := New(&stubSource{}, engine.New(), out).Close(); err != nil {
		t.Fatal(err)
	}
	if !out.closed {
		t.Error("output not closed")
	}
}
