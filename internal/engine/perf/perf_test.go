package perf

import (
	"fmt"
	"math"
	"testing"

	"github.com/crimson-sun/loglens/internal/model"
)

func TestResponseTime(t *testing.T) {
	tests := []struct {
		msg  string
		want int64
		ok   bool
	}{
		{"GET /api 200 12ms", 12, true},
		{"query took 340 milliseconds", 0, false}, // unit must follow the digits
		{"query took 340milliseconds", 340, true},
		{"took 1millisecond", 1, true},
		{"latency=87MS", 87, true},
		{"first 10ms then 20ms", 10, true},
		{"no latency here", 0, false},
		{"overflow 99999999999999999999999ms", math.MaxInt64, true},
	}
	for _, tt := range tests {
		got, ok := ResponseTime(tt.msg)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ResponseTime(%q) = %d, %v; want %d, %v", tt.msg, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAnalyzeNoSamples(t *testing.T) {
	p := Analyze([]model.ParsedEntry{{LineNumber: 1, Message: "hello"}})
	if p.ResponseTime != nil {
		t.Fatalf("expected nil ResponseTime, got %+v", p.ResponseTime)
	}
	if p.SlowRequests == nil || len(p.SlowRequests) != 0 {
		t.Fatalf("expected empty SlowRequests, got %+v", p.SlowRequests)
	}
}

func TestAnalyzeStatistics(t *testing.T) {
	var entries []model.ParsedEntry
	for i := 1; i <= 20; i++ {
		entries = append(entries, model.ParsedEntry{LineNumber: i, Message: fmt.Sprintf("served in %dms", i*10)})
	}
	entries = append(entries, model.ParsedEntry{LineNumber: 21, Message: "served in 5000ms"})

	p := Analyze(entries)
	rt := p.ResponseTime
	if rt == nil {
		t.Fatal("expected ResponseTime stats")
	}
	if rt.Count != 21 {
		t.Errorf("Count = %d, want 21", rt.Count)
	}
	if rt.Max != 5000 {
		t.Errorf("Max = %d, want 5000", rt.Max)
	}
	// Sum = 10+...+200 (2100) + 5000 = 7100 over 21.
	if rt.Average != 338.1 {
		t.Errorf("Average = %v, want 338.1", rt.Average)
	}
	if rt.Median != 110 {
		t.Errorf("Median = %v, want 110", rt.Median)
	}
	// ceil(0.95*21)-1 = 19 -> 200.
	if rt.P95 != 200 {
		t.Errorf("P95 = %d, want 200", rt.P95)
	}
	if len(p.SlowRequests) != 1 || p.SlowRequests[0].LineNumber != 21 {
		t.Fatalf("SlowRequests = %+v, want only line 21", p.SlowRequests)
	}
	if p.SlowRequests[0].ResponseTimeMs != 5000 {
		t.Errorf("ResponseTimeMs = %d", p.SlowRequests[0].ResponseTimeMs)
	}
}

func TestAnalyzeKeepsOversizedValues(t *testing.T) {
	entries := []model.ParsedEntry{
		{LineNumber: 1, Message: "took 99999999999999999999ms"},
		{LineNumber: 2, Message: "took 5ms"},
	}
	rt := Analyze(entries).ResponseTime
	if rt == nil {
		t.Fatal("expected ResponseTime stats")
	}
	if rt.Count != 2 {
		t.Errorf("Count = %d, want 2", rt.Count)
	}
	if rt.Max != math.MaxInt64 {
		t.Errorf("Max = %d, want %d", rt.Max, int64(math.MaxInt64))
	}
	if rt.P95 != math.MaxInt64 {
		t.Errorf("P95 = %d, want %d", rt.P95, int64(math.MaxInt64))
	}
}

func TestAnalyzeCapsSlowRequests(t *testing.T) {
	var entries []model.ParsedEntry
	n := 0
	for i := 0; i < 1000; i++ {
		n++
		entries = append(entries, model.ParsedEntry{LineNumber: n, Message: "1ms"})
	}
	for i := 0; i < 30; i++ {
		n++
		entries = append(entries, model.ParsedEntry{LineNumber: n, Message: "9000ms"})
	}

	p := Analyze(entries)
	if len(p.SlowRequests) != 20 {
		t.Fatalf("got %d slow requests, want 20", len(p.SlowRequests))
	}
	if p.SlowRequests[0].LineNumber != 1001 {
		t.Errorf("first slow request at line %d, want 1001", p.SlowRequests[0].LineNumber)
	}
}
