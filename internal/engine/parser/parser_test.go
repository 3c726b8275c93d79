package parser

import (
	"reflect"
	"testing"
	"time"

	"github.com/crimson-sun/loglens/internal/engine/taxonomy"
	"github.com/crimson-sun/loglens/internal/engine/timestamp"
	"github.com/crimson-sun/loglens/internal/model"
)

func newTestParser() *Parser {
	tax := taxonomy.Default()
	return New(tax, timestamp.New(tax))
}

func TestParseRoundTrip(t *testing.T) {
	p := newTestParser()

	e, ok := p.Parse("2024-01-15 10:30:00 ERROR Database connection failed", 1)
	if !ok {
		t.Fatal("expected an entry")
	}
	if e.Level != model.LevelError {
		t.Errorf("Level = %q, want ERROR", e.Level)
	}
	want := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	if e.Timestamp == nil || !e.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", e.Timestamp, want)
	}
	if e.Message != "Database connection failed" {
		t.Errorf("Message = %q, want %q", e.Message, "Database connection failed")
	}
	if !e.IsError {
		t.Error("IsError = false, want true")
	}
	if !reflect.DeepEqual(e.Tokens, []string{"database", "connection", "failed"}) {
		t.Errorf("Tokens = %q", e.Tokens)
	}
	if e.LineNumber != 1 {
		t.Errorf("LineNumber = %d, want 1", e.LineNumber)
	}
}

func TestParseBlankLines(t *testing.T) {
	p := newTestParser()
	for _, line := range []string{"", "   ", "\t\t", "\r", " \n "} {
		if _, ok := p.Parse(line, 3); ok {
			t.Errorf("Parse(%q) produced an entry, want none", line)
		}
	}
}

func TestParseLevelPriority(t *testing.T) {
	p := newTestParser()
	e, _ := p.Parse("warning: fatal error occurred", 1)
	if e.Level != model.LevelError {
		t.Fatalf("Level = %q, want ERROR", e.Level)
	}
}

func TestParseErrorIndependentOfLevel(t *testing.T) {
	p := newTestParser()
	e, _ := p.Parse("[2024-01-15 10:30:00] [WARN] upstream timeout, retrying", 1)
	if e.Level != model.LevelWarn {
		t.Errorf("Level = %q, want WARN", e.Level)
	}
	if !e.IsError {
		t.Error("IsError = false, want true for timeout signature")
	}
	if e.Message != "upstream timeout, retrying" {
		t.Errorf("Message = %q", e.Message)
	}
}

func TestParseUnknownDegrades(t *testing.T) {
	p := newTestParser()
	e, ok := p.Parse("  just some text  ", 9)
	if !ok {
		t.Fatal("expected an entry")
	}
	if e.Level != model.LevelUnknown {
		t.Errorf("Level = %q, want UNKNOWN", e.Level)
	}
	if e.HasTimestamp() {
		t.Error("expected no timestamp")
	}
	if e.RawLine != "just some text" {
		t.Errorf("RawLine = %q, want trimmed text", e.RawLine)
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"2024-01-15 10:30:00 ERROR Database connection failed", "Database connection failed"},
		{"2024-01-15T10:30:00.123Z INFO started", "started"},
		{"2024-01-15T10:30:00+02:00 [debug] cache warm", "cache warm"},
		{"[2024-01-15 10:30:00] [WARN] slow", "slow"},
		{"Jan 15 10:30:00 host sshd[42]: accepted", "host sshd[42]: accepted"},
		{"WARNING: disk nearly full", "disk nearly full"},
		{"Error connecting to db", "Error connecting to db"},
		{"[error] boom", "boom"},
		{"plain message", "plain message"},
	}

	for _, tt := range tests {
		if got := Message(tt.line); got != tt.want {
			t.Errorf("Message(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
