package testdata

import (
	"strings"
	"testing"
)

func TestLoadFixtures(t *testing.T) {
	names := Names()
	if len(names) < 2 {
		t.Fatalf("expected at least 2 fixtures, got %v", names)
	}
	for _, name := range names {
		s, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) error: %v", name, err)
		}
		if strings.TrimSpace(s) == "" {
			t.Errorf("fixture %q is empty", name)
		}
	}
}

func TestSampleShape(t *testing.T) {
	lines := strings.Split(Sample(), "\n")
	if len(lines) != 11 {
		t.Fatalf("sample has %d split lines, want 11", len(lines))
	}
	blank := 0
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			blank++
		}
	}
	if blank != 2 {
		t.Errorf("sample has %d blank lines, want 2 (one inline, one trailing)", blank)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load("nope.log"); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}
