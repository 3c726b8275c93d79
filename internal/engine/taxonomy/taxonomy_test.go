package taxonomy

import (
	"regexp"
	"testing"
)

func TestDefaultLevelOrder(t *testing.T) {
	tax := Default()
	want := []string{"ERROR", "WARN", "INFO", "DEBUG"}
	levels := tax.Levels()
	if len(levels) != len(want) {
		t.Fatalf("got %d level rules, want %d", len(levels), len(want))
	}
	for i, r := range levels {
		if r.Name != want[i] {
			t.Errorf("levels[%d] = %q, want %q", i, r.Name, want[i])
		}
	}
}

func TestDefaultTimestampTables(t *testing.T) {
	tax := Default()
	if got := len(tax.Timestamps()); got != 5 {
		t.Fatalf("got %d timestamp formats, want 5", got)
	}
	if got := len(tax.Layouts()); got != 5 {
		t.Fatalf("got %d layouts, want 5", got)
	}
	if tax.Timestamps()[0].Name != "datetime" {
		t.Errorf("first timestamp format = %q, want datetime", tax.Timestamps()[0].Name)
	}
}

func TestNewSortsStablyByPriority(t *testing.T) {
	levels := []Rule{
		{Name: "c", Priority: 2, Pattern: regexp.MustCompile(`c`)},
		{Name: "a1", Priority: 0, Pattern: regexp.MustCompile(`a`)},
		{Name: "b", Priority: 1, Pattern: regexp.MustCompile(`b`)},
		{Name: "a2", Priority: 0, Pattern: regexp.MustCompile(`a`)},
	}
	tax, err := New(levels, nil, nil, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	want := []string{"a1", "a2", "b", "c"}
	for i, r := range tax.Levels() {
		if r.Name != want[i] {
			t.Errorf("Levels()[%d] = %q, want %q", i, r.Name, want[i])
		}
	}
	// Input slice must not be reordered.
	if levels[0].Name != "c" {
		t.Error("New reordered the caller's slice")
	}
}

func TestNewRejectsMissingPattern(t *testing.T) {
	_, err := New([]Rule{{Name: "broken"}}, nil, nil, nil)
	if err == nil {
		t.Fatal("expected error for rule without pattern")
	}
}

func TestNewRejectsFormatsWithoutLayouts(t *testing.T) {
	_, err := New(nil, nil, DefaultTimestampFormats(), nil)
	if err == nil {
		t.Fatal("expected error for timestamp formats without layouts")
	}
}
