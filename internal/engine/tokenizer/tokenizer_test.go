package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Database connection failed", []string{"database", "connection", "failed"}},
		{"GET /api/users?id=42 -> 200 (12ms)", []string{"get", "api", "users", "id", "42", "200", "12ms"}},
		{"user_id=7, status: OK!", []string{"user_id", "7", "status", "ok"}},
		{"tab\tseparated\r\nlines", []string{"tab", "separated", "lines"}},
		{"ＦＵＬＬ width", []string{"full", "width"}},
		{"Über naïve café", []string{"über", "naïve", "café"}},
		{"...---!!!", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := Tokenize(tt.input)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTokenizeControlCharacters(t *testing.T) {
	got := Tokenize("bad\x00byte\x07here")
	want := []string{"bad", "byte", "here"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %q, want %q", got, want)
	}
}
