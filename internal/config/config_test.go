package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loglens.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected default log level 'info', got %q", cfg.Log.Level)
	}
	if cfg.Engine.Verbosity != "standard" {
		t.Fatalf("expected default verbosity 'standard', got %q", cfg.Engine.Verbosity)
	}
	if cfg.Output.Format != "json" || cfg.Output.Pretty {
		t.Fatalf("unexpected output defaults: %+v", cfg.Output)
	}
	if cfg.Pipeline.Workers != 4 || cfg.Pipeline.CacheMB != 64 {
		t.Fatalf("unexpected pipeline defaults: %+v", cfg.Pipeline)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate, got: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
engine:
  syslog_year: 2024
  verbosity: full
output:
  format: text
  path: /tmp/reports.txt
  max_size: 1048576
pipeline:
  workers: 8
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Engine.SyslogYear != 2024 || cfg.Engine.Verbosity != "full" {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if cfg.Output.Format != "text" || cfg.Output.MaxSize != 1048576 {
		t.Errorf("unexpected output: %+v", cfg.Output)
	}
	if cfg.Pipeline.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Pipeline.Workers)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Pipeline.CacheMB != 64 {
		t.Errorf("CacheMB = %d, want default 64", cfg.Pipeline.CacheMB)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "output:\n  format: text\npipeline:\n  workers: 8\n")
	t.Setenv("LOGLENS_OUTPUT_FORMAT", "json")
	t.Setenv("LOGLENS_WORKERS", "2")
	t.Setenv("LOGLENS_OUTPUT_PRETTY", "true")
	t.Setenv("LOGLENS_OUTPUT_COMPRESS", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Output.Format != "json" || cfg.Pipeline.Workers != 2 || !cfg.Output.Pretty || !cfg.Output.Compress {
		t.Errorf("env did not override file: %+v", cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "pipeline: [workers\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestValidate_BadVerbosity(t *testing.T) {
	cfg := Default()
	cfg.Engine.Verbosity = "verbose"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid verbosity")
	}
	if !strings.Contains(err.Error(), "verbosity") {
		t.Fatalf("expected error to mention 'verbosity', got: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Output.Format = "xml"
	cfg.Pipeline.Workers = 0
	cfg.Pipeline.CacheMB = -1
	cfg.Output.MaxSize = -5
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for multiple bad fields")
	}
	msg := err.Error()
	for _, want := range []string{"log.level", "output.format", "pipeline.workers", "pipeline.cache_mb", "output.max_size"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected error to mention %q, got: %v", want, msg)
		}
	}
}

func TestValidate_SyslogYearRange(t *testing.T) {
	cfg := Default()
	cfg.Engine.SyslogYear = 10000
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "syslog_year") {
		t.Fatalf("expected syslog_year error, got: %v", err)
	}
}

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name     string
		envVal   string
		set      bool
		fallback int
		want     int
	}{
		{"empty uses fallback", "", false, 1000, 1000},
		{"valid int", "500", true, 1000, 500},
		{"zero", "0", true, 1000, 0},
		{"invalid falls back", "abc", true, 1000, 1000},
		{"negative", "-1", true, 1000, -1},
	}

	const key = "LOGLENS_TEST_GETENVINT"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv(key, tt.envVal)
			} else {
				os.Unsetenv(key)
			}
			got := getenvInt(key, tt.fallback)
			if got != tt.want {
				t.Errorf("getenvInt(%q, %d) = %d, want %d", tt.envVal, tt.fallback, got, tt.want)
			}
		})
	}
}

func TestGetenvBool(t *testing.T) {
	const key = "LOGLENS_TEST_GETENVBOOL"
	t.Setenv(key, "not-a-bool")
	if !getenvBool(key, true) {
		t.Error("invalid bool should fall back")
	}
	t.Setenv(key, "false")
	if getenvBool(key, true) {
		t.Error("expected false")
	}
}
