package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/crimson-sun/loglens/internal/engine/compactor"
	"github.com/crimson-sun/loglens/internal/output"
)

// Config holds all loglens configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Engine   EngineConfig   `yaml:"engine"`
	Output   OutputConfig   `yaml:"output"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json", "console"; empty picks by output
}

// EngineConfig holds analysis engine settings.
type EngineConfig struct {
	SyslogYear int    `yaml:"syslog_year"` // year given to short month/day stamps
	Verbosity  string `yaml:"verbosity"`   // "minimal", "standard", "full"
}

// OutputConfig holds report destination settings.
type OutputConfig struct {
	Format   string `yaml:"format"` // "json", "text"
	Pretty   bool   `yaml:"pretty"`
	Path     string `yaml:"path"`     // empty writes to stdout only
	MaxSize  int64  `yaml:"max_size"` // rotation threshold in bytes; 0 disables
	Compress bool   `yaml:"compress"` // gzip rotated backups
}

// PipelineConfig holds run settings.
type PipelineConfig struct {
	Workers  int   `yaml:"workers"`
	CacheMB  int   `yaml:"cache_mb"`  // 0 disables the result cache
	MaxInput int64 `yaml:"max_input"` // decoded bytes per file; 0 means unlimited
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // empty disables export
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Log:      LogConfig{Level: "info"},
		Engine:   EngineConfig{Verbosity: "standard"},
		Output:   OutputConfig{Format: "json"},
		Pipeline: PipelineConfig{Workers: 4, CacheMB: 64},
	}
}

// Load builds a Config from defaults, then the YAML file at path (skipped
// when path is empty), then LOGLENS_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Log.Level = getenv("LOGLENS_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getenv("LOGLENS_LOG_FORMAT", cfg.Log.Format)
	cfg.Engine.SyslogYear = getenvInt("LOGLENS_SYSLOG_YEAR", cfg.Engine.SyslogYear)
	cfg.Engine.Verbosity = getenv("LOGLENS_VERBOSITY", cfg.Engine.Verbosity)
	cfg.Output.Format = getenv("LOGLENS_OUTPUT_FORMAT", cfg.Output.Format)
	cfg.Output.Pretty = getenvBool("LOGLENS_OUTPUT_PRETTY", cfg.Output.Pretty)
	cfg.Output.Path = getenv("LOGLENS_OUTPUT_PATH", cfg.Output.Path)
	cfg.Output.MaxSize = getenvInt64("LOGLENS_OUTPUT_MAX_SIZE", cfg.Output.MaxSize)
	cfg.Output.Compress = getenvBool("LOGLENS_OUTPUT_COMPRESS", cfg.Output.Compress)
	cfg.Pipeline.Workers = getenvInt("LOGLENS_WORKERS", cfg.Pipeline.Workers)
	cfg.Pipeline.CacheMB = getenvInt("LOGLENS_CACHE_MB", cfg.Pipeline.CacheMB)
	cfg.Pipeline.MaxInput = getenvInt64("LOGLENS_MAX_INPUT", cfg.Pipeline.MaxInput)
	cfg.Metrics.Textfile = getenv("LOGLENS_METRICS_TEXTFILE", cfg.Metrics.Textfile)
}

// Validate checks the config for values that would fail later. All
// problems are reported together.
func (c Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format: must be json or console, got %q", c.Log.Format))
	}
	if _, err := compactor.ParseVerbosity(c.Engine.Verbosity); err != nil {
		errs = append(errs, fmt.Errorf("engine.verbosity: %w", err))
	}
	if c.Engine.SyslogYear < 0 || c.Engine.SyslogYear > 9999 {
		errs = append(errs, fmt.Errorf("engine.syslog_year: must be in [0, 9999], got %d", c.Engine.SyslogYear))
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	if c.Output.MaxSize < 0 {
		errs = append(errs, fmt.Errorf("output.max_size: must not be negative, got %d", c.Output.MaxSize))
	}
	if c.Pipeline.Workers < 1 {
		errs = append(errs, fmt.Errorf("pipeline.workers: must be at least 1, got %d", c.Pipeline.Workers))
	}
	if c.Pipeline.CacheMB < 0 {
		errs = append(errs, fmt.Errorf("pipeline.cache_mb: must not be negative, got %d", c.Pipeline.CacheMB))
	}
	if c.Pipeline.MaxInput < 0 {
		errs = append(errs, fmt.Errorf("pipeline.max_input: must not be negative, got %d", c.Pipeline.MaxInput))
	}

	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
