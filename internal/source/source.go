package source

import (
	"context"
	"errors"
)

// ErrTooLarge is returned when a document exceeds Config.MaxSize.
var ErrTooLarge = errors.New("source: document exceeds size limit")

// Source defines the interface all log inputs must implement.
type Source interface {
	// Read loads every document the config names, fully decoded to text.
	Read(ctx context.Context, cfg Config) ([]Document, error)
}

// Config holds input selection settings.
type Config struct {
	Kind    string
	Paths   []string // file paths or glob patterns
	MaxSize int64    // decoded bytes per document; 0 means unlimited
}

// Document is one complete log file as text.
type Document struct {
	Name    string
	Size    int64 // decoded size in bytes
	Content string
}
