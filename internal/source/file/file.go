// Package file reads log documents from local paths and glob patterns.
package file

import (
	"context"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/crimson-sun/loglens/internal/source"
)

func init() {
	source.Register("file", func() source.Source {
		return &Source{}
	})
}

// Source implements source.Source for local files.
type Source struct{}

// Read expands cfg.Paths in order and decodes every regular file found.
// A pattern matching nothing is an error; directories are skipped.
func (s *Source) Read(ctx context.Context, cfg source.Config) ([]source.Document, error) {
	paths, err := Expand(cfg.Paths)
	if err != nil {
		return nil, err
	}

	docs := make([]source.Document, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := readFile(p, cfg.MaxSize)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Expand resolves patterns to a de-duplicated list of regular files,
// preserving pattern order. Patterns may use ** to match across directories.
func Expand(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("file source: no paths given")
	}
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, fmt.Errorf("file source: bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("file source: no files match %q", pattern)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}

func readFile(path string, maxSize int64) (source.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return source.Document{}, fmt.Errorf("file source: %w", err)
	}
	defer f.Close()
	return source.Decode(path, f, maxSize)
}
