// Package stdin reads a single log document from standard input.
package stdin

import (
	"context"
	"io"
	"os"

	"github.com/crimson-sun/loglens/internal/source"
)

// Name is the document name given to standard input.
const Name = "stdin"

func init() {
	source.Register("stdin", func() source.Source {
		return &Source{Reader: os.Stdin}
	})
}

// Source implements source.Source over an io.Reader, os.Stdin by default.
type Source struct {
	Reader io.Reader
}

// Read decodes the whole stream as one document. A first path, if given,
// names the document so that a compression extension can be honored.
func (s *Source) Read(ctx context.Context, cfg source.Config) ([]source.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := Name
	if len(cfg.Paths) > 0 && cfg.Paths[0] != "" && cfg.Paths[0] != "-" {
		name = cfg.Paths[0]
	}
	doc, err := source.Decode(name, s.Reader, cfg.MaxSize)
	if err != nil {
		return nil, err
	}
	return []source.Document{doc}, nil
}
