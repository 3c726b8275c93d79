package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/crimson-sun/loglens/internal/engine/compactor"
	"github.com/crimson-sun/loglens/internal/model"
	"github.com/crimson-sun/loglens/internal/output"
)

// Output writes reports to stdout as JSON lines or text blocks.
type Output struct {
	mu        sync.Mutex
	w         io.Writer
	format    output.Format
	verbosity compactor.Verbosity
	pretty    bool
}

// New creates a stdout Output with verbosity-aware entry trimming and
// optional pretty-printed JSON.
func New(format output.Format, verbosity compactor.Verbosity, pretty bool) *Output {
	return NewWriter(os.Stdout, format, verbosity, pretty)
}

// NewWriter is New writing to w instead of os.Stdout.
func NewWriter(w io.Writer, format output.Format, verbosity compactor.Verbosity, pretty bool) *Output {
	return &Output{w: w, format: format, verbosity: verbosity, pretty: pretty}
}

func (o *Output) Write(_ context.Context, report model.Report) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	formatted := output.FormatReport(report, o.verbosity)
	if err := output.Encode(o.w, o.format, o.pretty, formatted); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
