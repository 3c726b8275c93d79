// Package multi tees reports to several outputs.
package multi

import (
	"context"
	"errors"
	"fmt"

	"github.com/crimson-sun/loglens/internal/model"
	"github.com/crimson-sun/loglens/internal/output"
)

// Multi delivers each report to every wrapped output in order. A failing
// output does not stop delivery to the ones after it.
type Multi struct {
	outputs []output.Output
}

// New wraps the given outputs.
func New(outputs ...output.Output) *Multi {
	return &Multi{outputs: outputs}
}

// Add appends another destination.
func (m *Multi) Add(o output.Output) {
	m.outputs = append(m.outputs, o)
}

// Write delivers the report to each output. Delivery stops early only when
// ctx is cancelled. Errors carry the index of the output that failed.
func (m *Multi) Write(ctx context.Context, report model.Report) error {
	var errs []error
	for i, o := range m.outputs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := o.Write(ctx, report); err != nil {
			errs = append(errs, fmt.Errorf("output %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes outputs in reverse order and joins their errors.
func (m *Multi) Close() error {
	var errs []error
	for i := len(m.outputs) - 1; i >= 0; i-- {
		if err := m.outputs[i].Close(); err != nil {
			errs = append(errs, fmt.Errorf("output %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
