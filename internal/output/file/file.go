package file

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/crimson-sun/loglens/internal/engine/compactor"
	"github.com/crimson-sun/loglens/internal/model"
	"github.com/crimson-sun/loglens/internal/output"
)

const (
	defaultBufSize = 64 * 1024 // 64KB
	maxBackups     = 10
)

// Option configures a file Output.
type Option func(*Output)

// WithMaxSize sets the file size (bytes) at which rotation triggers.
// 0 (default) disables rotation.
func WithMaxSize(bytes int64) Option {
	return func(o *Output) { o.maxSize = bytes }
}

// WithBufSize sets the bufio.Writer buffer size. Default: 64KB.
func WithBufSize(bytes int) Option {
	return func(o *Output) { o.bufSize = bytes }
}

// WithFormat selects JSON lines (default) or text blocks.
func WithFormat(f output.Format) Option {
	return func(o *Output) { o.format = f }
}

// WithCompress gzips each backup as it is rotated out, so backups are named
// {path}.N.gz instead of {path}.N.
func WithCompress(on bool) Option {
	return func(o *Output) { o.compress = on }
}

// segment is the file currently being appended to.
type segment struct {
	f    *os.File
	w    *bufio.Writer
	size int64
}

func openSegment(path string, bufSize int) (*segment, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("file output: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("file output: stat %s: %w", path, err)
	}
	return &segment{f: f, w: bufio.NewWriterSize(f, bufSize), size: info.Size()}, nil
}

func (s *segment) close() error {
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}

// Output appends reports to a file with optional size-based rotation.
// A single report is never split across files.
type Output struct {
	mu        sync.Mutex
	cur       *segment
	path      string
	format    output.Format
	verbosity compactor.Verbosity
	maxSize   int64
	bufSize   int
	compress  bool
}

// New creates a file output that appends to the given path.
func New(path string, verbosity compactor.Verbosity, opts ...Option) (*Output, error) {
	o := &Output{
		path:      path,
		format:    output.JSON,
		verbosity: verbosity,
		bufSize:   defaultBufSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	seg, err := openSegment(path, o.bufSize)
	if err != nil {
		return nil, err
	}
	o.cur = seg
	return o, nil
}

// Write encodes the report and appends it to the file.
func (o *Output) Write(_ context.Context, report model.Report) error {
	var buf bytes.Buffer
	if err := output.Encode(&buf, o.format, false, output.FormatReport(report, o.verbosity)); err != nil {
		return fmt.Errorf("file output: encode: %w", err)
	}
	if o.format == output.Text {
		buf.WriteByte('\n')
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.full(int64(buf.Len())) {
		if err := o.rotate(); err != nil {
			return fmt.Errorf("file output: rotate: %w", err)
		}
	}

	n, err := o.cur.w.Write(buf.Bytes())
	o.cur.size += int64(n)
	if err != nil {
		return fmt.Errorf("file output: write: %w", err)
	}
	return nil
}

// full reports whether appending n bytes would push a non-empty segment past
// maxSize.
func (o *Output) full(n int64) bool {
	return o.maxSize > 0 && o.cur.size > 0 && o.cur.size+n > o.maxSize
}

// Close flushes the buffer and closes the file.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.cur.close(); err != nil {
		return fmt.Errorf("file output: close: %w", err)
	}
	return nil
}

func (o *Output) backup(i int) string {
	if o.compress {
		return fmt.Sprintf("%s.%d.gz", o.path, i)
	}
	return fmt.Sprintf("%s.%d", o.path, i)
}

// rotate closes the current segment, shifts backups up by one (dropping the
// oldest) and starts a fresh segment at path.
func (o *Output) rotate() error {
	if err := o.cur.close(); err != nil {
		return err
	}

	os.Remove(o.backup(maxBackups))
	for i := maxBackups - 1; i >= 1; i-- {
		if err := os.Rename(o.backup(i), o.backup(i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	if o.compress {
		if err := gzipFile(o.path, o.backup(1)); err != nil {
			return err
		}
		if err := os.Remove(o.path); err != nil {
			return err
		}
	} else if err := os.Rename(o.path, o.backup(1)); err != nil {
		return err
	}

	seg, err := openSegment(o.path, o.bufSize)
	if err != nil {
		return err
	}
	o.cur = seg
	return nil
}

func gzipFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		zw.Close()
		out.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
