package source

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode reads a whole document from r. The name's extension selects
// decompression (.gz, .zst); a UTF-8 or UTF-16 byte order mark selects the
// text encoding, UTF-8 otherwise.
func Decode(name string, r io.Reader, maxSize int64) (Document, error) {
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		var zr *gzip.Reader
		if zr, err = gzip.NewReader(r); err != nil {
			return Document{}, fmt.Errorf("gzip %s: %w", name, err)
		}
		defer zr.Close()
		r = zr
	case ".zst", ".zstd":
		var zr *zstd.Decoder
		if zr, err = zstd.NewReader(r); err != nil {
			return Document{}, fmt.Errorf("zstd %s: %w", name, err)
		}
		defer zr.Close()
		r = zr
	}

	var text io.Reader = transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	if maxSize > 0 {
		text = io.LimitReader(text, maxSize+1)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(text); err != nil {
		return Document{}, fmt.Errorf("read %s: %w", name, err)
	}
	if maxSize > 0 && int64(buf.Len()) > maxSize {
		return Document{}, fmt.Errorf("%s: %w (%d bytes)", name, ErrTooLarge, maxSize)
	}
	return Document{Name: name, Size: int64(buf.Len()), Content: buf.String()}, nil
}
