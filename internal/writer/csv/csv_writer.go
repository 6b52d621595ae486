// Package csv serializes a table back to delimited text. The writer tees
// everything it emits through an xxh3 hash so callers can record the output
// checksum and size without re-reading the file.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"

	"csvclean/internal/table"
)

// Options configures serialization. Comma defaults to ','.
type Options struct {
	Comma   rune
	UseCRLF bool
}

// Result describes the bytes emitted by a single Write.
type Result struct {
	Bytes    int64
	Checksum uint64
}

// Writer serializes tables according to Options. Safe to reuse across
// tables, not concurrency-safe.
type Writer struct{ opt Options }

// NewWriter constructs a Writer with the provided Options.
func NewWriter(opt Options) *Writer { return &Writer{opt: opt} }

// countingHashWriter tees written bytes into a running xxh3 hash and count.
type countingHashWriter struct {
	w io.Writer
	h *xxh3.Hasher
	n int64
}

func (cw *countingHashWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	if n > 0 {
		_, _ = cw.h.Write(p[:n])
		cw.n += int64(n)
	}
	return n, err
}

// Write emits the header and all rows using the configured separator,
// preserving column and row order. Missing cells serialize as empty fields.
// A zero-column table produces no bytes; a zero-row table produces the
// header line only.
func (wr *Writer) Write(w io.Writer, t *table.Table) (Result, error) {
	cw := &countingHashWriter{w: w, h: xxh3.New()}

	if t.NumCols() > 0 {
		cwr := csv.NewWriter(cw)
		if wr.opt.Comma != 0 {
			cwr.Comma = wr.opt.Comma
		}
		cwr.UseCRLF = wr.opt.UseCRLF

		if err := cwr.Write(t.Columns); err != nil {
			return Result{}, fmt.Errorf("write header: %w", err)
		}
		fields := make([]string, t.NumCols())
		for i, row := range t.Rows {
			for j, c := range row {
				if c.Missing {
					fields[j] = ""
				} else {
					fields[j] = c.Val
				}
			}
			if err := cwr.Write(fields); err != nil {
				return Result{}, fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
		cwr.Flush()
		if err := cwr.Error(); err != nil {
			return Result{}, err
		}
	}
	return Result{Bytes: cw.n, Checksum: cw.h.Sum64()}, nil
}

// WriteFile writes the table to path, creating parent directories as needed.
func (wr *Writer) WriteFile(path string, t *table.Table) (Result, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return Result{}, err
	}
	res, werr := wr.Write(f, t)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	return res, werr
}
