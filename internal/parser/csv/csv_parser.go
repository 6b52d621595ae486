// Package csv parses delimited text into an in-memory table of string cells.
//
// Parsing behavior is declared entirely by Options; there is no ambient
// configuration. Every field is returned verbatim as a string: no NA
// detection, no numeric or date inference. A row shorter than the header is
// padded with missing cells, a longer one is truncated, so ragged input is
// tolerated rather than rejected.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"csvclean/internal/table"
)

// Options configures the parser. The zero value reads comma-separated UTF-8
// with strict quoting.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// Encoding names the input character encoding, e.g. "latin-1" or
	// "windows-1250". Empty means UTF-8.
	Encoding string

	// LazyQuotes relaxes quote handling so a stray quote inside a field does
	// not abort the read.
	LazyQuotes bool
}

// Parser parses delimited input according to Options. It is safe to reuse
// across inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse consumes all records from r and returns them as a table. The first
// record is the header: cells are trimmed, a UTF-8 BOM on the first cell is
// stripped, and repeated names are disambiguated ("a", "a.1", "a.2").
//
// Input with no header at all yields a zero-column, zero-row table; a
// header-only input yields the columns and zero rows.
func (p *Parser) Parse(r io.Reader) (*table.Table, error) {
	r, err := DecodeReader(r, p.opt.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.Comma = ','
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = p.opt.LazyQuotes
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return table.New(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make([]string, len(header))
	for i, c := range header {
		cols[i] = strings.TrimSpace(c)
	}
	tab := table.New(uniqueHeaders(StripHeaderBOM(cols)))

	// Data starts on line 2; the line number is only used in errors.
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		cells := make([]table.Cell, len(row))
		for i, v := range row {
			cells[i] = table.NewCell(v)
		}
		tab.AppendRow(cells)
	}
	return tab, nil
}

// uniqueHeaders disambiguates repeated header names the way dataframe
// loaders commonly do: the second "a" becomes "a.1", the third "a.2".
func uniqueHeaders(h []string) []string {
	seen := make(map[string]int, len(h))
	out := make([]string, len(h))
	for i, c := range h {
		n, dup := seen[c]
		if !dup {
			seen[c] = 0
			out[i] = c
			continue
		}
		for {
			n++
			cand := fmt.Sprintf("%s.%d", c, n)
			if _, taken := seen[cand]; !taken {
				seen[c] = n
				seen[cand] = 0
				out[i] = cand
				break
			}
		}
	}
	return out
}
