package csv

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// encodings maps accepted encoding names to their decoders. Names are
// matched after lowercasing; hyphens and underscores are interchangeable.
var encodings = map[string]encoding.Encoding{
	"latin-1":      charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-2":   charmap.ISO8859_2,
	"windows-1250": charmap.Windows1250,
	"cp1250":       charmap.Windows1250,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"koi8-r":       charmap.KOI8R,
}

func normalizeEncodingName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// KnownEncoding reports whether name can be handled by DecodeReader.
func KnownEncoding(name string) bool {
	switch n := normalizeEncodingName(name); n {
	case "", "utf-8", "utf8":
		return true
	default:
		_, ok := encodings[n]
		return ok
	}
}

// DecodeReader wraps r so that bytes in the named encoding come out as
// UTF-8. UTF-8 input (the default) is passed through untouched.
func DecodeReader(r io.Reader, name string) (io.Reader, error) {
	n := normalizeEncodingName(name)
	if n == "" || n == "utf-8" || n == "utf8" {
		return r, nil
	}
	enc, ok := encodings[n]
	if !ok {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
