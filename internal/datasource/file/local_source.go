// Package file implements a local filesystem-backed input source.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local opens one input file from the local disk.
type Local struct{ path string }

// NewLocal returns a Local source bound to the provided filesystem path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Open opens the configured path for reading. A context that is already
// canceled short-circuits without touching the filesystem. Filesystem errors
// are wrapped with the path but stay transparent to errors.Is/As checks
// (e.g. errors.Is(err, os.ErrNotExist)).
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}
