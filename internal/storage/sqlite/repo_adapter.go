// Package sqlite provides a SQLite-backed storage.Repository implementation.
// This adapter wires the SQLite backend into the storage-agnostic factory and
// registers the DDL builder for kind "sqlite".
package sqlite

import (
	"context"

	"csvclean/internal/storage"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid touching the filesystem.
var newRepository = NewRepository

// wrappedRepo adapts *sqlite.Repository to storage.Repository and provides
// Close.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

var _ storage.Repository = (*wrappedRepo)(nil)

// Close closes the underlying database handle.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

// init registers the "sqlite" backend and its DDL builder with the factory.
func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{
			DSN:     cfg.DSN,
			Table:   cfg.Table,
			Columns: cfg.Columns,
		})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("sqlite", BuildCreateTableSQL)
}
