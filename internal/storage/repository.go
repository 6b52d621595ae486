// Package storage contains storage-agnostic contracts and utilities for
// exporting cleaned tables to a database. Concrete backends (Postgres, MySQL,
// MSSQL, SQLite) live in subpackages and register themselves with the factory
// in this package at init time; callers select one by kind without importing
// the backend directly.
package storage

import "context"

// Repository is the minimal contract a storage backend must provide. The
// exporter only ever appends: duplicate handling happens upstream in the
// cleaning pipeline, so there is no upsert here.
type Repository interface {
	// CopyFrom bulk-inserts rows (aligned to the columns order) into the
	// configured table and returns the number of rows reported as inserted.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)

	// Exec executes an arbitrary SQL statement (typically DDL).
	Exec(ctx context.Context, sql string) error

	// Close releases the backend's connections.
	Close()
}
