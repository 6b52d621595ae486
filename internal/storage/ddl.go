package storage

import (
	"context"
	"fmt"
	"sync"
)

// DDLBuilder is a backend-specific function that renders the CREATE TABLE
// statement for a text-typed table with the given columns. Backends register
// their implementation for a given storage kind (e.g. "postgres") at init
// time.
type DDLBuilder func(table string, columns []string) (string, error)

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBuilder{}
)

// RegisterDDL registers (or replaces) a DDLBuilder for the given storage
// kind. It is typically called from backend packages' init() functions.
func RegisterDDL(kind string, fn DDLBuilder) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTable renders the CREATE TABLE statement for cfg.Kind and applies it
// via repo.Exec. Every column is typed TEXT: the cleaned table is plain
// strings and type inference is a separate concern. Callers do not need to
// know which backend they are using.
//
// If no DDL builder has been registered for the storage kind, an error is
// returned.
func EnsureTable(ctx context.Context, repo Repository, cfg Config) error {
	ddlMu.RLock()
	fn, ok := ddlFns[cfg.Kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL builder registered for storage.kind=%q", cfg.Kind)
	}
	stmt, err := fn(cfg.Table, cfg.Columns)
	if err != nil {
		return fmt.Errorf("build DDL: %w", err)
	}
	return repo.Exec(ctx, stmt)
}
