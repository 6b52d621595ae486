package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Config carries the backend-agnostic settings needed to open a Repository.
type Config struct {
	// Kind selects the registered backend ("postgres", "mysql", "mssql",
	// "sqlite").
	Kind string

	// DSN is the driver connection string.
	DSN string

	// Table is the destination table name.
	Table string

	// Columns is the ordered list of destination columns, taken from the
	// cleaned table's header.
	Columns []string
}

// Factory constructs a Repository from a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for a storage kind. It is
// typically called from backend packages' init() functions; re-registering is
// allowed so tests can swap in fakes.
func Register(kind string, fn Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = fn
}

// New opens a Repository for cfg.Kind. The error for an unregistered kind
// names the kind so misconfigured runs fail with a useful message.
func New(ctx context.Context, cfg Config) (Repository, error) {
	regMu.RLock()
	fn, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s", cfg.Kind)
	}
	return fn(ctx, cfg)
}

// ListKinds returns a sorted snapshot of the registered kinds. Mutating the
// returned slice does not affect the registry.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
