// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) causes the init functions of each concrete storage backend to run,
// which in turn register their factories and DDL builders with the storage
// package.
//
// In other words, importing this package makes the following storage kinds
// available at runtime:
//
//   - "postgres" (csvclean/internal/storage/postgres)
//   - "mysql"    (csvclean/internal/storage/mysql)
//   - "mssql"    (csvclean/internal/storage/mssql)
//   - "sqlite"   (csvclean/internal/storage/sqlite)
//
// Typical usage (in cmd/csvclean/main.go or a similar wiring layer):
//
//	package main
//
//	import (
//	    "context"
//
//	    _ "csvclean/internal/storage/all" // enable all built-in backends
//
//	    "csvclean/internal/config"
//	    "csvclean/internal/storage"
//	)
//
//	func main() {
//	    ctx := context.Background()
//
//	    // Load config from disk, flags, etc.
//	    var cfg config.Config
//
//	    repo, err := storage.New(ctx, storage.Config{
//	        Kind:    cfg.Storage.Kind,
//	        DSN:     cfg.Storage.DB.DSN,
//	        Table:   cfg.Storage.DB.Table,
//	        Columns: columns, // cleaned header row
//	    })
//	    if err != nil {
//	        // handle error
//	    }
//	    defer repo.Close()
//	}
//
// This pattern keeps backend-specific wiring in a single, small package and
// allows the rest of the application to depend only on the storage
// abstraction rather than individual backends.
//
// Note: if you want a binary that supports only a subset of backends, you can
// define an alternative wiring package that imports only the required
// backends instead of this package.
package all

import (
	_ "csvclean/internal/storage/mssql"
	_ "csvclean/internal/storage/mysql"
	_ "csvclean/internal/storage/postgres"
	_ "csvclean/internal/storage/sqlite"
)
