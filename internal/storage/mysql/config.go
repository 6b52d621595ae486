// Package mysql implements a MySQL-backed storage.Repository.
package mysql

// Config holds MySQL repository configuration derived from storage.Config.
type Config struct {
	// DSN is a go-sql-driver DSN, e.g.:
	//   "user:pass@tcp(localhost:3306)/cleandb?parseTime=true"
	DSN string

	// Table is the target table name for inserts, e.g. "clean_rows". Dotted
	// names such as "cleandb.clean_rows" are accepted; each segment is
	// quoted individually.
	Table string

	// Columns is the ordered list of destination columns.
	Columns []string
}
