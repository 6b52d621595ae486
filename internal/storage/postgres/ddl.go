package postgres

import (
	"fmt"
	"strings"
)

// BuildCreateTableSQL returns a Postgres CREATE TABLE statement for a
// text-typed table with the given columns:
//
//	CREATE TABLE IF NOT EXISTS "public"."clean_rows" (
//	  "id" TEXT,
//	  "email" TEXT
//	);
//
// Cleaned tables are plain strings, so every column is TEXT and nullable.
func BuildCreateTableSQL(table string, columns []string) (string, error) {
	fqn := strings.TrimSpace(table)
	if fqn == "" {
		return "", fmt.Errorf("postgres ddl: table name must not be empty")
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("postgres ddl: at least one column is required")
	}

	cols := make([]string, 0, len(columns))
	for _, c := range columns {
		name := strings.TrimSpace(c)
		if name == "" {
			return "", fmt.Errorf("postgres ddl: column with empty name in table %s", fqn)
		}
		cols = append(cols, pgIdent(name)+" TEXT")
	}

	stmt := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		pgFQN(fqn),
		strings.Join(cols, ",\n  "),
	)
	return stmt, nil
}
