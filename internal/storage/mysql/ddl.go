package mysql

import (
	"fmt"
	"strings"
)

// BuildCreateTableSQL returns a MySQL CREATE TABLE statement for a
// text-typed table with the given columns:
//
//	CREATE TABLE IF NOT EXISTS `clean_rows` (
//	  `id` TEXT,
//	  `email` TEXT
//	);
//
// Every column is TEXT and nullable; the cleaned table is plain strings.
func BuildCreateTableSQL(table string, columns []string) (string, error) {
	fqn := strings.TrimSpace(table)
	if fqn == "" {
		return "", fmt.Errorf("mysql ddl: table name must not be empty")
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("mysql ddl: at least one column is required")
	}

	cols := make([]string, 0, len(columns))
	for _, c := range columns {
		name := strings.TrimSpace(c)
		if name == "" {
			return "", fmt.Errorf("mysql ddl: column with empty name in table %s", fqn)
		}
		cols = append(cols, myIdent(name)+" TEXT")
	}

	stmt := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		myFQN(fqn),
		strings.Join(cols, ",\n  "),
	)
	return stmt, nil
}
