package mssql

import (
	"fmt"
	"strings"
)

// BuildCreateTableSQL returns a T-SQL script that creates a text-typed table
// with the given columns if it does not already exist. T-SQL has no
// CREATE TABLE IF NOT EXISTS, so the statement is wrapped in an OBJECT_ID
// guard:
//
//	IF OBJECT_ID(N'[dbo].[clean_rows]', N'U') IS NULL
//	BEGIN
//	  CREATE TABLE [dbo].[clean_rows] (
//	    [id] NVARCHAR(MAX),
//	    [email] NVARCHAR(MAX)
//	  );
//	END;
//
// Every column is NVARCHAR(MAX) and nullable; the cleaned table is plain
// strings.
func BuildCreateTableSQL(table string, columns []string) (string, error) {
	fqn := strings.TrimSpace(table)
	if fqn == "" {
		return "", fmt.Errorf("mssql ddl: table name must not be empty")
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("mssql ddl: at least one column is required")
	}

	cols := make([]string, 0, len(columns))
	for _, c := range columns {
		name := strings.TrimSpace(c)
		if name == "" {
			return "", fmt.Errorf("mssql ddl: column with empty name in table %s", fqn)
		}
		cols = append(cols, msIdent(name)+" NVARCHAR(MAX)")
	}

	fqnQuoted := msFQN(fqn)
	stmt := fmt.Sprintf(
		"IF OBJECT_ID(N'%s', N'U') IS NULL\nBEGIN\n  CREATE TABLE %s (\n    %s\n  );\nEND;",
		fqnQuoted,
		fqnQuoted,
		strings.Join(cols, ",\n    "),
	)
	return stmt, nil
}
