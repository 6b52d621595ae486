// Package mysql implements a MySQL-backed storage.Repository using
// database/sql. MySQL has no COPY equivalent, so CopyFrom issues one
// multi-row INSERT per batch; the loader keeps batches small enough to stay
// under max_allowed_packet for text payloads.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // driver registration
)

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository opens a MySQL connection pool using the provided DSN and
// returns a Repository plus a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("mysql: DSN must not be empty")
	}

	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("mysql: ping: %w", err)
	}

	closeFn := func() { db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// CopyFrom inserts the given rows into the configured table using a single
// multi-row INSERT statement.
//
// It returns the number of rows successfully inserted or an error. len(row)
// must equal len(columns) for every row.
func (r *Repository) CopyFrom(
	ctx context.Context,
	columns []string,
	rows [][]any,
) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("mysql: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	stmtSQL, args, err := buildMultiInsert(r.cfg.Table, columns, rows)
	if err != nil {
		return 0, fmt.Errorf("mysql: CopyFrom: %w", err)
	}

	res, err := r.db.ExecContext(ctx, stmtSQL, args...)
	if err != nil {
		return 0, fmt.Errorf("mysql: insert into %s: %w", r.cfg.Table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		// The driver supports RowsAffected; fall back to the batch size if
		// it ever stops doing so.
		return int64(len(rows)), nil
	}
	return n, nil
}

// Exec executes an arbitrary SQL statement (typically DDL) using the
// underlying database/sql connection.
func (r *Repository) Exec(ctx context.Context, sqlText string) error {
	if strings.TrimSpace(sqlText) == "" {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, sqlText); err != nil {
		return fmt.Errorf("mysql: exec: %w", err)
	}
	return nil
}

// buildMultiInsert renders INSERT INTO t (c1, c2) VALUES (?, ?), (?, ?), ...
// and flattens the row values into the matching argument slice.
func buildMultiInsert(table string, columns []string, rows [][]any) (string, []any, error) {
	group := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(myFQN(table))
	b.WriteString(" (")
	b.WriteString(strings.Join(mapIdent(columns), ", "))
	b.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		if len(row) != len(columns) {
			return "", nil, fmt.Errorf("row length %d != columns length %d", len(row), len(columns))
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(group)
		args = append(args, row...)
	}
	return b.String(), args, nil
}

// myIdent quotes a single identifier segment, escaping embedded backticks.
func myIdent(id string) string {
	return "`" + strings.ReplaceAll(id, "`", "``") + "`"
}

// myFQN quotes a possibly dotted name like "cleandb.clean_rows" segment by
// segment.
func myFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, myIdent(p))
	}
	return strings.Join(out, ".")
}

// mapIdent maps a list of column names to their quoted forms.
func mapIdent(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = myIdent(c)
	}
	return out
}
