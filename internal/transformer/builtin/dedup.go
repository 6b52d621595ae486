// Package builtin contains the reusable cleaning transformers.
//
// DeDup is the policy-free, stable de-duplication transformer for the
// pipeline: the first occurrence of each key is kept and every later row
// with the same key is dropped, so the relative order of surviving rows is
// exactly the input order. It runs in-memory on the whole table.
//
// Keys: a row's key is the concatenation of its cell values in the resolved
// key columns, separated by "\x1f"; a missing cell contributes "\x00" so it
// never collides with a present-but-blank value. Run DeDup after Normalize
// and Empties so whitespace-only variants of the same row collapse.
package builtin

import (
	"strings"

	"csvclean/internal/metrics"
	"csvclean/internal/table"
)

// DeDup removes duplicate rows, keeping the first occurrence of each key.
type DeDup struct {
	// Keys are the column names that form the dedupe key. Empty means the
	// full row across all columns.
	Keys []string
}

// Apply executes the de-duplication in place. When Keys is a column subset,
// it is first intersected with the table's columns in requested order;
// unresolved names are recorded in stats and ignored, and an empty
// intersection skips de-duplication entirely.
func (d DeDup) Apply(t *table.Table, st *metrics.RunStats) *table.Table {
	var idx []int
	subset := len(d.Keys) > 0

	if subset && t.NumCols() > 0 {
		var effective, missing []string
		for _, k := range d.Keys {
			if i, ok := t.ColumnIndex(k); ok {
				idx = append(idx, i)
				effective = append(effective, k)
			} else {
				missing = append(missing, k)
			}
		}
		st.EffectiveDedupeColumns = effective
		st.MissingDedupeColumns = missing
		if len(missing) > 0 {
			st.AddNote("Requested dedupe columns not found and were ignored: %s", strings.Join(missing, ", "))
		}
	}

	if t.NumRows() == 0 || t.NumCols() == 0 {
		return t
	}
	if subset && len(idx) == 0 {
		st.AddNote("Deduplication skipped: none of the requested columns exist")
		return t
	}
	if !subset {
		idx = make([]int, t.NumCols())
		for i := range idx {
			idx[i] = i
		}
	} else {
		st.AddNote("Deduplication used columns: %s", strings.Join(st.EffectiveDedupeColumns, ", "))
	}

	before := t.NumRows()
	seen := make(map[string]struct{}, before)
	kept := t.Rows[:0]
	for _, row := range t.Rows {
		k := keyOf(row, idx)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, row)
	}
	t.Rows = kept
	st.DuplicatesRemoved += before - len(kept)
	return t
}

// keyOf builds the dedupe key for a row over the given column indexes.
func keyOf(row table.Row, idx []int) string {
	var b strings.Builder
	for n, i := range idx {
		if n > 0 {
			b.WriteByte('\x1f') // unlikely separator
		}
		c := row[i]
		if c.Missing {
			b.WriteByte('\x00')
		} else {
			b.WriteString(c.Val)
		}
	}
	return b.String()
}
