package builtin

import (
	"strings"

	"csvclean/internal/metrics"
	"csvclean/internal/table"
)

// Empty-cell policies.
const (
	PolicyMark      = "mark"
	PolicyDeleteRow = "delete-row"
)

// MarkerEmpty is the sentinel written into empty cells under the mark policy.
const MarkerEmpty = "__EMPTY__"

// Empties applies the empty-cell policy. A cell counts as empty when it was
// missing in the source or its value trims to nothing.
//
//   - mark: every empty cell becomes the sentinel string; row count is
//     unchanged. EmptyCellsFound grows by the number of cells replaced.
//   - delete-row: any row containing at least one empty cell is removed.
//     EmptyCellsFound counts all empties seen before removal,
//     RowsDroppedForEmpty the rows removed.
//
// Policy defaults to mark.
type Empties struct {
	Policy string
}

func (e Empties) Apply(t *table.Table, st *metrics.RunStats) *table.Table {
	if t.NumCols() == 0 || t.NumRows() == 0 {
		return t
	}

	policy := strings.ToLower(strings.TrimSpace(e.Policy))
	if policy == "" {
		policy = PolicyMark
	}

	if policy == PolicyDeleteRow {
		kept := t.Rows[:0]
		dropped := 0
		for _, row := range t.Rows {
			hasEmpty := false
			for _, c := range row {
				if c.IsEmpty() {
					st.EmptyCellsFound++
					hasEmpty = true
				}
			}
			if hasEmpty {
				dropped++
				continue
			}
			kept = append(kept, row)
		}
		t.Rows = kept
		st.RowsDroppedForEmpty += dropped
		return t
	}

	for _, row := range t.Rows {
		for i, c := range row {
			if c.IsEmpty() {
				row[i] = table.NewCell(MarkerEmpty)
				st.EmptyCellsFound++
			}
		}
	}
	return t
}
