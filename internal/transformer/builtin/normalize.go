package builtin

import (
	"strings"

	"csvclean/internal/metrics"
	"csvclean/internal/table"
)

// Normalize trims leading/trailing whitespace from every present cell.
// Missing cells pass through untouched. Running it twice is a no-op.
type Normalize struct{}

func (Normalize) Apply(t *table.Table, _ *metrics.RunStats) *table.Table {
	for _, row := range t.Rows {
		for i, c := range row {
			if c.Missing {
				continue
			}
			if s := strings.TrimSpace(c.Val); s != c.Val {
				row[i].Val = s
			}
		}
	}
	return t
}
