// Package report renders the human-readable run report: echoed parameters,
// result counts, output size/checksum, runtime, and any anomaly notes
// collected along the way.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"csvclean/internal/metrics"
)

// Render formats the report as plain text. Stats are read-only here; the
// layout is stable so downstream tooling can grep it.
func Render(st *metrics.RunStats) string {
	var lines []string

	lines = append(lines, "CSV Cleaner Report")
	lines = append(lines, strings.Repeat("=", 72))
	if st.RunID != "" {
		lines = append(lines, "")
		lines = append(lines, "Run ID: "+st.RunID)
	}

	lines = append(lines, "")
	lines = append(lines, "Parameters:")
	lines = append(lines, "  input: "+st.InputPath)
	lines = append(lines, "  output: "+st.OutputPath)
	lines = append(lines, "  dedupe_on: "+st.DedupeOn())
	lines = append(lines, "  empty_policy: "+st.EmptyPolicy)
	lines = append(lines, "  sep: "+st.Separator)
	lines = append(lines, "  report: "+st.ReportPath)

	lines = append(lines, "")
	lines = append(lines, "Results:")
	lines = append(lines, "  Total input rows: "+humanize.Comma(int64(st.RowsIn)))
	lines = append(lines, "  Total output rows: "+humanize.Comma(int64(st.RowsOut)))
	lines = append(lines, "  Duplicates removed: "+humanize.Comma(int64(st.DuplicatesRemoved)))
	lines = append(lines, "  Empty cells found: "+humanize.Comma(int64(st.EmptyCellsFound)))
	lines = append(lines, "  Rows dropped due to empty: "+humanize.Comma(int64(st.RowsDroppedForEmpty)))
	if st.OutputChecksum != 0 {
		lines = append(lines, fmt.Sprintf("  Output size: %s (xxh3 %016x)",
			humanize.Bytes(uint64(st.OutputBytes)), st.OutputChecksum))
	}
	lines = append(lines, fmt.Sprintf("  Runtime (s): %.3f", st.Runtime.Seconds()))

	if len(st.Notes) > 0 {
		lines = append(lines, "")
		lines = append(lines, "Notes:")
		for _, n := range st.Notes {
			lines = append(lines, "  - "+n)
		}
	}

	return strings.Join(lines, "\n") + "\n"
}

// Write renders the report to path, creating parent directories as needed.
func Write(path string, st *metrics.RunStats) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	return os.WriteFile(path, []byte(Render(st)), 0o644)
}
