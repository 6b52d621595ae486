package metrics

import (
	"fmt"
	"strings"
	"time"
)

// RunStats accumulates the counts, parameters, and anomaly notes of one
// cleaning run. The driver creates it at pipeline start, each stage mutates
// it additively in sequence, and the report treats it as read-only.
type RunStats struct {
	RunID string

	// Echoed parameters.
	InputPath   string
	OutputPath  string
	ReportPath  string
	Separator   string
	EmptyPolicy string

	// Dedupe resolution. Requested is what the caller asked for (empty means
	// full-row), Effective is the intersection with the table's columns in
	// requested order, Missing is what could not be resolved.
	RequestedDedupeColumns []string
	EffectiveDedupeColumns []string
	MissingDedupeColumns   []string

	// Counts.
	RowsIn              int
	RowsOut             int
	DuplicatesRemoved   int
	EmptyCellsFound     int
	RowsDroppedForEmpty int

	// Output.
	OutputBytes    int64
	OutputChecksum uint64

	Runtime time.Duration

	Notes []string
}

// DedupeOn renders the requested dedupe spec the way it was asked for:
// "all" for full-row deduplication, otherwise the comma-joined column list.
func (s *RunStats) DedupeOn() string {
	if len(s.RequestedDedupeColumns) == 0 {
		return "all"
	}
	return strings.Join(s.RequestedDedupeColumns, ",")
}

// AddNote appends a formatted anomaly note.
func (s *RunStats) AddNote(format string, args ...any) {
	s.Notes = append(s.Notes, fmt.Sprintf(format, args...))
}
