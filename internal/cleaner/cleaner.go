// Package cleaner runs the cleaning pipeline end to end: load the input
// table, trim cells, apply the empty-cell policy, de-duplicate, write the
// cleaned table, render the run report, and optionally export the result to
// a database.
//
// The pipeline is strictly sequential; one stage finishes before the next
// starts, and the table plus the RunStats accumulator are handed stage to
// stage on a single goroutine. ctx is honored at the I/O and export
// boundaries only.
package cleaner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"csvclean/internal/config"
	"csvclean/internal/datasource"
	"csvclean/internal/metrics"
	pcsv "csvclean/internal/parser/csv"
	"csvclean/internal/report"
	"csvclean/internal/storage"
	"csvclean/internal/table"
	"csvclean/internal/transformer"
	"csvclean/internal/transformer/builtin"
	wcsv "csvclean/internal/writer/csv"
)

// newRepositoryFn is a test seam; production code always goes through
// storage.New.
var newRepositoryFn = func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
	return storage.New(ctx, cfg)
}

// Run executes one cleaning run described by cfg and returns the populated
// stats. The input is a local path or an http(s) URL. The returned error is
// a *ReadError or *WriteError for the two I/O boundaries; everything
// irregular in between (ragged rows, unresolved dedupe columns, empty input)
// becomes a report note instead.
//
// An unreadable input aborts before any report is written. After a
// successful load, any later failure still attempts the report with the
// error recorded as a note; the original error wins.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) (*metrics.RunStats, error) {
	cfg.ApplyDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	job := cfg.Metrics.Job

	st := &metrics.RunStats{
		RunID:                  uuid.NewString(),
		InputPath:              cfg.Input,
		OutputPath:             cfg.Output,
		ReportPath:             cfg.Report,
		Separator:              cfg.Separator,
		EmptyPolicy:            cfg.EmptyPolicy,
		RequestedDedupeColumns: cfg.DedupeOn,
	}

	logger.Info("run started",
		"run_id", st.RunID,
		"input", cfg.Input,
		"output", cfg.Output,
		"dedupe_on", st.DedupeOn(),
		"empty_policy", cfg.EmptyPolicy,
	)

	f, err := datasource.For(cfg.Input).Open(ctx)
	if err != nil {
		return st, &ReadError{Path: cfg.Input, Err: err}
	}

	stepStart := time.Now()
	tab, err := pcsv.NewParser(pcsv.Options{
		Comma:      cfg.SeparatorRune(),
		Encoding:   cfg.Encoding,
		LazyQuotes: true,
	}).Parse(f)
	closeErr := f.Close()
	metrics.RecordStep(job, "load", err, time.Since(stepStart))
	if err != nil {
		return st, &ReadError{Path: cfg.Input, Err: err}
	}
	if closeErr != nil {
		return st, &ReadError{Path: cfg.Input, Err: closeErr}
	}

	st.RowsIn = tab.NumRows()
	metrics.RecordRow(job, "rows_in", int64(st.RowsIn))
	if tab.NumCols() == 0 {
		st.AddNote("Input file is empty (no header row)")
	} else if st.RowsIn == 0 {
		st.AddNote("Input has a header but no data rows")
	}
	logger.Info("input loaded", "rows", st.RowsIn, "columns", tab.NumCols())

	tab = runStage(job, "normalize", builtin.Normalize{}, tab, st, logger)
	tab = runStage(job, "empties", builtin.Empties{Policy: cfg.EmptyPolicy}, tab, st, logger)
	tab = runStage(job, "dedupe", builtin.DeDup{Keys: cfg.DedupeOn}, tab, st, logger)

	st.RowsOut = tab.NumRows()
	metrics.RecordRow(job, "rows_out", int64(st.RowsOut))
	metrics.RecordRow(job, "duplicates_removed", int64(st.DuplicatesRemoved))
	metrics.RecordRow(job, "empty_cells", int64(st.EmptyCellsFound))
	metrics.RecordRow(job, "rows_dropped", int64(st.RowsDroppedForEmpty))

	stepStart = time.Now()
	res, err := wcsv.NewWriter(wcsv.Options{Comma: cfg.SeparatorRune()}).WriteFile(cfg.Output, tab)
	metrics.RecordStep(job, "write", err, time.Since(stepStart))
	if err != nil {
		return st, failAfterLoad(st, cfg.Report, start, logger, &WriteError{Path: cfg.Output, Err: err})
	}
	st.OutputBytes = res.Bytes
	st.OutputChecksum = res.Checksum
	logger.Info("output written", "path", cfg.Output, "rows", st.RowsOut, "bytes", res.Bytes)

	if cfg.Storage != nil {
		stepStart = time.Now()
		err := exportTable(ctx, job, cfg.Storage, tab, st, logger)
		metrics.RecordStep(job, "export", err, time.Since(stepStart))
		if err != nil {
			return st, failAfterLoad(st, cfg.Report, start, logger, err)
		}
	}

	st.Runtime = time.Since(start)
	if cfg.Report != "" {
		if err := report.Write(cfg.Report, st); err != nil {
			return st, &WriteError{Path: cfg.Report, Err: err}
		}
	}

	logger.Info("run finished",
		"rows_in", st.RowsIn,
		"rows_out", st.RowsOut,
		"duplicates_removed", st.DuplicatesRemoved,
		"empty_cells_found", st.EmptyCellsFound,
		"rows_dropped", st.RowsDroppedForEmpty,
		"took", st.Runtime.Truncate(time.Millisecond),
	)
	return st, nil
}

// runStage applies one transformer with step timing. Stages never fail.
func runStage(job, name string, tr transformer.Transformer, t *table.Table, st *metrics.RunStats, logger *slog.Logger) *table.Table {
	stepStart := time.Now()
	out := tr.Apply(t, st)
	d := time.Since(stepStart)
	metrics.RecordStep(job, name, nil, d)
	logger.Debug("stage complete", "stage", name, "rows", out.NumRows(), "took", d.Truncate(time.Microsecond))
	return out
}

// exportTable pushes the cleaned table into the configured database. The
// destination columns are the cleaned header.
func exportTable(ctx context.Context, job string, s *config.Storage, t *table.Table, st *metrics.RunStats, logger *slog.Logger) error {
	if t.NumCols() == 0 {
		st.AddNote("Export skipped: table has no columns")
		return nil
	}

	scfg := storage.Config{
		Kind:    s.Kind,
		DSN:     s.DB.DSN,
		Table:   s.DB.Table,
		Columns: t.Columns,
	}
	repo, err := newRepositoryFn(ctx, scfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer repo.Close()

	if s.DB.AutoCreateTable {
		if err := storage.EnsureTable(ctx, repo, scfg); err != nil {
			return fmt.Errorf("apply DDL: %w", err)
		}
	}

	batch := s.DB.BatchSize
	if batch <= 0 {
		batch = storage.DefaultBatchSize
	}
	n, err := storage.Export(ctx, repo, t, batch)
	if err != nil {
		return fmt.Errorf("export to %s: %w", s.Kind, err)
	}
	metrics.RecordRow(job, "exported", n)
	logger.Info("export complete", "kind", s.Kind, "table", s.DB.Table, "rows", n)
	return nil
}

// failAfterLoad finalizes stats and best-effort writes the report with the
// failure recorded as a note, then hands back the original error.
func failAfterLoad(st *metrics.RunStats, reportPath string, start time.Time, logger *slog.Logger, err error) error {
	st.Runtime = time.Since(start)
	st.AddNote("Error: %v", err)
	if reportPath != "" {
		if rerr := report.Write(reportPath, st); rerr != nil {
			logger.Warn("report write failed", "path", reportPath, "err", rerr)
		}
	}
	return err
}
