// Package config provides configuration models and helpers for cleaning runs.
//
// This file adds a lightweight linter/validator for Config values. It
// performs static checks over a decoded Config and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	pcsv "csvclean/internal/parser/csv"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Config.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "dedupe_on[1]"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation / linting of a Config.
//
// It does not mutate the config. Instead it returns a slice of Issue values.
// Callers may decide whether to treat warnings as fatal or not.
//
// Example:
//
//	c, err := config.Load(path)
//	if err != nil { ... }
//	for _, iss := range config.Validate(c) {
//	    fmt.Printf("%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
//	}
func Validate(c Config) []Issue {
	var issues []Issue

	issues = append(issues, validatePaths(c)...)
	issues = append(issues, validateCleaning(c)...)
	issues = append(issues, validateStorage(c.Storage)...)
	issues = append(issues, validateMetrics(c.Metrics)...)

	return issues
}

// validatePaths validates the input, output, and report paths.
func validatePaths(c Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(c.Input) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input",
			Message:  "input must not be empty",
		})
	}
	if strings.TrimSpace(c.Output) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output",
			Message:  "output must not be empty",
		})
	}
	// Report is optional: empty disables the report file.

	return issues
}

// validateCleaning validates the separator, encoding, empty-cell policy, and
// dedupe column list.
func validateCleaning(c Config) []Issue {
	var issues []Issue

	if utf8.RuneCountInString(c.Separator) > 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "separator",
			Message:  fmt.Sprintf("separator must be a single character, got %q", c.Separator),
		})
	}

	if enc := strings.TrimSpace(c.Encoding); enc != "" && !pcsv.KnownEncoding(enc) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "encoding",
			Message:  fmt.Sprintf("unsupported encoding %q", c.Encoding),
		})
	}

	switch pol := strings.ToLower(strings.TrimSpace(c.EmptyPolicy)); pol {
	case "", "mark", "delete-row":
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "empty_policy",
			Message:  fmt.Sprintf("unknown empty policy %q; valid values are \"mark\" and \"delete-row\"", c.EmptyPolicy),
		})
	}

	seen := map[string]int{}
	for i, name := range c.DedupeOn {
		path := fmt.Sprintf("dedupe_on[%d]", i)
		if strings.TrimSpace(name) == "" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     path,
				Message:  "empty column name never matches a header and is ignored",
			})
			continue
		}
		if first, dup := seen[name]; dup {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     path,
				Message:  fmt.Sprintf("column %q already requested at dedupe_on[%d]", name, first),
			})
			continue
		}
		seen[name] = i
	}

	return issues
}

// validateStorage validates the optional storage export. A nil storage means
// the export is disabled and produces no issues.
func validateStorage(s *Storage) []Issue {
	if s == nil {
		return nil
	}
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage.kind must not be empty",
		})
		return issues
	}

	// Known storage kinds. Unknown kinds are warnings (for forward
	// compatibility with externally registered backends).
	known := map[string]struct{}{
		"postgres": {},
		"mysql":    {},
		"mssql":    {},
		"sqlite":   {},
	}
	if _, ok := known[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", s.Kind),
		})
	}

	if strings.TrimSpace(s.DB.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.dsn",
			Message:  "storage.db.dsn must not be empty",
		})
	}
	if strings.TrimSpace(s.DB.Table) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.table",
			Message:  "storage.db.table must not be empty",
		})
	}
	if s.DB.BatchSize < 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.db.batch_size",
			Message:  fmt.Sprintf("batch_size=%d; negative values fall back to the loader default", s.DB.BatchSize),
		})
	}

	return issues
}

// validateMetrics validates the metrics backend selection. Checks are kept
// intentionally light: the CLI falls back to sane URL defaults on its own.
func validateMetrics(m Metrics) []Issue {
	var issues []Issue

	switch m.Backend {
	case "", "none", "pushgateway", "datadog":
	default:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; metrics will be disabled", m.Backend),
		})
	}

	return issues
}
