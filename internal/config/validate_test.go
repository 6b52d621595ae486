package config

import (
	"strings"
	"testing"
)

// hasIssue reports whether issues contains an Issue with the given severity,
// path, and a Message containing msgSubstr.
func hasIssue(t *testing.T, issues []Issue, sev IssueSeverity, path, msgSubstr string) bool {
	t.Helper()
	for _, iss := range issues {
		if iss.Severity == sev && iss.Path == path && strings.Contains(iss.Message, msgSubstr) {
			return true
		}
	}
	return false
}

/*
TestValidate_ValidMinimal verifies that a well-formed config produces no
issues (errors or warnings).
*/
func TestValidate_ValidMinimal(t *testing.T) {
	c := Config{
		Input:       "in.csv",
		Output:      "out.csv",
		Report:      "report.txt",
		Separator:   ";",
		Encoding:    "latin-1",
		DedupeOn:    []string{"id", "email"},
		EmptyPolicy: "delete-row",
	}

	issues := Validate(c)
	if len(issues) != 0 {
		t.Fatalf("expected no issues for valid config; got: %+v", issues)
	}
}

/*
TestValidate_MissingPaths verifies that empty input and output paths each
produce a SeverityError.
*/
func TestValidate_MissingPaths(t *testing.T) {
	issues := Validate(Config{})

	if !hasIssue(t, issues, SeverityError, "input", "must not be empty") {
		t.Fatalf("expected error for empty input; got %+v", issues)
	}
	if !hasIssue(t, issues, SeverityError, "output", "must not be empty") {
		t.Fatalf("expected error for empty output; got %+v", issues)
	}
}

/*
TestValidate_ReportOptional verifies that an empty report path is not flagged;
it disables the report file rather than being a misconfiguration.
*/
func TestValidate_ReportOptional(t *testing.T) {
	c := Config{Input: "in.csv", Output: "out.csv"}
	issues := Validate(c)
	for _, iss := range issues {
		if iss.Path == "report" {
			t.Fatalf("did not expect an issue for empty report; got %+v", issues)
		}
	}
}

/*
TestValidateCleaning_Cases exercises validateCleaning: separator shape, policy
names, encodings, and the dedupe column list.
*/
func TestValidateCleaning_Cases(t *testing.T) {
	t.Run("multi_char_separator", func(t *testing.T) {
		issues := validateCleaning(Config{Separator: "ab"})
		if !hasIssue(t, issues, SeverityError, "separator", "single character") {
			t.Fatalf("expected error for multi-char separator; got %+v", issues)
		}
	})

	t.Run("multibyte_separator_ok", func(t *testing.T) {
		issues := validateCleaning(Config{Separator: "ž"})
		for _, iss := range issues {
			if iss.Path == "separator" {
				t.Fatalf("single multi-byte rune should be accepted; got %+v", issues)
			}
		}
	})

	t.Run("unknown_policy", func(t *testing.T) {
		issues := validateCleaning(Config{EmptyPolicy: "purge"})
		if !hasIssue(t, issues, SeverityError, "empty_policy", "unknown empty policy") {
			t.Fatalf("expected error for unknown policy; got %+v", issues)
		}
	})

	t.Run("policy_case_insensitive", func(t *testing.T) {
		issues := validateCleaning(Config{EmptyPolicy: " Delete-Row "})
		if len(issues) != 0 {
			t.Fatalf("expected no issues for mixed-case policy; got %+v", issues)
		}
	})

	t.Run("unknown_encoding", func(t *testing.T) {
		issues := validateCleaning(Config{Encoding: "ebcdic"})
		if !hasIssue(t, issues, SeverityError, "encoding", "unsupported encoding") {
			t.Fatalf("expected error for unknown encoding; got %+v", issues)
		}
	})

	t.Run("encoding_alias_ok", func(t *testing.T) {
		issues := validateCleaning(Config{Encoding: "ISO-8859-1"})
		if len(issues) != 0 {
			t.Fatalf("expected no issues for a known encoding alias; got %+v", issues)
		}
	})

	t.Run("empty_dedupe_name", func(t *testing.T) {
		issues := validateCleaning(Config{DedupeOn: []string{"id", "  "}})
		if !hasIssue(t, issues, SeverityWarning, "dedupe_on[1]", "empty column name") {
			t.Fatalf("expected warning for empty dedupe name; got %+v", issues)
		}
	})

	t.Run("duplicate_dedupe_name", func(t *testing.T) {
		issues := validateCleaning(Config{DedupeOn: []string{"id", "email", "id"}})
		if !hasIssue(t, issues, SeverityWarning, "dedupe_on[2]", "already requested at dedupe_on[0]") {
			t.Fatalf("expected warning for duplicate dedupe name; got %+v", issues)
		}
	})
}

/*
TestValidateStorage_Cases checks the optional storage export: nil disables all
checks; otherwise kind, DSN, and table are validated.
*/
func TestValidateStorage_Cases(t *testing.T) {
	t.Run("nil_disabled", func(t *testing.T) {
		if issues := validateStorage(nil); len(issues) != 0 {
			t.Fatalf("expected no issues for nil storage; got %+v", issues)
		}
	})

	t.Run("missing_kind", func(t *testing.T) {
		issues := validateStorage(&Storage{})
		if !hasIssue(t, issues, SeverityError, "storage.kind", "must not be empty") {
			t.Fatalf("expected error for empty storage.kind; got %+v", issues)
		}
		// Kind-specific checks are skipped when the kind itself is missing.
		if len(issues) != 1 {
			t.Fatalf("expected only the kind error; got %+v", issues)
		}
	})

	t.Run("unknown_kind", func(t *testing.T) {
		issues := validateStorage(&Storage{Kind: "weird"})
		if !hasIssue(t, issues, SeverityWarning, "storage.kind", "unknown storage kind") {
			t.Fatalf("expected warning for unknown storage.kind; got %+v", issues)
		}
	})

	t.Run("missing_dsn_table", func(t *testing.T) {
		issues := validateStorage(&Storage{Kind: "postgres"})
		if !hasIssue(t, issues, SeverityError, "storage.db.dsn", "must not be empty") {
			t.Fatalf("expected error for empty dsn; got %+v", issues)
		}
		if !hasIssue(t, issues, SeverityError, "storage.db.table", "must not be empty") {
			t.Fatalf("expected error for empty table; got %+v", issues)
		}
	})

	t.Run("negative_batch_size", func(t *testing.T) {
		s := &Storage{
			Kind: "sqlite",
			DB:   DBConfig{DSN: "file:x.db", Table: "rows", BatchSize: -1},
		}
		issues := validateStorage(s)
		if !hasIssue(t, issues, SeverityWarning, "storage.db.batch_size", "loader default") {
			t.Fatalf("expected warning for negative batch_size; got %+v", issues)
		}
	})

	t.Run("valid_storage", func(t *testing.T) {
		s := &Storage{
			Kind: "postgres",
			DB: DBConfig{
				DSN:             "postgres://user@localhost/db",
				Table:           "public.clean_rows",
				BatchSize:       1000,
				AutoCreateTable: true,
			},
		}
		if issues := validateStorage(s); len(issues) != 0 {
			t.Fatalf("expected no issues; got %+v", issues)
		}
	})
}

/*
TestValidateMetrics_Cases checks metrics backend names. Unknown backends are
warnings: the run still works, metrics are simply disabled.
*/
func TestValidateMetrics_Cases(t *testing.T) {
	for _, ok := range []string{"", "none", "pushgateway", "datadog"} {
		if issues := validateMetrics(Metrics{Backend: ok}); len(issues) != 0 {
			t.Fatalf("backend %q: expected no issues; got %+v", ok, issues)
		}
	}

	issues := validateMetrics(Metrics{Backend: "graphite"})
	if !hasIssue(t, issues, SeverityWarning, "metrics.backend", "unknown metrics backend") {
		t.Fatalf("expected warning for unknown metrics backend; got %+v", issues)
	}
}
