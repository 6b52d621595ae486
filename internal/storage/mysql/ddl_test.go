package mysql

import (
	"strings"
	"testing"
)

// TestBuildCreateTableSQL_Golden checks the full statement shape.
func TestBuildCreateTableSQL_Golden(t *testing.T) {
	t.Parallel()

	got, err := BuildCreateTableSQL("clean_rows", []string{"id", "email"})
	if err != nil {
		t.Fatalf("BuildCreateTableSQL: %v", err)
	}
	want := "CREATE TABLE IF NOT EXISTS `clean_rows` (\n" +
		"  `id` TEXT,\n" +
		"  `email` TEXT\n" +
		");"
	if got != want {
		t.Fatalf("statement mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// TestBuildCreateTableSQL_DottedTable quotes each segment individually.
func TestBuildCreateTableSQL_DottedTable(t *testing.T) {
	t.Parallel()

	got, err := BuildCreateTableSQL("cleandb.clean_rows", []string{"id"})
	if err != nil {
		t.Fatalf("BuildCreateTableSQL: %v", err)
	}
	if !strings.Contains(got, "`cleandb`.`clean_rows`") {
		t.Fatalf("dotted name not quoted per segment: %q", got)
	}
}

// TestBuildCreateTableSQL_Errors covers the validation paths.
func TestBuildCreateTableSQL_Errors(t *testing.T) {
	t.Parallel()

	if _, err := BuildCreateTableSQL("", []string{"a"}); err == nil {
		t.Fatalf("expected error for empty table name")
	}
	if _, err := BuildCreateTableSQL("t", nil); err == nil {
		t.Fatalf("expected error for empty column list")
	}
	if _, err := BuildCreateTableSQL("t", []string{" "}); err == nil {
		t.Fatalf("expected error for blank column name")
	}
}
