package postgres

import (
	"strings"
	"testing"
)

// TestBuildCreateTableSQL_Golden checks the full statement for a
// schema-qualified table.
func TestBuildCreateTableSQL_Golden(t *testing.T) {
	t.Parallel()

	got, err := BuildCreateTableSQL("public.clean_rows", []string{"id", "email"})
	if err != nil {
		t.Fatalf("BuildCreateTableSQL: %v", err)
	}
	want := "CREATE TABLE IF NOT EXISTS \"public\".\"clean_rows\" (\n" +
		"  \"id\" TEXT,\n" +
		"  \"email\" TEXT\n" +
		");"
	if got != want {
		t.Fatalf("statement mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// TestBuildCreateTableSQL_QuotesIdentifiers verifies embedded quotes are
// escaped rather than breaking the statement.
func TestBuildCreateTableSQL_QuotesIdentifiers(t *testing.T) {
	t.Parallel()

	got, err := BuildCreateTableSQL("rows", []string{`odd"name`})
	if err != nil {
		t.Fatalf("BuildCreateTableSQL: %v", err)
	}
	if !strings.Contains(got, `"odd""name" TEXT`) {
		t.Fatalf("quote escaping missing in %q", got)
	}
}

// TestBuildCreateTableSQL_Errors covers empty table names and column lists.
func TestBuildCreateTableSQL_Errors(t *testing.T) {
	t.Parallel()

	if _, err := BuildCreateTableSQL("  ", []string{"a"}); err == nil {
		t.Fatalf("expected error for empty table name")
	}
	if _, err := BuildCreateTableSQL("t", nil); err == nil {
		t.Fatalf("expected error for empty column list")
	}
	if _, err := BuildCreateTableSQL("t", []string{"a", " "}); err == nil {
		t.Fatalf("expected error for blank column name")
	}
}

// TestSplitFQN covers schema-qualified and bare table names.
func TestSplitFQN(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want []string
	}{
		{"public.clean_rows", []string{"public", "clean_rows"}},
		{"clean_rows", []string{"clean_rows"}},
		{".clean_rows", []string{"clean_rows"}},
	}
	for _, tc := range cases {
		got := splitFQN(tc.in)
		if len(got) != len(tc.want) {
			t.Fatalf("splitFQN(%q) = %v, want %v", tc.in, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("splitFQN(%q) = %v, want %v", tc.in, got, tc.want)
			}
		}
	}
}
