package table

import (
	"reflect"
	"testing"
)

func TestCellIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		c    Cell
		want bool
	}{
		{name: "missing", c: MissingCell(), want: true},
		{name: "blank", c: NewCell(""), want: true},
		{name: "whitespace_only", c: NewCell(" \t\n"), want: true},
		{name: "value", c: NewCell("x"), want: false},
		{name: "value_with_padding", c: NewCell(" x "), want: false},
	}
	for _, tc := range tests {
		if got := tc.c.IsEmpty(); got != tc.want {
			t.Fatalf("%s: IsEmpty() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestColumnIndex(t *testing.T) {
	tab := New([]string{"id", "email", "name"})
	if i, ok := tab.ColumnIndex("email"); !ok || i != 1 {
		t.Fatalf("ColumnIndex(email) = %d,%v, want 1,true", i, ok)
	}
	if _, ok := tab.ColumnIndex("missing"); ok {
		t.Fatalf("ColumnIndex(missing) = true, want false")
	}
}

func TestAppendRowFitsWidth(t *testing.T) {
	tab := New([]string{"a", "b", "c"})

	// Short row padded with missing cells.
	tab.AppendRow([]Cell{NewCell("1")})
	// Long row truncated.
	tab.AppendRow([]Cell{NewCell("1"), NewCell("2"), NewCell("3"), NewCell("4")})

	want := []Row{
		{NewCell("1"), MissingCell(), MissingCell()},
		{NewCell("1"), NewCell("2"), NewCell("3")},
	}
	if !reflect.DeepEqual(tab.Rows, want) {
		t.Fatalf("rows mismatch:\n got: %#v\nwant: %#v", tab.Rows, want)
	}
	if tab.NumRows() != 2 || tab.NumCols() != 3 {
		t.Fatalf("NumRows/NumCols = %d/%d, want 2/3", tab.NumRows(), tab.NumCols())
	}
}

func TestZeroColumnTable(t *testing.T) {
	tab := New(nil)
	if tab.NumCols() != 0 || tab.NumRows() != 0 {
		t.Fatalf("empty table has %d cols %d rows", tab.NumCols(), tab.NumRows())
	}
	tab.AppendRow([]Cell{NewCell("stray")})
	if got := len(tab.Rows[0]); got != 0 {
		t.Fatalf("appending to zero-column table kept %d cells, want 0", got)
	}
}
