package render

import (
	"testing"

	"insight-chat/internal/analysis"
)

func makeRow(location string, year float64, metric *float64) analysis.Row {
	row := analysis.NewRow()
	row.Set(analysis.FieldLocation, analysis.TextValue(location))
	row.Set(analysis.FieldYear, analysis.NumberValue(year))
	if metric == nil {
		row.Set(analysis.FieldMetric, analysis.NullValue())
	} else {
		row.Set(analysis.FieldMetric, analysis.NumberValue(*metric))
	}
	return row
}

func TestFormatCell(t *testing.T) {
	if got := FormatCell(analysis.NumberValue(1234567), true); got != "1,234,567" {
		t.Fatalf("thousands separators: %q", got)
	}
	if got := FormatCell(analysis.NumberValue(42.5), true); got != "42.5" {
		t.Fatalf("fractional: %q", got)
	}
	if got := FormatCell(analysis.TextValue("Wakad"), true); got != "Wakad" {
		t.Fatalf("text passthrough: %q", got)
	}
	if got := FormatCell(analysis.NullValue(), true); got != Placeholder {
		t.Fatalf("null cell: %q", got)
	}
	if got := FormatCell(analysis.Value{}, false); got != Placeholder {
		t.Fatalf("missing cell: %q", got)
	}
}

func TestBuildTablePagination(t *testing.T) {
	rows := make([]analysis.Row, 12)
	for i := range rows {
		rows[i] = makeRow("Wakad", float64(2010+i), fptr(float64(100+i)))
	}

	first := BuildTable(rows, 0, "", Asc)
	if first.TotalRows != 12 || first.PageCount != 3 {
		t.Fatalf("totals: %d rows, %d pages", first.TotalRows, first.PageCount)
	}
	if len(first.Rows) != PageSize {
		t.Fatalf("first page has %d rows", len(first.Rows))
	}
	if first.Rows[0][1] != "2,010" {
		t.Fatalf("first page first year: %q", first.Rows[0][1])
	}

	last := BuildTable(rows, 2, "", Asc)
	if len(last.Rows) != 2 {
		t.Fatalf("last page has %d rows", len(last.Rows))
	}

	clampedHigh := BuildTable(rows, 99, "", Asc)
	if clampedHigh.Page != 2 {
		t.Fatalf("page 99 clamped to %d", clampedHigh.Page)
	}
	clampedLow := BuildTable(rows, -4, "", Asc)
	if clampedLow.Page != 0 {
		t.Fatalf("page -4 clamped to %d", clampedLow.Page)
	}
}

func TestBuildTableEmpty(t *testing.T) {
	page := BuildTable(nil, 0, "", Asc)
	if page.TotalRows != 0 || page.PageCount != 1 || len(page.Rows) != 0 {
		t.Fatalf("unexpected empty page: %+v", page)
	}
}

func TestBuildTableMissingColumnsRenderPlaceholder(t *testing.T) {
	row := analysis.NewRow()
	row.Set(analysis.FieldLocation, analysis.TextValue("Akurdi"))

	page := BuildTable([]analysis.Row{row}, 0, "", Asc)
	cells := page.Rows[0]
	if cells[0] != "Akurdi" {
		t.Fatalf("location: %q", cells[0])
	}
	for i := 1; i < len(cells); i++ {
		if cells[i] != Placeholder {
			t.Fatalf("column %d: got %q want placeholder", i, cells[i])
		}
	}
}

func TestBuildTableSortNumericAscAndDesc(t *testing.T) {
	rows := []analysis.Row{
		makeRow("B", 2021, fptr(300)),
		makeRow("A", 2020, fptr(100)),
		makeRow("C", 2022, nil),
		makeRow("D", 2023, fptr(200)),
	}

	asc := BuildTable(rows, 0, analysis.FieldMetric, Asc)
	gotAsc := []string{asc.Rows[0][0], asc.Rows[1][0], asc.Rows[2][0], asc.Rows[3][0]}
	wantAsc := []string{"A", "D", "B", "C"}
	for i := range wantAsc {
		if gotAsc[i] != wantAsc[i] {
			t.Fatalf("asc order: got %v want %v", gotAsc, wantAsc)
		}
	}

	desc := BuildTable(rows, 0, analysis.FieldMetric, Desc)
	gotDesc := []string{desc.Rows[0][0], desc.Rows[1][0], desc.Rows[2][0], desc.Rows[3][0]}
	// Nulls sort last in both directions.
	wantDesc := []string{"B", "D", "A", "C"}
	for i := range wantDesc {
		if gotDesc[i] != wantDesc[i] {
			t.Fatalf("desc order: got %v want %v", gotDesc, wantDesc)
		}
	}
}

func TestBuildTableSortText(t *testing.T) {
	rows := []analysis.Row{
		makeRow("Wakad", 2020, fptr(1)),
		makeRow("Akurdi", 2020, fptr(2)),
		makeRow("Baner", 2020, fptr(3)),
	}

	page := BuildTable(rows, 0, analysis.FieldLocation, Asc)
	got := []string{page.Rows[0][0], page.Rows[1][0], page.Rows[2][0]}
	want := []string{"Akurdi", "Baner", "Wakad"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("text sort: got %v want %v", got, want)
		}
	}
}

func TestBuildTableSortDoesNotMutateInput(t *testing.T) {
	rows := []analysis.Row{
		makeRow("B", 2021, fptr(2)),
		makeRow("A", 2020, fptr(1)),
	}

	BuildTable(rows, 0, analysis.FieldLocation, Asc)

	if v, _ := rows[0].Get(analysis.FieldLocation); v.Str != "B" {
		t.Fatalf("input slice reordered: first row is %q", v.Str)
	}
}
