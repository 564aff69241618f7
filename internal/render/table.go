package render

import (
	"sort"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"insight-chat/internal/analysis"
)

// PageSize is the fixed table page size.
const PageSize = 5

// Placeholder renders absent or null numeric cells. Never blank, never "0".
const Placeholder = "—"

// SortDir orders a sorted column.
type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

// Column is one table facet column.
type Column struct {
	Field string `json:"field"`
	Title string `json:"title"`
}

// Columns lists the fixed table facet columns, in display order.
var Columns = []Column{
	{Field: analysis.FieldLocation, Title: "Location"},
	{Field: analysis.FieldYear, Title: "Year"},
	{Field: analysis.FieldMetric, Title: "Metric Value"},
	{Field: analysis.FieldUnits, Title: "Total Units"},
	{Field: analysis.FieldSales, Title: "Total Sales"},
}

var printer = message.NewPrinter(language.English)

// TablePage is one rendered page of the table facet.
type TablePage struct {
	Columns   []Column   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Page      int        `json:"page"`
	PageCount int        `json:"pageCount"`
	TotalRows int        `json:"totalRows"`
	SortField string     `json:"sortField,omitempty"`
	SortDir   SortDir    `json:"sortDir,omitempty"`
}

// FormatCell renders a single cell. Numbers get locale-aware thousands
// separators; text passes through; null and missing become the placeholder.
func FormatCell(v analysis.Value, present bool) string {
	if !present || v.Kind == analysis.Null {
		return Placeholder
	}
	if v.Kind == analysis.Text {
		return v.Str
	}
	return printer.Sprintf("%v", number.Decimal(v.Num))
}

// BuildTable renders one page of the table facet, optionally sorted by a
// column field. Page numbering starts at zero; out-of-range pages clamp.
func BuildTable(rows []analysis.Row, page int, sortField string, dir SortDir) TablePage {
	ordered := rows
	if sortField != "" {
		ordered = sortRows(rows, sortField, dir)
	}

	total := len(ordered)
	pageCount := (total + PageSize - 1) / PageSize
	if pageCount == 0 {
		pageCount = 1
	}
	if page < 0 {
		page = 0
	}
	if page >= pageCount {
		page = pageCount - 1
	}

	start := page * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	out := TablePage{
		Columns:   Columns,
		Rows:      make([][]string, 0, end-start),
		Page:      page,
		PageCount: pageCount,
		TotalRows: total,
		SortField: sortField,
		SortDir:   dir,
	}
	for _, row := range ordered[start:end] {
		cells := make([]string, len(Columns))
		for i, col := range Columns {
			v, ok := row.Get(col.Field)
			cells[i] = FormatCell(v, ok)
		}
		out.Rows = append(out.Rows, cells)
	}
	return out
}

// sortRows returns a sorted copy. Numbers compare numerically, text
// lexically; null and missing cells always sort last regardless of direction.
func sortRows(rows []analysis.Row, field string, dir SortDir) []analysis.Row {
	ordered := make([]analysis.Row, len(rows))
	copy(ordered, rows)

	sort.SliceStable(ordered, func(i, j int) bool {
		vi, oki := ordered[i].Get(field)
		vj, okj := ordered[j].Get(field)
		pi := oki && vi.Kind != analysis.Null
		pj := okj && vj.Kind != analysis.Null
		if pi != pj {
			return pi
		}
		if !pi {
			return false
		}

		var less bool
		switch {
		case vi.Kind == analysis.Number && vj.Kind == analysis.Number:
			less = vi.Num < vj.Num
		default:
			less = cellKey(vi) < cellKey(vj)
		}
		if dir == Desc {
			return !less && cellKey(vi) != cellKey(vj)
		}
		return less
	})
	return ordered
}

func cellKey(v analysis.Value) string {
	if v.Kind == analysis.Number {
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return v.Str
}
