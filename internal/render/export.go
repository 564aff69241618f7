package render

import (
	"strconv"
	"strings"

	"insight-chat/internal/analysis"
)

// ExportFileName names the downloaded CSV for every result set.
const ExportFileName = "filtered-real-estate-data.csv"

// ExportCSV encodes table rows as delimited text. The first row's field order
// defines the header and the column order for every row; null or missing
// values encode as empty fields; everything else is double-quoted with
// internal quotes doubled. The input is never mutated.
func ExportCSV(rows []analysis.Row) string {
	if len(rows) == 0 {
		return ""
	}

	headers := rows[0].Fields()
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(headers, ","))

	for _, row := range rows {
		cells := make([]string, len(headers))
		for i, field := range headers {
			v, ok := row.Get(field)
			cells[i] = exportCell(v, ok)
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}

func exportCell(v analysis.Value, present bool) string {
	if !present || v.Kind == analysis.Null {
		return ""
	}
	var raw string
	if v.Kind == analysis.Number {
		raw = strconv.FormatFloat(v.Num, 'f', -1, 64)
	} else {
		raw = v.Str
	}
	return `"` + strings.ReplaceAll(raw, `"`, `""`) + `"`
}
