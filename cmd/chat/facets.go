package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"insight-chat/internal/analysis"
	"insight-chat/internal/render"
)

const chartBarWidth = 30

// renderChartFacet draws the chart facet with unicode blocks, one colored row
// per label per series. Absent values draw as gaps, never as zero-length bars.
func renderChartFacet(chart render.Chart) string {
	if len(chart.Series) == 0 {
		return ""
	}

	max := 0.0
	for _, s := range chart.Series {
		for _, v := range s.Data {
			if v != nil && *v > max {
				max = *v
			}
		}
	}
	if max == 0 {
		max = 1
	}

	labelWidth := 0
	for _, l := range chart.Labels {
		if len(l) > labelWidth {
			labelWidth = len(l)
		}
	}

	var sb strings.Builder
	for i, s := range chart.Series {
		style := lipgloss.NewStyle().Foreground(seriesColor(i))
		sb.WriteString(style.Bold(true).Render(s.Label) + "\n")
		for j, label := range chart.Labels {
			v := s.Data[j]
			sb.WriteString(fmt.Sprintf("  %-*s ", labelWidth, label))
			if v == nil {
				sb.WriteString("·\n")
				continue
			}
			width := int(*v / max * chartBarWidth)
			if width < 1 {
				width = 1
			}
			sb.WriteString(style.Render(strings.Repeat("█", width)))
			sb.WriteString(fmt.Sprintf(" %s\n", formatNumber(*v)))
		}
	}
	return sb.String()
}

// renderTableFacet draws one page of the table facet.
func renderTableFacet(page render.TablePage) string {
	if page.TotalRows == 0 {
		return "No data available for the current selection.\n"
	}

	widths := make([]int, len(page.Columns))
	for i, col := range page.Columns {
		widths[i] = len(col.Title)
	}
	for _, row := range page.Rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	for i, col := range page.Columns {
		sb.WriteString(fmt.Sprintf("%-*s  ", widths[i], col.Title))
	}
	sb.WriteString("\n")
	for i := range page.Columns {
		sb.WriteString(strings.Repeat("─", widths[i]) + "  ")
	}
	sb.WriteString("\n")
	for _, row := range page.Rows {
		for i, cell := range row {
			sb.WriteString(fmt.Sprintf("%-*s  ", widths[i], cell))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Page %d of %d (%d rows)\n", page.Page+1, page.PageCount, page.TotalRows))
	return sb.String()
}

func formatNumber(v float64) string {
	return render.FormatCell(analysis.NumberValue(v), true)
}
