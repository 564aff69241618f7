// Package render projects a settled analysis payload into its presentational
// facets: narrative, chart, table, and the on-demand CSV export. Everything
// here is a pure function of the payload; no state is kept between renders.
package render

import (
	"strings"

	"insight-chat/internal/analysis"
)

// palette is the fixed dataset color cycle. Dataset i always gets slot
// i mod len(palette), stable across renders.
var palette = [...]string{
	"rgba(139, 92, 246, 0.8)",
	"rgba(14, 165, 233, 0.8)",
	"rgba(248, 113, 113, 0.8)",
	"rgba(52, 211, 153, 0.8)",
}

// DatasetColor returns the palette color for a dataset index.
func DatasetColor(i int) string {
	return palette[i%len(palette)]
}

// Series is one chart-ready dataset with its visual attributes resolved.
// Nil data points are gaps and must never be coerced to zero.
type Series struct {
	Label           string     `json:"label"`
	Data            []*float64 `json:"data"`
	BorderColor     string     `json:"borderColor"`
	BackgroundColor string     `json:"backgroundColor"`
	BorderWidth     int        `json:"borderWidth"`
	Fill            bool       `json:"fill"`
	Tension         float64    `json:"tension"`
}

// Chart is the chart facet.
type Chart struct {
	Type   analysis.ChartType `json:"type"`
	Labels []string           `json:"labels"`
	Series []Series           `json:"datasets"`
}

// BuildChart derives the chart facet. Line charts render with a translucent
// filled area and smoothed interpolation; bar charts as solid fills.
func BuildChart(p *analysis.Response) Chart {
	if p == nil {
		return Chart{}
	}
	chart := Chart{
		Type:   p.ChartType,
		Labels: append([]string(nil), p.ChartData.Labels...),
	}
	for i, ds := range p.ChartData.Datasets {
		color := DatasetColor(i)
		background := color
		if p.ChartType == analysis.ChartLine {
			background = strings.Replace(color, "0.8", "0.35", 1)
		}
		chart.Series = append(chart.Series, Series{
			Label:           ds.Label,
			Data:            append([]*float64(nil), ds.Data...),
			BorderColor:     color,
			BackgroundColor: background,
			BorderWidth:     3,
			Fill:            p.ChartType == analysis.ChartLine,
			Tension:         0.3,
		})
	}
	return chart
}

// Narrative returns the narrative facet: the summary markdown, handed to
// whatever markdown renderer the surface uses.
func Narrative(p *analysis.Response) string {
	if p == nil {
		return ""
	}
	return p.Summary
}
