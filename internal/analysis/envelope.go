package analysis

import (
	"fmt"
	"time"
)

// Point is one (x, y) chart coordinate. X is a year, a category label, or
// a metric name depending on the analysis.
type Point struct {
	X any     `json:"x"`
	Y float64 `json:"y"`
}

// Series is a named ordered sequence of chart points.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Visualization describes how to chart an analysis result.
type Visualization struct {
	ChartType string   `json:"chartType"`
	X         string   `json:"x"`
	Y         string   `json:"y"`
	Series    []Series `json:"series"`
}

// Table is the tabular rendering of an analysis result.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Result is the uniform output every aggregation algorithm produces.
type Result struct {
	Summary       string        `json:"summary"`
	Visualization Visualization `json:"visualization"`
	Table         Table         `json:"table"`
}

// Envelope is the canonical job result shape exposed to clients.
type Envelope struct {
	DatasetID     string         `json:"datasetId"`
	AnalysisType  string         `json:"analysisType"`
	Params        map[string]any `json:"params"`
	GeneratedAt   time.Time      `json:"generatedAt"`
	Summary       string         `json:"summary"`
	Visualization Visualization  `json:"visualization"`
	Table         Table          `json:"table"`
	Meta          map[string]any `json:"meta"`
}

// LegacyChartPoint is one flattened chart entry in the legacy shape.
type LegacyChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// LegacyResult is the backward-compatible projection of an envelope.
type LegacyResult struct {
	Summary   string             `json:"summary"`
	ChartData []LegacyChartPoint `json:"chart_data"`
	TableData []map[string]any   `json:"table_data"`
}

// Legacy flattens the envelope for legacy clients: every series point
// becomes a name/value pair and table rows become column-keyed objects.
func (e *Envelope) Legacy() LegacyResult {
	out := LegacyResult{
		ChartData: []LegacyChartPoint{},
		TableData: []map[string]any{},
	}
	if e == nil {
		return out
	}
	out.Summary = e.Summary

	for _, series := range e.Visualization.Series {
		for _, point := range series.Points {
			out.ChartData = append(out.ChartData, LegacyChartPoint{
				Name:  fmt.Sprint(point.X),
				Value: point.Y,
			})
		}
	}

	for _, row := range e.Table.Rows {
		entry := make(map[string]any, len(e.Table.Columns))
		for i, col := range e.Table.Columns {
			if i < len(row) {
				entry[col] = row[i]
			}
		}
		out.TableData = append(out.TableData, entry)
	}

	return out
}
