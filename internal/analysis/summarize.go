package analysis

import (
	"fmt"
	"sort"
	"strconv"

	"daas-backend/internal/dataset"
)

// Descriptive computes mean, median, and sum of intake. An empty input
// yields zeros for all three rather than an error.
func Descriptive(records []dataset.Record) Result {
	var mean, median, sum float64
	if len(records) > 0 {
		values := make([]float64, len(records))
		for i, rec := range records {
			values[i] = rec.Intake
			sum += rec.Intake
		}
		mean = sum / float64(len(values))
		sort.Float64s(values)
		mid := len(values) / 2
		if len(values)%2 == 0 {
			median = (values[mid-1] + values[mid]) / 2
		} else {
			median = values[mid]
		}
	}

	series := []Series{{
		Name: "Metrics",
		Points: []Point{
			{X: "mean", Y: mean},
			{X: "median", Y: median},
			{X: "sum", Y: sum},
		},
	}}

	return Result{
		Summary: fmt.Sprintf("Mean: %.2f, Median: %.2f, Sum: %.0f", mean, median, sum),
		Visualization: Visualization{
			ChartType: "bar",
			X:         "metric",
			Y:         "value",
			Series:    series,
		},
		Table: Table{
			Columns: []string{"metric", "value"},
			Rows: [][]any{
				{"mean", mean},
				{"median", median},
				{"sum", sum},
			},
		},
	}
}

// GroupBy sums intake grouped by one of the long-table fields. Group keys
// are emitted in ascending order.
func GroupBy(records []dataset.Record, field string) (Result, error) {
	if field == "" {
		field = "institution"
	}

	keyOf, err := groupKey(field)
	if err != nil {
		return Result{}, err
	}

	totals := make(map[string]float64)
	var keys []string
	for _, rec := range records {
		key := keyOf(rec)
		if _, seen := totals[key]; !seen {
			keys = append(keys, key)
		}
		totals[key] += rec.Intake
	}
	sortKeys(keys, field)

	points := make([]Point, 0, len(keys))
	rows := make([][]any, 0, len(keys))
	for _, key := range keys {
		points = append(points, Point{X: key, Y: totals[key]})
		rows = append(rows, []any{groupValue(key, field), totals[key]})
	}

	return Result{
		Summary: fmt.Sprintf("Grouped intake by %s.", field),
		Visualization: Visualization{
			ChartType: "bar",
			X:         field,
			Y:         "total_intake",
			Series:    []Series{{Name: "Total", Points: points}},
		},
		Table: Table{
			Columns: []string{field, "total_intake"},
			Rows:    rows,
		},
	}, nil
}

// TimeSeries sums intake by year, ascending.
func TimeSeries(records []dataset.Record) Result {
	totals := make(map[int]float64)
	for _, rec := range records {
		totals[rec.Year] += rec.Intake
	}
	years := sortedYears(totals)

	points := make([]Point, 0, len(years))
	rows := make([][]any, 0, len(years))
	for _, year := range years {
		points = append(points, Point{X: year, Y: totals[year]})
		rows = append(rows, []any{year, totals[year]})
	}

	return Result{
		Summary: "Time-series of total intake by year.",
		Visualization: Visualization{
			ChartType: "line",
			X:         "year",
			Y:         "total_intake",
			Series:    []Series{{Name: "Total", Points: points}},
		},
		Table: Table{
			Columns: []string{"year", "total_intake"},
			Rows:    rows,
		},
	}
}

func groupKey(field string) (func(dataset.Record) string, error) {
	switch field {
	case "institution":
		return func(r dataset.Record) string { return r.Institution }, nil
	case "sex":
		return func(r dataset.Record) string { return r.Sex }, nil
	case "year":
		return func(r dataset.Record) string { return strconv.Itoa(r.Year) }, nil
	default:
		return nil, fmt.Errorf("unknown group_by field: %s", field)
	}
}

func groupValue(key, field string) any {
	if field == "year" {
		if year, err := strconv.Atoi(key); err == nil {
			return year
		}
	}
	return key
}

func sortKeys(keys []string, field string) {
	if field == "year" {
		sort.Slice(keys, func(i, j int) bool {
			a, _ := strconv.Atoi(keys[i])
			b, _ := strconv.Atoi(keys[j])
			return a < b
		})
		return
	}
	sort.Strings(keys)
}

func sortedYears[V any](byYear map[int]V) []int {
	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}
