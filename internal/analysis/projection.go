package analysis

import "daas-backend/internal/dataset"

// Projection fits a degree-1 least-squares line to yearly intake totals
// and evaluates it at the next three consecutive years. Fewer than three
// distinct years is not an error: the result says so with an empty
// series and table.
func Projection(records []dataset.Record) Result {
	totals := make(map[int]float64)
	for _, rec := range records {
		totals[rec.Year] += rec.Intake
	}
	years := sortedYears(totals)

	if len(years) < 3 {
		return Result{
			Summary: "Not enough data points for projection.",
			Visualization: Visualization{
				ChartType: "line",
				X:         "year",
				Y:         "projected_intake",
				Series:    []Series{},
			},
			Table: Table{
				Columns: []string{"year", "projected_intake"},
				Rows:    [][]any{},
			},
		}
	}

	xs := make([]float64, len(years))
	ys := make([]float64, len(years))
	for i, year := range years {
		xs[i] = float64(year)
		ys[i] = totals[year]
	}
	slope, intercept := linearFit(xs, ys)

	lastYear := years[len(years)-1]
	points := make([]Point, 0, 3)
	rows := make([][]any, 0, 3)
	for offset := 1; offset <= 3; offset++ {
		year := lastYear + offset
		predicted := slope*float64(year) + intercept
		points = append(points, Point{X: year, Y: predicted})
		rows = append(rows, []any{year, predicted})
	}

	return Result{
		Summary: "Projection for the next three years based on linear trend.",
		Visualization: Visualization{
			ChartType: "line",
			X:         "year",
			Y:         "projected_intake",
			Series:    []Series{{Name: "Projection", Points: points}},
		},
		Table: Table{
			Columns: []string{"year", "projected_intake"},
			Rows:    rows,
		},
	}
}

// linearFit returns the least-squares slope and intercept for the given
// points. Callers guarantee at least two distinct x values.
func linearFit(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
