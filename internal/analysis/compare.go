package analysis

import (
	"fmt"
	"sort"
	"strings"

	"daas-backend/internal/dataset"
)

type yearKey struct {
	year int
	name string
}

// Comparative sums intake per (year, institution) for the named
// institutions. An empty list defaults to every distinct institution in
// the filtered data, in order of first appearance. Institutions with no
// matching rows are skipped in the series but the pivot table zero-fills
// missing (year, institution) cells.
func Comparative(records []dataset.Record, institutions []string) Result {
	if len(institutions) == 0 {
		seen := make(map[string]struct{})
		for _, rec := range records {
			if rec.Institution == "" {
				continue
			}
			if _, ok := seen[rec.Institution]; !ok {
				seen[rec.Institution] = struct{}{}
				institutions = append(institutions, rec.Institution)
			}
		}
	}

	wanted := make(map[string]struct{}, len(institutions))
	for _, inst := range institutions {
		wanted[inst] = struct{}{}
	}

	totals := make(map[yearKey]float64)
	yearSet := make(map[int]struct{})
	present := make(map[string]struct{})
	for _, rec := range records {
		if _, ok := wanted[rec.Institution]; !ok {
			continue
		}
		totals[yearKey{rec.Year, rec.Institution}] += rec.Intake
		yearSet[rec.Year] = struct{}{}
		present[rec.Institution] = struct{}{}
	}

	years := make([]int, 0, len(yearSet))
	for year := range yearSet {
		years = append(years, year)
	}
	sort.Ints(years)

	series := make([]Series, 0, len(institutions))
	for _, inst := range institutions {
		if _, ok := present[inst]; !ok {
			continue
		}
		points := make([]Point, 0, len(years))
		for _, year := range years {
			if total, ok := totals[yearKey{year, inst}]; ok {
				points = append(points, Point{X: year, Y: total})
			}
		}
		series = append(series, Series{Name: inst, Points: points})
	}

	// Pivot columns carry only institutions present in the data, sorted
	// by name, with one row per year and missing cells filled with 0.
	pivotInsts := make([]string, 0, len(present))
	for inst := range present {
		pivotInsts = append(pivotInsts, inst)
	}
	sort.Strings(pivotInsts)

	columns := append([]string{"year"}, pivotInsts...)
	rows := make([][]any, 0, len(years))
	for _, year := range years {
		row := make([]any, 0, len(columns))
		row = append(row, year)
		for _, inst := range pivotInsts {
			row = append(row, totals[yearKey{year, inst}])
		}
		rows = append(rows, row)
	}

	return Result{
		Summary: fmt.Sprintf("Comparative trends for %s.", strings.Join(institutions, ", ")),
		Visualization: Visualization{
			ChartType: "line",
			X:         "year",
			Y:         "intake",
			Series:    series,
		},
		Table: Table{Columns: columns, Rows: rows},
	}
}

// GenderComparative sums intake by (year, sex) across all institutions.
// Series come out in the fixed order M then F, skipping a sex with no
// data; the pivot table always carries both columns, zero-filled.
func GenderComparative(records []dataset.Record) Result {
	totals := make(map[yearKey]float64)
	yearSet := make(map[int]struct{})
	bySex := make(map[string]float64)
	for _, rec := range records {
		totals[yearKey{rec.Year, rec.Sex}] += rec.Intake
		yearSet[rec.Year] = struct{}{}
		bySex[rec.Sex] += rec.Intake
	}

	years := make([]int, 0, len(yearSet))
	for year := range yearSet {
		years = append(years, year)
	}
	sort.Ints(years)

	sexes := []string{"M", "F"}
	series := make([]Series, 0, len(sexes))
	for _, sex := range sexes {
		if _, ok := bySex[sex]; !ok {
			continue
		}
		points := make([]Point, 0, len(years))
		for _, year := range years {
			if total, ok := totals[yearKey{year, sex}]; ok {
				points = append(points, Point{X: year, Y: total})
			}
		}
		series = append(series, Series{Name: sex, Points: points})
	}

	columns := append([]string{"year"}, sexes...)
	rows := make([][]any, 0, len(years))
	for _, year := range years {
		row := make([]any, 0, len(columns))
		row = append(row, year)
		for _, sex := range sexes {
			row = append(row, totals[yearKey{year, sex}])
		}
		rows = append(rows, row)
	}

	return Result{
		Summary: fmt.Sprintf("Gender comparison: Male=%.0f, Female=%.0f", bySex["M"], bySex["F"]),
		Visualization: Visualization{
			ChartType: "line",
			X:         "year",
			Y:         "intake",
			Series:    series,
		},
		Table: Table{Columns: columns, Rows: rows},
	}
}
