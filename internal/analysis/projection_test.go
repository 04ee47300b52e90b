package analysis

import (
	"math"
	"testing"

	"daas-backend/internal/dataset"
)

func TestProjectionNotEnoughData(t *testing.T) {
	records := []dataset.Record{
		{Year: 1982, Sex: "M", Institution: "nus", Intake: 100},
		{Year: 1983, Sex: "M", Institution: "nus", Intake: 110},
	}

	result := Projection(records)

	if result.Summary != "Not enough data points for projection." {
		t.Fatalf("unexpected summary: %q", result.Summary)
	}
	if len(result.Visualization.Series) != 0 {
		t.Fatalf("expected empty series, got %d", len(result.Visualization.Series))
	}
	if len(result.Table.Rows) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(result.Table.Rows))
	}
}

func TestProjectionCollinearIsExact(t *testing.T) {
	records := []dataset.Record{
		{Year: 2000, Sex: "M", Institution: "nus", Intake: 10},
		{Year: 2001, Sex: "M", Institution: "nus", Intake: 20},
		{Year: 2002, Sex: "M", Institution: "nus", Intake: 30},
	}

	result := Projection(records)

	want := map[int]float64{2003: 40, 2004: 50, 2005: 60}
	points := result.Visualization.Series[0].Points
	if len(points) != 3 {
		t.Fatalf("expected 3 projected points, got %d", len(points))
	}
	for _, point := range points {
		year, ok := point.X.(int)
		if !ok {
			t.Fatalf("expected integer year, got %T", point.X)
		}
		if math.Abs(point.Y-want[year]) > 1e-9 {
			t.Fatalf("year %d: expected %v, got %v", year, want[year], point.Y)
		}
	}
}

func TestProjectionSumsAcrossSexes(t *testing.T) {
	// Per-year totals are 150, 170, 190: slope 20 per year.
	records := []dataset.Record{
		{Year: 1982, Sex: "M", Institution: "nus", Intake: 100},
		{Year: 1982, Sex: "F", Institution: "nus", Intake: 50},
		{Year: 1983, Sex: "M", Institution: "nus", Intake: 110},
		{Year: 1983, Sex: "F", Institution: "nus", Intake: 60},
		{Year: 1984, Sex: "M", Institution: "nus", Intake: 120},
		{Year: 1984, Sex: "F", Institution: "nus", Intake: 70},
	}

	result := Projection(records)

	rows := result.Table.Rows
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != 1985 || math.Abs(rows[0][1].(float64)-210) > 1e-9 {
		t.Fatalf("unexpected first projection row: %v", rows[0])
	}
}
