package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ObjectKey is the fixed object name the remote source fetches.
const ObjectKey = "IntakebyInstitutions_processed.csv"

// Source fetches a wide dataset snapshot from its backing storage.
type Source interface {
	Fetch(ctx context.Context) (WideTable, error)
}

// FileSource reads the dataset CSV from a local path.
type FileSource struct {
	Path string
}

// Fetch reads and parses the CSV file.
func (s FileSource) Fetch(ctx context.Context) (WideTable, error) {
	if err := ctx.Err(); err != nil {
		return WideTable{}, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return WideTable{}, fmt.Errorf("open dataset file %s: %w", s.Path, err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV decodes CSV content into a WideTable. The first record is the
// header row; short rows are padded so every row matches the header width.
func ParseCSV(r io.Reader) (WideTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return WideTable{}, fmt.Errorf("parse dataset csv: %w", err)
	}
	if len(records) == 0 {
		return WideTable{}, fmt.Errorf("parse dataset csv: empty file")
	}

	table := WideTable{Columns: records[0]}
	width := len(table.Columns)
	for _, rec := range records[1:] {
		row := make([]string, width)
		copy(row, rec)
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
