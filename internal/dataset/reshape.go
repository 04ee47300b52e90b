package dataset

import (
	"errors"
	"strconv"
)

// ErrSchema indicates the dataset is missing a required key column.
var ErrSchema = errors.New("dataset must contain 'year' and 'sex' columns")

// Record is one row of the long-form table: a single (year, sex,
// institution) triple with its intake count.
type Record struct {
	Year        int
	Sex         string
	Institution string
	Intake      float64
}

// Reshape melts a wide snapshot into long form. Every non-key column
// becomes an institution value, so each (row, institution-column) pair
// yields exactly one record. Intake cells that fail numeric coercion
// become 0 rather than dropping the row; the aggregate sums depend on
// that policy.
func Reshape(t WideTable) ([]Record, error) {
	yearIdx := t.ColumnIndex("year")
	sexIdx := t.ColumnIndex("sex")
	if yearIdx < 0 || sexIdx < 0 {
		return nil, ErrSchema
	}

	var institutions []int
	for i := range t.Columns {
		if i != yearIdx && i != sexIdx {
			institutions = append(institutions, i)
		}
	}

	records := make([]Record, 0, len(t.Rows)*len(institutions))
	for _, row := range t.Rows {
		year, _ := strconv.Atoi(row[yearIdx])
		sex := row[sexIdx]
		for _, col := range institutions {
			intake, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				intake = 0
			}
			records = append(records, Record{
				Year:        year,
				Sex:         sex,
				Institution: t.Columns[col],
				Intake:      intake,
			})
		}
	}
	return records, nil
}
