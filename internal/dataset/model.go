package dataset

// WideTable is a dataset snapshot in wide form: one row per (year, sex)
// pair and one column per institution. Cells are kept as raw CSV strings;
// numeric coercion happens during reshaping.
type WideTable struct {
	Columns []string
	Rows    [][]string
}

// Clone returns a deep copy the caller may mutate freely.
func (t WideTable) Clone() WideTable {
	out := WideTable{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// ColumnIndex returns the position of the named column, or -1.
func (t WideTable) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}
