package analysis

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"daas-backend/internal/dataset"
)

// Filters is the canonical filter set applied before any analysis. Both
// naming variants accepted on the wire (year_from/yearFrom, ...) resolve
// into this one struct at the boundary.
type Filters struct {
	Sex          string
	Sexes        []string
	YearFrom     *int
	YearTo       *int
	Institutions []string
}

// ParseFilters resolves the raw params map into a Filters value. Unknown
// keys are ignored; malformed year values are an error, which fails the
// job rather than silently widening the result.
func ParseFilters(params map[string]any) (Filters, error) {
	var f Filters

	if v, ok := params["sex"]; ok {
		if s, ok := v.(string); ok && s != "" {
			f.Sex = s
		}
	}
	if v, ok := params["sexes"]; ok {
		f.Sexes = stringList(v)
	}

	yearFrom, err := yearValue(params, "year_from", "yearFrom")
	if err != nil {
		return Filters{}, err
	}
	f.YearFrom = yearFrom

	yearTo, err := yearValue(params, "year_to", "yearTo")
	if err != nil {
		return Filters{}, err
	}
	f.YearTo = yearTo

	if v, ok := params["institutions"]; ok && v != nil {
		f.Institutions = stringList(v)
	}
	if len(f.Institutions) == 0 {
		if v, ok := params["institution"]; ok && v != nil {
			f.Institutions = stringList(v)
		}
	}

	return f, nil
}

// Apply narrows the long table to records matching every present filter.
// Predicates are independent conjunctions, so evaluation order does not
// matter. The input is never mutated.
func (f Filters) Apply(records []dataset.Record) []dataset.Record {
	sexes := toSet(f.Sexes)
	institutions := toSet(f.Institutions)

	out := make([]dataset.Record, 0, len(records))
	for _, rec := range records {
		if f.Sex != "" && rec.Sex != f.Sex {
			continue
		}
		if len(sexes) > 0 {
			if _, ok := sexes[rec.Sex]; !ok {
				continue
			}
		}
		if f.YearFrom != nil && rec.Year < *f.YearFrom {
			continue
		}
		if f.YearTo != nil && rec.Year > *f.YearTo {
			continue
		}
		if len(institutions) > 0 {
			if _, ok := institutions[rec.Institution]; !ok {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

func yearValue(params map[string]any, keys ...string) (*int, error) {
	for _, key := range keys {
		v, ok := params[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			year := int(n)
			return &year, nil
		case int:
			year := n
			return &year, nil
		case json.Number:
			parsed, err := n.Int64()
			if err != nil {
				return nil, fmt.Errorf("invalid %s value %q", key, n.String())
			}
			year := int(parsed)
			return &year, nil
		case string:
			parsed, err := strconv.Atoi(strings.TrimSpace(n))
			if err != nil {
				return nil, fmt.Errorf("invalid %s value %q", key, n)
			}
			return &parsed, nil
		default:
			return nil, fmt.Errorf("invalid %s value of type %T", key, v)
		}
	}
	return nil, nil
}

// stringList accepts a list of strings, a mixed JSON list, or a
// comma-joined string and returns the trimmed non-empty items.
func stringList(v any) []string {
	var out []string
	switch items := v.(type) {
	case []string:
		for _, item := range items {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	case []any:
		for _, item := range items {
			if s, ok := item.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					out = append(out, trimmed)
				}
			}
		}
	case string:
		for _, item := range strings.Split(items, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

func toSet(items []string) map[string]struct{} {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
