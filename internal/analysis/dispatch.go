package analysis

import (
	"errors"
	"fmt"

	"daas-backend/internal/dataset"
)

// ErrUnknownAnalysisType indicates the requested type has no algorithm,
// even after alias resolution.
var ErrUnknownAnalysisType = errors.New("unknown analysis_type")

var aliases = map[string]string{
	"trend":                "time_series",
	"growth_rate":          "time_series",
	"compare_institutions": "comparative",
	"topk_by_year":         "group_by",
}

// Normalize resolves legacy aliases to canonical analysis types.
func Normalize(analysisType string) string {
	if canonical, ok := aliases[analysisType]; ok {
		return canonical
	}
	return analysisType
}

// Run dispatches the filtered long table to the algorithm for the
// requested analysis type. Algorithm-specific options (group_by field,
// institution list) come from the raw params map.
func Run(analysisType string, params map[string]any, records []dataset.Record) (Result, error) {
	switch Normalize(analysisType) {
	case "descriptive":
		return Descriptive(records), nil
	case "group_by":
		field := "institution"
		if v, ok := params["group_by"].(string); ok && v != "" {
			field = v
		}
		return GroupBy(records, field)
	case "time_series":
		return TimeSeries(records), nil
	case "comparative":
		var institutions []string
		if v, ok := params["institutions"]; ok && v != nil {
			institutions = stringList(v)
		}
		return Comparative(records, institutions), nil
	case "gender_comparative":
		return GenderComparative(records), nil
	case "projection":
		return Projection(records), nil
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownAnalysisType, analysisType)
	}
}
