package catalog

// DatasetID is the only dataset this deployment serves.
const DatasetID = "intake_by_institutions"

// Dataset describes a queryable dataset.
type Dataset struct {
	DatasetID   string   `json:"datasetId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TimeField   string   `json:"timeField"`
	Dimensions  []string `json:"dimensions"`
	Metrics     []string `json:"metrics"`
}

// AnalysisDescriptor describes one available analysis type.
type AnalysisDescriptor struct {
	AnalysisType string            `json:"analysisType"`
	Name         string            `json:"name"`
	ParamsSchema map[string]string `json:"paramsSchema"`
	Output       string            `json:"output"`
}

// Datasets returns the dataset descriptors.
func Datasets() []Dataset {
	return []Dataset{
		{
			DatasetID:   DatasetID,
			Name:        "Intake by Institutions",
			Description: "Student intake by institution, year, and sex.",
			TimeField:   "year",
			Dimensions:  []string{"sex", "institution"},
			Metrics:     []string{"intake"},
		},
	}
}

// Analyses returns the analysis descriptors for the dataset.
func Analyses() []AnalysisDescriptor {
	return []AnalysisDescriptor{
		{
			AnalysisType: "descriptive",
			Name:         "Descriptive statistics",
			ParamsSchema: map[string]string{"sex": "string", "yearFrom": "number", "yearTo": "number"},
			Output:       "Mean, median, and sum of intake.",
		},
		{
			AnalysisType: "group_by",
			Name:         "Group-by analysis",
			ParamsSchema: map[string]string{"group_by": "string", "sex": "string"},
			Output:       "Summed intake grouped by a field.",
		},
		{
			AnalysisType: "time_series",
			Name:         "Time-series analysis",
			ParamsSchema: map[string]string{"sex": "string"},
			Output:       "Trend of intake over time.",
		},
		{
			AnalysisType: "comparative",
			Name:         "Comparative analysis",
			ParamsSchema: map[string]string{"institutions": "string[]", "sex": "string"},
			Output:       "Compare two institutions across years.",
		},
		{
			AnalysisType: "gender_comparative",
			Name:         "Gender comparison",
			ParamsSchema: map[string]string{"institutions": "string[]", "yearFrom": "number", "yearTo": "number"},
			Output:       "Compare Male vs Female intake trends across selected institutions.",
		},
		{
			AnalysisType: "projection",
			Name:         "Projection",
			ParamsSchema: map[string]string{"sex": "string"},
			Output:       "Linear projection for the next three years.",
		},
	}
}
