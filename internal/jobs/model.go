package jobs

import (
	"time"

	"daas-backend/internal/analysis"
)

const (
	StatusQueued    = "QUEUED"
	StatusRunning   = "RUNNING"
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
)

// Job is one analysis job record. After submission it is owned
// exclusively by the runner executing it until a terminal state, then
// read-only. Jobs are never deleted; retention is process-lifetime only.
type Job struct {
	ID           string             `json:"jobId"`
	UserID       string             `json:"userId"`
	DatasetID    string             `json:"datasetId"`
	AnalysisType string             `json:"analysisType"`
	Params       map[string]any     `json:"params"`
	Status       string             `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
	Result       *analysis.Envelope `json:"result"`
	Error        *string            `json:"error"`
}

// Terminal reports whether the status is absorbing.
func Terminal(status string) bool {
	return status == StatusSucceeded || status == StatusFailed
}
