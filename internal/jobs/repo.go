package jobs

import (
	"context"

	"daas-backend/internal/analysis"
)

// Patch carries the optional fields of a status transition.
type Patch struct {
	Result *analysis.Envelope
	Error  *string
}

// Repo defines the job registry operations. Implementations must be
// linearizable: no caller may observe a partially updated record.
type Repo interface {
	Create(ctx context.Context, job Job) error
	GetByID(ctx context.Context, jobID string) (Job, error)
	// List returns jobs newest-first with the given window, plus the
	// total count so callers can build a next-page cursor.
	List(ctx context.Context, limit, offset int) ([]Job, int, error)
	// UpdateStatus atomically sets the status, bumps updatedAt, and
	// applies the patch. Transitions out of a terminal state are
	// rejected with ErrTerminal.
	UpdateStatus(ctx context.Context, jobID, status string, patch Patch) error
}
