package jobs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"daas-backend/internal/analysis"
)

const defaultListLimit = 1000

// localUser tags jobs created through the unauthenticated API.
const localUser = "local-user"

// Service contains business logic for the job lifecycle.
type Service struct {
	Repo          Repo
	Runner        *Runner
	PublicBaseURL string
}

// Create registers a QUEUED job and schedules it for execution without
// blocking the caller on the analysis itself.
func (s *Service) Create(ctx context.Context, datasetID, analysisType string, params map[string]any, requestID string) (Job, error) {
	if datasetID == "" || analysisType == "" {
		return Job{}, errors.New("datasetId and analysisType are required")
	}
	if params == nil {
		params = map[string]any{}
	}

	now := time.Now().UTC()
	job := Job{
		ID:           uuid.NewString(),
		UserID:       localUser,
		DatasetID:    datasetID,
		AnalysisType: analysisType,
		Params:       params,
		Status:       StatusQueued,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}

	s.Runner.Submit(job.ID, requestID)
	return job, nil
}

// Get returns a job by ID.
func (s *Service) Get(ctx context.Context, jobID string) (Job, error) {
	if jobID == "" {
		return Job{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, jobID)
}

// List returns a page of jobs, newest first. The cursor is the next
// start offset encoded as a string; an absent or invalid cursor starts
// at 0. Offsets are not stable under concurrent job creation between
// pages, which is a documented limitation of this design.
func (s *Service) List(ctx context.Context, limit int, cursor string) ([]Job, *string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := 0
	if cursor != "" {
		if parsed, err := strconv.Atoi(cursor); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	items, total, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	var nextCursor *string
	if end := offset + len(items); end < total {
		next := strconv.Itoa(end)
		nextCursor = &next
	}
	return items, nextCursor, nil
}

// Result returns the envelope for a SUCCEEDED job. ErrNotReady before
// the job reaches that state.
func (s *Service) Result(ctx context.Context, jobID string) (*analysis.Envelope, error) {
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != StatusSucceeded {
		return nil, ErrNotReady
	}
	return job.Result, nil
}

// Download returns a short-lived pointer at the result endpoint. There
// is no real object storage behind it.
func (s *Service) Download(ctx context.Context, jobID string) (string, int, error) {
	if _, err := s.Result(ctx, jobID); err != nil {
		return "", 0, err
	}
	url := fmt.Sprintf("%s/api/v1/jobs/%s/result", s.PublicBaseURL, jobID)
	return url, 3600, nil
}
