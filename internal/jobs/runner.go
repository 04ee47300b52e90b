package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"daas-backend/internal/analysis"
	"daas-backend/internal/dataset"
	"daas-backend/internal/shared/metrics"
	"daas-backend/internal/shared/telemetry"
)

const taskQueueSize = 1024

type task struct {
	jobID     string
	requestID string
}

// Runner executes jobs asynchronously on a fixed pool of workers.
// Submission never blocks the caller beyond the queue send, and
// execution failures never propagate out; they are committed into the
// job record and observable only by polling.
type Runner struct {
	repo   Repo
	loader *dataset.Loader

	tasks chan task
	wg    sync.WaitGroup
}

// NewRunner starts a Runner with the given worker count (minimum 1).
func NewRunner(repo Repo, loader *dataset.Loader, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	r := &Runner{
		repo:   repo,
		loader: loader,
		tasks:  make(chan task, taskQueueSize),
	}
	for i := 0; i < workers; i++ {
		r.wg.Add(1)
		go r.workerLoop()
	}
	return r
}

// Submit schedules a queued job for execution. Ordering across jobs is
// not guaranteed.
func (r *Runner) Submit(jobID, requestID string) {
	r.tasks <- task{jobID: jobID, requestID: requestID}
}

// Close drains the queue and waits for in-flight jobs to finish.
func (r *Runner) Close() {
	close(r.tasks)
	r.wg.Wait()
}

func (r *Runner) workerLoop() {
	defer r.wg.Done()
	for t := range r.tasks {
		r.execute(context.Background(), t)
	}
}

func (r *Runner) execute(ctx context.Context, t task) {
	defer func() {
		if rec := recover(); rec != nil {
			r.fail(ctx, t, fmt.Errorf("panic: %v", rec))
		}
	}()

	startedAt := time.Now().UTC()
	if err := r.repo.UpdateStatus(ctx, t.jobID, StatusRunning, Patch{}); err != nil {
		r.fail(ctx, t, fmt.Errorf("set running failed: %w", err))
		return
	}

	job, err := r.repo.GetByID(ctx, t.jobID)
	if err != nil {
		r.fail(ctx, t, fmt.Errorf("job lookup: %w", err))
		return
	}
	metrics.IncJobStarted()
	telemetry.Info("job.status", map[string]any{
		"request_id":        t.requestID,
		"job_id":            job.ID,
		"analysis_type":     job.AnalysisType,
		"status":            StatusRunning,
		"status_transition": "QUEUED->RUNNING",
	})

	envelope, err := r.run(ctx, job)
	if err != nil {
		r.fail(ctx, t, err)
		return
	}

	if err := r.repo.UpdateStatus(ctx, t.jobID, StatusSucceeded, Patch{Result: envelope}); err != nil {
		telemetry.Error("job.commit", map[string]any{
			"request_id": t.requestID,
			"job_id":     t.jobID,
			"error":      err.Error(),
		})
		return
	}
	metrics.IncJobSucceeded()
	metrics.ObserveJobDurationMs(float64(time.Since(startedAt).Microseconds()) / 1000.0)
	telemetry.Info("job.status", map[string]any{
		"request_id":        t.requestID,
		"job_id":            job.ID,
		"analysis_type":     job.AnalysisType,
		"status":            StatusSucceeded,
		"status_transition": "RUNNING->SUCCEEDED",
	})
}

// run is the analysis pipeline: load, reshape, filter, dispatch.
func (r *Runner) run(ctx context.Context, job Job) (*analysis.Envelope, error) {
	wide, err := r.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	records, err := dataset.Reshape(wide)
	if err != nil {
		return nil, err
	}

	filters, err := analysis.ParseFilters(job.Params)
	if err != nil {
		return nil, err
	}
	filtered := filters.Apply(records)

	result, err := analysis.Run(job.AnalysisType, job.Params, filtered)
	if err != nil {
		return nil, err
	}

	return &analysis.Envelope{
		DatasetID:     job.DatasetID,
		AnalysisType:  job.AnalysisType,
		Params:        job.Params,
		GeneratedAt:   time.Now().UTC(),
		Summary:       result.Summary,
		Visualization: result.Visualization,
		Table:         result.Table,
		Meta:          map[string]any{"notes": "Generated by DAaaS backend."},
	}, nil
}

// fail records the error message verbatim and never re-raises.
func (r *Runner) fail(ctx context.Context, t task, cause error) {
	message := cause.Error()
	if err := r.repo.UpdateStatus(ctx, t.jobID, StatusFailed, Patch{Error: &message}); err != nil {
		telemetry.Error("job.fail_commit", map[string]any{
			"request_id": t.requestID,
			"job_id":     t.jobID,
			"error":      err.Error(),
		})
		return
	}
	metrics.IncJobFailed()
	telemetry.Error("job.status", map[string]any{
		"request_id":        t.requestID,
		"job_id":            t.jobID,
		"status":            StatusFailed,
		"status_transition": "RUNNING->FAILED",
		"error":             message,
	})
}
