package jobs

import (
	"context"
	"testing"
	"time"

	"daas-backend/internal/dataset"
)

type staticSource struct {
	table dataset.WideTable
}

func (s staticSource) Fetch(ctx context.Context) (dataset.WideTable, error) {
	return s.table, nil
}

func intakeTable() dataset.WideTable {
	return dataset.WideTable{
		Columns: []string{"year", "sex", "nus"},
		Rows: [][]string{
			{"1982", "M", "100"},
			{"1982", "F", "50"},
			{"1983", "M", "110"},
			{"1983", "F", "60"},
		},
	}
}

func setupService(t *testing.T) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	loader := dataset.NewLoader(staticSource{table: intakeTable()})
	runner := NewRunner(repo, loader, 2)
	t.Cleanup(runner.Close)

	svc := &Service{
		Repo:          repo,
		Runner:        runner,
		PublicBaseURL: "http://localhost:8080",
	}
	return svc, repo
}

func jobNow() time.Time {
	return time.Now().UTC()
}

func jobDelta(i int) time.Duration {
	return time.Duration(i) * time.Second
}

func waitTerminal(t *testing.T, repo Repo, jobID string) Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, err := repo.GetByID(context.Background(), jobID)
		if err != nil {
			t.Fatalf("get job: %v", err)
		}
		if Terminal(job.Status) {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never reached a terminal state", jobID)
	return Job{}
}
