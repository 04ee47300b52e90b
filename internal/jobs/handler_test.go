package jobs

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func setupRouter(t *testing.T) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, repo := setupService(t)
	handler := NewHandler(svc)

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestSubmitJobValidation(t *testing.T) {
	router, _ := setupRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/jobs", map[string]any{
		"analysisType": "time_series",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing datasetId, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodPost, "/api/v1/jobs", map[string]any{
		"datasetId": "intake_by_institutions",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing analysisType, got %d", resp.Code)
	}
}

func TestSubmitJobLifecycle(t *testing.T) {
	router, repo := setupRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/jobs", map[string]any{
		"datasetId":    "intake_by_institutions",
		"analysisType": "time_series",
		"params":       map[string]any{},
	})
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		JobID  string `json:"jobId"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.JobID == "" {
		t.Fatalf("expected jobId, got empty")
	}
	if created.Status != StatusQueued {
		t.Fatalf("expected QUEUED, got %q", created.Status)
	}

	// Immediately after submission the job is already visible.
	get := doJSON(t, router, http.MethodGet, "/api/v1/jobs/"+created.JobID, nil)
	if get.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", get.Code)
	}

	done := waitTerminal(t, repo, created.JobID)
	if done.Status != StatusSucceeded {
		t.Fatalf("expected SUCCEEDED, got %s (error: %v)", done.Status, done.Error)
	}

	result := doJSON(t, router, http.MethodGet, "/api/v1/jobs/"+created.JobID+"/result", nil)
	if result.Code != http.StatusOK {
		t.Fatalf("expected 200 for result, got %d", result.Code)
	}
	var envelope struct {
		DatasetID string `json:"datasetId"`
		Table     struct {
			Rows [][]any `json:"rows"`
		} `json:"table"`
	}
	if err := json.NewDecoder(result.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.DatasetID != "intake_by_institutions" {
		t.Fatalf("unexpected datasetId: %q", envelope.DatasetID)
	}
	if len(envelope.Table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(envelope.Table.Rows))
	}
}

func TestGetJobNotFound(t *testing.T) {
	router, _ := setupRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/api/v1/jobs/does-not-exist", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestResultConflictBeforeSuccess(t *testing.T) {
	router, repo := setupRouter(t)
	seedJob(t, repo, "job-queued", time.Now().UTC())

	resp := doJSON(t, router, http.MethodGet, "/api/v1/jobs/job-queued/result", nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 while queued, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/jobs/job-queued/download", nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for download while queued, got %d", resp.Code)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/jobs/missing/result", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing job, got %d", resp.Code)
	}
}

func TestListJobsPagination(t *testing.T) {
	router, repo := setupRouter(t)
	base := time.Now().UTC()
	seedJob(t, repo, "job-a", base)
	seedJob(t, repo, "job-b", base.Add(time.Second))
	seedJob(t, repo, "job-c", base.Add(2*time.Second))

	resp := doJSON(t, router, http.MethodGet, "/api/v1/jobs?limit=2", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var page struct {
		Items      []Job   `json:"items"`
		NextCursor *string `json:"nextCursor"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].ID != "job-c" {
		t.Fatalf("unexpected first page: %+v", page.Items)
	}
	if page.NextCursor == nil || *page.NextCursor != "2" {
		t.Fatalf("unexpected cursor: %v", page.NextCursor)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/v1/jobs?limit=2&cursor=2", nil)
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode second page: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "job-a" {
		t.Fatalf("unexpected second page: %+v", page.Items)
	}
	if page.NextCursor != nil {
		t.Fatalf("expected no cursor on last page")
	}
}

func TestLegacySubmitAndPoll(t *testing.T) {
	router, repo := setupRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/api/v1/job", map[string]any{
		"dataset_id":    "intake_by_institutions",
		"analysis_type": "trend",
		"filters":       map[string]any{"sex": "M"},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		JobID string `json:"job_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.JobID == "" {
		t.Fatalf("expected job_id")
	}

	waitTerminal(t, repo, created.JobID)

	poll := doJSON(t, router, http.MethodGet, "/api/v1/job/"+created.JobID, nil)
	if poll.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", poll.Code)
	}
	var status struct {
		JobID  string `json:"job_id"`
		Status string `json:"status"`
		Result *struct {
			Summary   string           `json:"summary"`
			ChartData []map[string]any `json:"chart_data"`
			TableData []map[string]any `json:"table_data"`
		} `json:"result"`
	}
	if err := json.NewDecoder(poll.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Status != "completed" {
		t.Fatalf("expected completed, got %q", status.Status)
	}
	if status.Result == nil || len(status.Result.ChartData) == 0 {
		t.Fatalf("expected legacy result with chart_data, got %+v", status.Result)
	}
}

func TestLegacyPollPendingHasNullResult(t *testing.T) {
	router, repo := setupRouter(t)
	seedJob(t, repo, "job-queued", time.Now().UTC())

	resp := doJSON(t, router, http.MethodGet, "/api/v1/job/job-queued", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var status struct {
		Status string          `json:"status"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Status != "pending" {
		t.Fatalf("expected pending, got %q", status.Status)
	}
	if string(status.Result) != "null" {
		t.Fatalf("expected null result, got %s", status.Result)
	}
}
