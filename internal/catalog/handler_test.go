package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	NewHandler().RegisterRoutes(api)
	return router
}

func TestListDatasets(t *testing.T) {
	router := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/datasets", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var datasets []Dataset
	if err := json.NewDecoder(resp.Body).Decode(&datasets); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(datasets) != 1 || datasets[0].DatasetID != DatasetID {
		t.Fatalf("unexpected datasets: %+v", datasets)
	}
	if datasets[0].TimeField != "year" {
		t.Fatalf("unexpected timeField: %q", datasets[0].TimeField)
	}
}

func TestListAnalyses(t *testing.T) {
	router := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses?datasetId="+DatasetID, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var analyses []AnalysisDescriptor
	if err := json.NewDecoder(resp.Body).Decode(&analyses); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(analyses) != 6 {
		t.Fatalf("expected 6 analyses, got %d", len(analyses))
	}
}

func TestListAnalysesUnknownDataset(t *testing.T) {
	router := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses?datasetId=nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
