package jobs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"daas-backend/internal/shared/server/middleware"
	"daas-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the jobs service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job routes, current and legacy, to the group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs", h.submitJob)
	rg.GET("/jobs", h.listJobs)
	rg.GET("/jobs/:id", h.getJob)
	rg.GET("/jobs/:id/result", h.getResult)
	rg.GET("/jobs/:id/download", h.getDownload)

	rg.POST("/job", h.submitJobLegacy)
	rg.GET("/job/:id", h.getJobLegacy)
}

type submitRequest struct {
	DatasetID    string         `json:"datasetId"`
	AnalysisType string         `json:"analysisType"`
	Params       map[string]any `json:"params"`
}

func (h *Handler) submitJob(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.DatasetID == "" || req.AnalysisType == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "datasetId and analysisType are required", nil)
		return
	}

	job, err := h.Svc.Create(c.Request.Context(), req.DatasetID, req.AnalysisType, req.Params, middleware.RequestIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit job", nil)
		return
	}

	respond.JSON(c, http.StatusAccepted, gin.H{
		"jobId":  job.ID,
		"status": job.Status,
	})
}

func (h *Handler) listJobs(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	items, nextCursor, err := h.Svc.List(c.Request.Context(), limit, c.Query("cursor"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list jobs", nil)
		return
	}

	respond.OK(c, gin.H{
		"items":      items,
		"nextCursor": nextCursor,
	})
}

func (h *Handler) getJob(c *gin.Context) {
	job, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch job", nil)
		}
		return
	}
	respond.OK(c, job)
}

func (h *Handler) getResult(c *gin.Context) {
	envelope, err := h.Svc.Result(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondResultError(c, err)
		return
	}
	respond.OK(c, envelope)
}

func (h *Handler) getDownload(c *gin.Context) {
	url, expires, err := h.Svc.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondResultError(c, err)
		return
	}
	respond.OK(c, gin.H{
		"url":              url,
		"expiresInSeconds": expires,
	})
}

func respondResultError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
	case errors.Is(err, ErrNotReady):
		respond.Error(c, http.StatusConflict, "not_ready", "result not ready", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch result", nil)
	}
}

type legacySubmitRequest struct {
	DatasetID    string         `json:"dataset_id"`
	AnalysisType string         `json:"analysis_type"`
	Filters      map[string]any `json:"filters"`
}

func (h *Handler) submitJobLegacy(c *gin.Context) {
	var req legacySubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.DatasetID == "" || req.AnalysisType == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "dataset_id and analysis_type are required", nil)
		return
	}

	job, err := h.Svc.Create(c.Request.Context(), req.DatasetID, req.AnalysisType, req.Filters, middleware.RequestIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit job", nil)
		return
	}

	respond.OK(c, gin.H{"job_id": job.ID})
}

func (h *Handler) getJobLegacy(c *gin.Context) {
	job, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch job", nil)
		}
		return
	}

	status := "pending"
	if Terminal(job.Status) {
		status = "completed"
	}

	resp := gin.H{
		"job_id": job.ID,
		"status": status,
		"result": nil,
	}
	if job.Result != nil {
		resp["result"] = job.Result.Legacy()
	}
	respond.OK(c, resp)
}
