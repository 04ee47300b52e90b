package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"daas-backend/internal/shared/server/respond"
)

// Handler serves the dataset and analysis catalog.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches catalog routes to the group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/datasets", h.listDatasets)
	rg.GET("/analyses", h.listAnalyses)
}

func (h *Handler) listDatasets(c *gin.Context) {
	respond.OK(c, Datasets())
}

func (h *Handler) listAnalyses(c *gin.Context) {
	if c.Query("datasetId") != DatasetID {
		respond.Error(c, http.StatusNotFound, "not_found", "unknown datasetId", nil)
		return
	}
	respond.OK(c, Analyses())
}
