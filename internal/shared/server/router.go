package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"daas-backend/internal/catalog"
	"daas-backend/internal/jobs"
	"daas-backend/internal/services/health"
	"daas-backend/internal/shared/config"
	"daas-backend/internal/shared/metrics"
	"daas-backend/internal/shared/server/middleware"
	"daas-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config         config.Config
	Health         *health.Service
	JobsHandler    *jobs.Handler
	CatalogHandler *catalog.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	deps.CatalogHandler.RegisterRoutes(api)
	deps.JobsHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
