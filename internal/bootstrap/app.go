package bootstrap

import (
	"context"

	"github.com/gin-gonic/gin"

	"daas-backend/internal/catalog"
	"daas-backend/internal/dataset"
	"daas-backend/internal/jobs"
	"daas-backend/internal/services/health"
	"daas-backend/internal/shared/config"
	"daas-backend/internal/shared/server"
)

// App holds shared dependencies, constructed once at process start and
// injected into handlers. Nothing here is an ambient global.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	Loader         *dataset.Loader
	JobsRepo       jobs.Repo
	Runner         *jobs.Runner
	JobsService    *jobs.Service
	JobsHandler    *jobs.Handler
	CatalogHandler *catalog.Handler
	Health         *health.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	source, err := buildSource(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	loader := dataset.NewLoader(source)
	repo := jobs.NewMemoryRepo()
	runner := jobs.NewRunner(repo, loader, cfg.WorkerConcurrency)

	jobsSvc := &jobs.Service{
		Repo:          repo,
		Runner:        runner,
		PublicBaseURL: cfg.PublicBaseURL,
	}

	app := &App{
		Config:         cfg,
		Loader:         loader,
		JobsRepo:       repo,
		Runner:         runner,
		JobsService:    jobsSvc,
		JobsHandler:    jobs.NewHandler(jobsSvc),
		CatalogHandler: catalog.NewHandler(),
		Health:         health.NewService(),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		Health:         app.Health,
		JobsHandler:    app.JobsHandler,
		CatalogHandler: app.CatalogHandler,
	})

	return app, nil
}

// Close stops the worker pool, waiting for in-flight jobs.
func (a *App) Close() {
	if a.Runner != nil {
		a.Runner.Close()
	}
}

func buildSource(ctx context.Context, cfg config.Config) (dataset.Source, error) {
	if cfg.UseS3 {
		return dataset.NewS3Source(ctx, cfg.AWSRegion, cfg.S3Bucket)
	}
	return dataset.FileSource{Path: cfg.DatasetPath}, nil
}
