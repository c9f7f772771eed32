package container

import (
	"maridash/adapters/remote"
	"maridash/app"
	"maridash/domain/artifact"
	"maridash/domain/topic"
	"maridash/internal"
	"maridash/internal/config"
	"maridash/ports"
)

// Container holds the application dependencies built from one Config
type Container struct {
	Config config.Config
	Logger *internal.Logger

	Catalogue *topic.Catalogue
	Resolver  *artifact.Resolver
	Fetcher   ports.ArtifactFetcher
	Dashboard *app.DashboardService
}

// New wires the default catalogue, the HTTP fetcher and the dashboard service
func New(cfg config.Config, logger *internal.Logger) *Container {
	if logger == nil {
		logger = internal.Discard
	}

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Catalogue: topic.DefaultCatalogue,
		Resolver:  artifact.NewResolver(cfg.Artifacts.ImageBaseURL, cfg.Artifacts.DataBaseURL),
		Fetcher: remote.NewFetcher(
			remote.WithTimeout(cfg.Fetch.Timeout),
			remote.WithMaxTableBytes(cfg.Fetch.MaxTableBytes),
			remote.WithLogger(logger.With("fetcher")),
		),
	}
	c.Dashboard = app.NewDashboardService(c.Catalogue, c.Resolver, c.Fetcher, cfg.Fetch.Concurrency, logger)
	return c
}
