package internal

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/dig"

	"repo-lister/internal/application/service"
	"repo-lister/internal/config"
	"repo-lister/internal/domain/repo"
	"repo-lister/internal/github"
	infraGitHub "repo-lister/internal/infrastructure/github"
	"repo-lister/internal/presentation"
	"repo-lister/internal/presentation/handlers"
)

// RegisterProviders registers all internal providers with the DIG container.
func RegisterProviders(container *dig.Container, cfg *config.Config) error {
	// bottom-up: config -> upstream client -> domain port -> use case -> HTTP
	providers := []interface{}{
		func() *config.Config { return cfg },
		newGitHubClient,
		infraGitHub.NewGitHubService,
		newRepositoryService,
		newHealthHandler,
		handlers.NewRepositoryHandler,
		newEngine,
		newServer,
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return err
		}
	}
	return nil
}

func newGitHubClient(cfg *config.Config) (*github.Client, error) {
	return github.NewClient(github.Options{
		BaseURL: cfg.GitHub.APIBase,
		Token:   cfg.GitHub.Token,
	})
}

func newRepositoryService(githubService repo.GitHubService, cfg *config.Config) *service.RepositoryService {
	return service.NewRepositoryService(githubService, cfg.GitHub.BranchConcurrency)
}

func newHealthHandler(cfg *config.Config) *handlers.HealthHandler {
	return handlers.NewHealthHandler(cfg.GitHub.APIBase)
}

func newEngine(
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	repositoryHandler *handlers.RepositoryHandler,
) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	return presentation.NewRouter(cfg, healthHandler, repositoryHandler)
}

func newServer(cfg *config.Config, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}
}
