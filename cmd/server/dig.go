package main

import (
	"net/http"

	"go.uber.org/dig"

	"repo-lister/internal"
	"repo-lister/internal/config"
)

func injectServer(cfg *config.Config) (*http.Server, error) {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container, cfg); err != nil {
		return nil, err
	}

	var server *http.Server
	if err := container.Invoke(func(s *http.Server) {
		server = s
	}); err != nil {
		return nil, err
	}

	return server, nil
}
