package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"repo-lister/internal/config"
	"repo-lister/internal/logger"
)

var (
	cfgFile string
	verbose bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "repo-lister",
		Short:         "Lists a GitHub user's non-fork repositories with their branches",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err := run(ctx, cmd)
			if err != nil {
				log.Error().Err(err).Msg("")
			}
			return err
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is config.yaml in the current directory)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.Flags().String("port", "8080", "Port to listen on")
	cmd.Flags().String("github-api-base", "", "Base URL of the GitHub REST API")
	cmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command) error {
	// Load configuration
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		logger.Setup("info", "console", verbose)
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format, verbose)

	server, err := injectServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}

	// Start server in a goroutine
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Str("upstream", cfg.GitHub.APIBase).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exited")
	return nil
}
