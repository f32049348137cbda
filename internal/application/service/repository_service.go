package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"repo-lister/internal/application/dto"
	"repo-lister/internal/domain/repo"
)

// RepositoryService handles repository-related use cases
type RepositoryService struct {
	githubService     repo.GitHubService
	branchConcurrency int
}

// NewRepositoryService creates a new repository service. branchConcurrency
// below 1 means branch listings run one at a time.
func NewRepositoryService(githubService repo.GitHubService, branchConcurrency int) *RepositoryService {
	if branchConcurrency < 1 {
		branchConcurrency = 1
	}
	return &RepositoryService{
		githubService:     githubService,
		branchConcurrency: branchConcurrency,
	}
}

// ListNonForkRepositories returns the user's non-fork repositories with their
// branches, in upstream order. Any upstream error aborts the whole listing.
func (s *RepositoryService) ListNonForkRepositories(ctx context.Context, username string) ([]*dto.RepositoryResponse, error) {
	uname, err := repo.NewUsername(username)
	if err != nil {
		return nil, err
	}

	githubRepos, err := s.githubService.ListRepositories(ctx, uname)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories of %s: %w", username, err)
	}

	sources := make([]*repo.GitHubRepository, 0, len(githubRepos))
	for _, ghRepo := range githubRepos {
		if !ghRepo.Fork {
			sources = append(sources, ghRepo)
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("username", username).
		Int("repositories", len(githubRepos)).
		Int("non_fork", len(sources)).
		Msg("filtered forks")

	// each goroutine owns one slot so order follows sources
	responses := make([]*dto.RepositoryResponse, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.branchConcurrency)
	for i, source := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			response, err := s.collectBranches(gctx, source)
			if err != nil {
				return err
			}
			responses[i] = response
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return responses, nil
}

func (s *RepositoryService) collectBranches(ctx context.Context, source *repo.GitHubRepository) (*dto.RepositoryResponse, error) {
	owner, err := repo.NewUsername(source.OwnerLogin)
	if err != nil {
		return nil, err
	}
	name, err := repo.NewName(source.Name)
	if err != nil {
		return nil, err
	}

	branches, err := s.githubService.ListBranches(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches of %s/%s: %w", owner, name, err)
	}

	return toDTO(source, branches), nil
}

// toDTO converts a domain repository and its branches to DTO
func toDTO(source *repo.GitHubRepository, branches []*repo.GitHubBranch) *dto.RepositoryResponse {
	branchResponses := make([]dto.BranchResponse, len(branches))
	for i, b := range branches {
		branchResponses[i] = dto.BranchResponse{
			Name:          b.Name,
			LastCommitSHA: b.CommitSHA,
		}
	}

	return &dto.RepositoryResponse{
		RepositoryName: source.Name,
		OwnerLogin:     source.OwnerLogin,
		Branches:       branchResponses,
	}
}
