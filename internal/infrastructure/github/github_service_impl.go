package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"repo-lister/internal/domain/repo"
	"repo-lister/internal/github"
)

// GitHubServiceImpl implements the domain repo.GitHubService interface
type GitHubServiceImpl struct {
	client *github.Client
}

// NewGitHubService creates a new GitHub service implementation
func NewGitHubService(client *github.Client) repo.GitHubService {
	return &GitHubServiceImpl{client: client}
}

// ListRepositories fetches the repositories of a user from GitHub.
// An upstream 404 becomes repo.ErrNotFound; the upstream message is dropped.
func (g *GitHubServiceImpl) ListRepositories(ctx context.Context, username repo.Username) ([]*repo.GitHubRepository, error) {
	zerolog.Ctx(ctx).Debug().Str("username", username.String()).Msg("listing upstream repositories")

	githubRepos, err := g.client.ListRepositories(ctx, username.String())
	if err != nil {
		var respErr *github.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return nil, repo.ErrNotFound()
		}
		return nil, toDomainError(err)
	}

	// Convert to domain GitHub repositories
	domainRepos := make([]*repo.GitHubRepository, len(githubRepos))
	for i, ghRepo := range githubRepos {
		domainRepos[i] = &repo.GitHubRepository{
			Name:       ghRepo.Name,
			OwnerLogin: ghRepo.Owner.Login,
			Fork:       ghRepo.Fork,
		}
	}

	return domainRepos, nil
}

// ListBranches fetches the branches of a repository from GitHub.
// No status is special-cased here, a 404 is an upstream failure like any other.
func (g *GitHubServiceImpl) ListBranches(ctx context.Context, owner repo.Username, name repo.Name) ([]*repo.GitHubBranch, error) {
	zerolog.Ctx(ctx).Debug().
		Str("owner", owner.String()).
		Str("repository", name.String()).
		Msg("listing upstream branches")

	githubBranches, err := g.client.ListBranches(ctx, owner.String(), name.String())
	if err != nil {
		return nil, toDomainError(err)
	}

	domainBranches := make([]*repo.GitHubBranch, len(githubBranches))
	for i, b := range githubBranches {
		domainBranches[i] = &repo.GitHubBranch{
			Name:      b.Name,
			CommitSHA: *b.Commit.SHA,
		}
	}

	return domainBranches, nil
}

func toDomainError(err error) error {
	var respErr *github.ResponseError
	if errors.As(err, &respErr) {
		return repo.ErrUpstreamFailure(respErr.StatusCode, respErr.Body)
	}
	return repo.ErrTransport(fmt.Errorf("github: %w", err))
}
