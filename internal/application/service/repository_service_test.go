package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repo-lister/internal/application/dto"
	"repo-lister/internal/application/service"
	"repo-lister/internal/domain/repo"
)

// Mock implementations
type mockGitHubService struct {
	mu       sync.Mutex
	repos    []*repo.GitHubRepository
	reposErr error
	branches map[string][]*repo.GitHubBranch
	failOn   map[string]error
	delay    time.Duration

	branchCalls []string
}

func newMockGitHubService(repos ...*repo.GitHubRepository) *mockGitHubService {
	return &mockGitHubService{
		repos:    repos,
		branches: make(map[string][]*repo.GitHubBranch),
		failOn:   make(map[string]error),
	}
}

func (m *mockGitHubService) ListRepositories(ctx context.Context, username repo.Username) ([]*repo.GitHubRepository, error) {
	if m.reposErr != nil {
		return nil, m.reposErr
	}
	return m.repos, nil
}

func (m *mockGitHubService) ListBranches(ctx context.Context, owner repo.Username, name repo.Name) ([]*repo.GitHubBranch, error) {
	key := owner.String() + "/" + name.String()

	m.mu.Lock()
	m.branchCalls = append(m.branchCalls, key)
	m.mu.Unlock()

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := m.failOn[key]; ok {
		return nil, err
	}
	return m.branches[key], nil
}

func (m *mockGitHubService) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.branchCalls...)
}

func descriptor(name string, fork bool) *repo.GitHubRepository {
	return &repo.GitHubRepository{Name: name, OwnerLogin: "someuser", Fork: fork}
}

func TestRepositoryService_ListNonForkRepositories(t *testing.T) {
	t.Run("should drop forks and keep upstream order", func(t *testing.T) {
		github := newMockGitHubService(
			descriptor("alpha", false),
			descriptor("bravo", true),
			descriptor("charlie", false),
		)
		github.branches["someuser/alpha"] = []*repo.GitHubBranch{
			{Name: "main", CommitSHA: "aaa111"},
			{Name: "dev", CommitSHA: "bbb222"},
		}
		github.branches["someuser/charlie"] = []*repo.GitHubBranch{
			{Name: "main", CommitSHA: "ccc333"},
		}
		svc := service.NewRepositoryService(github, 1)

		got, err := svc.ListNonForkRepositories(context.Background(), "someuser")

		require.NoError(t, err)
		assert.Equal(t, []*dto.RepositoryResponse{
			{
				RepositoryName: "alpha",
				OwnerLogin:     "someuser",
				Branches: []dto.BranchResponse{
					{Name: "main", LastCommitSHA: "aaa111"},
					{Name: "dev", LastCommitSHA: "bbb222"},
				},
			},
			{
				RepositoryName: "charlie",
				OwnerLogin:     "someuser",
				Branches:       []dto.BranchResponse{{Name: "main", LastCommitSHA: "ccc333"}},
			},
		}, got)
		assert.NotContains(t, github.calls(), "someuser/bravo")
	})

	t.Run("should use the owner login of each descriptor", func(t *testing.T) {
		github := newMockGitHubService(&repo.GitHubRepository{Name: "shared", OwnerLogin: "some-org"})
		svc := service.NewRepositoryService(github, 1)

		got, err := svc.ListNonForkRepositories(context.Background(), "someuser")

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "some-org", got[0].OwnerLogin)
		assert.Equal(t, []string{"some-org/shared"}, github.calls())
	})

	t.Run("should return an empty list for no repositories", func(t *testing.T) {
		svc := service.NewRepositoryService(newMockGitHubService(), 1)

		got, err := svc.ListNonForkRepositories(context.Background(), "someuser")

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("should not list branches when every repository is a fork", func(t *testing.T) {
		github := newMockGitHubService(
			descriptor("one", true),
			descriptor("two", true),
			descriptor("three", true),
		)
		svc := service.NewRepositoryService(github, 4)

		got, err := svc.ListNonForkRepositories(context.Background(), "someuser")

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Empty(t, github.calls())
	})

	t.Run("should keep repositories without branches", func(t *testing.T) {
		github := newMockGitHubService(descriptor("empty", false))
		github.branches["someuser/empty"] = []*repo.GitHubBranch{}
		svc := service.NewRepositoryService(github, 1)

		got, err := svc.ListNonForkRepositories(context.Background(), "someuser")

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.NotNil(t, got[0].Branches)
		assert.Empty(t, got[0].Branches)
	})

	t.Run("should propagate NotFound without listing branches", func(t *testing.T) {
		github := newMockGitHubService()
		github.reposErr = repo.ErrNotFound()
		svc := service.NewRepositoryService(github, 1)

		got, err := svc.ListNonForkRepositories(context.Background(), "user-does-not-exist")

		require.Error(t, err)
		assert.Nil(t, got)
		assert.True(t, repo.IsNotFound(err))
		assert.Empty(t, github.calls())
	})

	t.Run("should abort on a branch failure", func(t *testing.T) {
		github := newMockGitHubService(descriptor("alpha", false), descriptor("charlie", false))
		github.failOn["someuser/charlie"] = repo.ErrUpstreamFailure(500, "boom")
		svc := service.NewRepositoryService(github, 1)

		got, err := svc.ListNonForkRepositories(context.Background(), "someuser")

		require.Error(t, err)
		assert.Nil(t, got)
		assert.True(t, repo.IsUpstreamFailure(err))
	})

	t.Run("should reject a blank username", func(t *testing.T) {
		svc := service.NewRepositoryService(newMockGitHubService(), 1)

		_, err := svc.ListNonForkRepositories(context.Background(), "  ")

		assert.Equal(t, repo.CodeInvalidArgument, repo.CodeOf(err))
	})
}

func TestRepositoryService_ConcurrentBranchListing(t *testing.T) {
	t.Run("should preserve order with parallel branch calls", func(t *testing.T) {
		var repos []*repo.GitHubRepository
		github := newMockGitHubService()
		for i := 0; i < 20; i++ {
			name := fmt.Sprintf("repo-%02d", i)
			repos = append(repos, descriptor(name, i%3 == 0))
			github.branches["someuser/"+name] = []*repo.GitHubBranch{{Name: "main", CommitSHA: name}}
		}
		github.repos = repos
		github.delay = time.Millisecond
		svc := service.NewRepositoryService(github, 8)

		got, err := svc.ListNonForkRepositories(context.Background(), "someuser")

		require.NoError(t, err)
		var want []string
		for _, r := range repos {
			if !r.Fork {
				want = append(want, r.Name)
			}
		}
		var names []string
		for _, r := range got {
			names = append(names, r.RepositoryName)
			assert.Equal(t, r.RepositoryName, r.Branches[0].LastCommitSHA)
		}
		assert.Equal(t, want, names)
		for _, call := range github.calls() {
			assert.NotContains(t, []string{"someuser/repo-00", "someuser/repo-03", "someuser/repo-18"}, call)
		}
	})

	t.Run("should stop issuing calls after a failure", func(t *testing.T) {
		github := newMockGitHubService(
			descriptor("first", false),
			descriptor("second", false),
			descriptor("third", false),
		)
		boom := errors.New("boom")
		github.failOn["someuser/first"] = boom
		svc := service.NewRepositoryService(github, 1)

		_, err := svc.ListNonForkRepositories(context.Background(), "someuser")

		require.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"someuser/first"}, github.calls())
	})

	t.Run("should honour a cancelled request", func(t *testing.T) {
		github := newMockGitHubService(descriptor("alpha", false))
		github.delay = time.Second
		svc := service.NewRepositoryService(github, 1)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := svc.ListNonForkRepositories(ctx, "someuser")

		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
