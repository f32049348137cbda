package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repo-lister/internal/domain/repo"
	"repo-lister/internal/github"
	infraGitHub "repo-lister/internal/infrastructure/github"
)

func newService(t *testing.T, handler http.HandlerFunc) repo.GitHubService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := github.NewClient(github.Options{BaseURL: server.URL})
	require.NoError(t, err)
	return infraGitHub.NewGitHubService(client)
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func mustUsername(t *testing.T, login string) repo.Username {
	t.Helper()
	u, err := repo.NewUsername(login)
	require.NoError(t, err)
	return u
}

func mustName(t *testing.T, name string) repo.Name {
	t.Helper()
	n, err := repo.NewName(name)
	require.NoError(t, err)
	return n
}

func TestGitHubServiceImpl_ListRepositories(t *testing.T) {
	t.Run("should project descriptors into domain repositories", func(t *testing.T) {
		svc := newService(t, respond(http.StatusOK, `[
			{"name":"alpha","owner":{"login":"someuser"},"fork":false},
			{"name":"bravo","owner":{"login":"org"},"fork":true}
		]`))

		repos, err := svc.ListRepositories(context.Background(), mustUsername(t, "someuser"))

		require.NoError(t, err)
		assert.Equal(t, []*repo.GitHubRepository{
			{Name: "alpha", OwnerLogin: "someuser", Fork: false},
			{Name: "bravo", OwnerLogin: "org", Fork: true},
		}, repos)
	})

	t.Run("should map 404 to NotFound with a fixed message", func(t *testing.T) {
		svc := newService(t, respond(http.StatusNotFound, `{"message":"No such user","documentation_url":"https://docs"}`))

		_, err := svc.ListRepositories(context.Background(), mustUsername(t, "user-does-not-exist"))

		require.True(t, repo.IsNotFound(err))
		var de *repo.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "Not Found", de.Message)
	})

	t.Run("should map other statuses to UpstreamFailure", func(t *testing.T) {
		svc := newService(t, respond(http.StatusInternalServerError, `{"message":"boom"}`))

		_, err := svc.ListRepositories(context.Background(), mustUsername(t, "someuser"))

		var de *repo.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, repo.CodeUpstreamFailure, de.Code)
		assert.Equal(t, http.StatusInternalServerError, de.Status)
		assert.Contains(t, de.Message, "boom")
	})

	t.Run("should map decoding failures to Transport", func(t *testing.T) {
		svc := newService(t, respond(http.StatusOK, `{"name":"not-an-array"}`))

		_, err := svc.ListRepositories(context.Background(), mustUsername(t, "someuser"))

		assert.True(t, repo.IsTransport(err))
	})
}

func TestGitHubServiceImpl_ListBranches(t *testing.T) {
	t.Run("should project branches in upstream order", func(t *testing.T) {
		svc := newService(t, respond(http.StatusOK, `[
			{"name":"main","commit":{"sha":"aaa111"}},
			{"name":"dev","commit":{"sha":"bbb222"}}
		]`))

		branches, err := svc.ListBranches(context.Background(), mustUsername(t, "someuser"), mustName(t, "alpha"))

		require.NoError(t, err)
		assert.Equal(t, []*repo.GitHubBranch{
			{Name: "main", CommitSHA: "aaa111"},
			{Name: "dev", CommitSHA: "bbb222"},
		}, branches)
	})

	t.Run("should not special-case 404", func(t *testing.T) {
		svc := newService(t, respond(http.StatusNotFound, `{"message":"Not Found"}`))

		_, err := svc.ListBranches(context.Background(), mustUsername(t, "someuser"), mustName(t, "alpha"))

		assert.False(t, repo.IsNotFound(err))
		assert.True(t, repo.IsUpstreamFailure(err))
	})

	t.Run("should map a missing sha to Transport", func(t *testing.T) {
		svc := newService(t, respond(http.StatusOK, `[{"name":"main"}]`))

		_, err := svc.ListBranches(context.Background(), mustUsername(t, "someuser"), mustName(t, "alpha"))

		assert.True(t, repo.IsTransport(err))
		assert.ErrorIs(t, err, github.ErrMissingCommitSHA)
	})

	t.Run("should map connection failures to Transport", func(t *testing.T) {
		server := httptest.NewServer(respond(http.StatusOK, `[]`))
		client, err := github.NewClient(github.Options{BaseURL: server.URL})
		require.NoError(t, err)
		server.Close()
		svc := infraGitHub.NewGitHubService(client)

		_, err = svc.ListBranches(context.Background(), mustUsername(t, "someuser"), mustName(t, "alpha"))

		assert.True(t, repo.IsTransport(err))
	})
}
