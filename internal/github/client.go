package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	gogithub "github.com/google/go-github/v69/github"
	"golang.org/x/oauth2"
)

const (
	// MediaType is sent as Accept on every request.
	MediaType = "application/vnd.github+json"
	// UserAgent is sent as User-Agent on every request.
	UserAgent = "repo-lister"
)

// Options configures a Client
type Options struct {
	// BaseURL is the upstream API root; request paths are resolved against it.
	BaseURL string
	// Token is an optional bearer credential, sent verbatim. Blank means no
	// Authorization header.
	Token string
	// HTTPClient is the underlying client; http.DefaultClient when nil.
	HTTPClient *http.Client
}

// Client handles GitHub API interactions. It is immutable after construction
// and safe for concurrent use.
type Client struct {
	restClient *gogithub.Client
}

// NewClient creates a new GitHub API client
func NewClient(opts Options) (*Client, error) {
	baseURL, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if strings.TrimSpace(opts.Token) != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, src)
	}

	restClient := gogithub.NewClient(httpClient)
	restClient.BaseURL = baseURL
	restClient.UserAgent = UserAgent

	return &Client{restClient: restClient}, nil
}

// parseBaseURL validates raw and guarantees the trailing slash go-github
// requires for relative resolution.
func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("github base URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid github base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("github base URL must be absolute: %q", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
		if u.RawPath != "" {
			u.RawPath += "/"
		}
	}
	return u, nil
}

// Repository represents a GitHub repository from the API. Unknown fields are ignored.
type Repository struct {
	Name  string `json:"name"`
	Owner Owner  `json:"owner"`
	Fork  bool   `json:"fork"`
}

// Owner is the account owning a repository
type Owner struct {
	Login string `json:"login"`
}

// Branch represents a GitHub branch from the API
type Branch struct {
	Name   string  `json:"name"`
	Commit *Commit `json:"commit"`
}

// Commit is the commit a branch points at
type Commit struct {
	SHA *string `json:"sha"`
}

// ResponseError is returned for any non-2xx upstream response
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("github API returned status %d: %s", e.StatusCode, e.Body)
}

// ErrMissingCommitSHA is returned when a branch payload has no commit.sha
var ErrMissingCommitSHA = errors.New("branch has no commit sha")

// ListRepositories fetches the first page of repositories owned by username
func (c *Client) ListRepositories(ctx context.Context, username string) ([]Repository, error) {
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}

	path := fmt.Sprintf("users/%s/repos", pathSegment(username))

	var repos []Repository
	if err := c.get(ctx, path, &repos); err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}

	return repos, nil
}

// ListBranches fetches the first page of branches of owner/repo
func (c *Client) ListBranches(ctx context.Context, owner, repo string) ([]Branch, error) {
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("owner and repository cannot be empty")
	}

	path := fmt.Sprintf("repos/%s/%s/branches", pathSegment(owner), pathSegment(repo))

	var branches []Branch
	if err := c.get(ctx, path, &branches); err != nil {
		return nil, fmt.Errorf("failed to fetch branches: %w", err)
	}

	for _, b := range branches {
		if b.Commit == nil || b.Commit.SHA == nil {
			return nil, fmt.Errorf("failed to decode branches of %s/%s: %q: %w", owner, repo, b.Name, ErrMissingCommitSHA)
		}
	}

	return branches, nil
}

// get issues a GET for path relative to the base URL and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, path string, v interface{}) error {
	req, err := c.restClient.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", MediaType)

	// go-github refuses calls locally once a response reported an exhausted
	// quota; every call must reach the upstream.
	ctx = context.WithValue(ctx, gogithub.BypassRateLimitCheck, true)

	resp, err := c.restClient.Do(ctx, req, v)
	if err != nil {
		if respErr := asResponseError(resp); respErr != nil {
			return respErr
		}
		return err
	}

	return nil
}

// pathSegment escapes s as a single path segment. Dot segments are encoded
// as well so URL resolution cannot collapse them.
func pathSegment(s string) string {
	if s == "." || s == ".." {
		return strings.Repeat("%2E", len(s))
	}
	return url.PathEscape(s)
}

// asResponseError converts a non-2xx go-github response into a ResponseError.
// go-github restores the body after reading it for its own error type.
func asResponseError(resp *gogithub.Response) *ResponseError {
	if resp == nil || resp.Response == nil {
		return nil
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var body string
	if resp.Body != nil {
		data, _ := io.ReadAll(resp.Body)
		body = string(data)
	}

	return &ResponseError{StatusCode: resp.StatusCode, Body: body}
}
