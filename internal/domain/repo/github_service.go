package repo

import (
	"context"
)

// GitHubRepository is a repository descriptor as listed by the upstream API
type GitHubRepository struct {
	Name       string
	OwnerLogin string
	Fork       bool
}

// GitHubBranch is a branch descriptor with the commit SHA at its tip
type GitHubBranch struct {
	Name      string
	CommitSHA string
}

// GitHubService is a domain service interface for interacting with GitHub
// Implementation will be in infrastructure layer
type GitHubService interface {
	// ListRepositories lists the repositories of a user. A user unknown to
	// the upstream yields a NOT_FOUND DomainError.
	ListRepositories(ctx context.Context, username Username) ([]*GitHubRepository, error)

	// ListBranches lists the branches of owner/name in upstream order.
	ListBranches(ctx context.Context, owner Username, name Name) ([]*GitHubBranch, error)
}
