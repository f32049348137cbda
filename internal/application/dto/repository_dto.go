package dto

// BranchResponse represents a branch and the SHA at its tip
type BranchResponse struct {
	Name          string `json:"name" example:"main"`
	LastCommitSHA string `json:"lastCommitSha" example:"aaa111"`
}

// RepositoryResponse represents a non-fork repository with its branches
type RepositoryResponse struct {
	RepositoryName string           `json:"repositoryName" example:"alpha"`
	OwnerLogin     string           `json:"ownerLogin" example:"someuser"`
	Branches       []BranchResponse `json:"branches"`
}
