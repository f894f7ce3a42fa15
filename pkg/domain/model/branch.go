package model

import "github.com/repolens/repolens/pkg/domain/types"

// Commit is the minimal commit reference attached to a branch. It is
// passed through from the upstream untouched.
type Commit struct {
	SHA types.CommitSHA `json:"sha"`
	URL string          `json:"url,omitempty"`
}

// Branch is one branch of a repository.
type Branch struct {
	Name   types.BranchName `json:"name"`
	Commit Commit           `json:"commit"`
}
