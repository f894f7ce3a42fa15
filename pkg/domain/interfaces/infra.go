package interfaces

import (
	"context"

	"github.com/repolens/repolens/pkg/domain/model"
)

// GitHubClient issues read requests against the upstream hosting API.
// Implementations must be safe for concurrent use; the aggregation
// engine calls it from many goroutines at once.
type GitHubClient interface {
	// GetUser resolves a login to its canonical user record. A 404 from
	// the upstream is reported as githubapi.ErrNotFound.
	GetUser(ctx context.Context, login string) (*model.User, error)

	// ListUserRepos returns the raw, unfiltered repository list. An
	// empty or absent upstream body is not an error; the caller decides.
	ListUserRepos(ctx context.Context, login string) ([]model.Repository, error)

	// ListBranches returns (nil, nil) when the upstream has no branch
	// payload for the repository, which callers treat as a skip signal.
	// A present-but-empty branch list is a non-nil empty slice.
	ListBranches(ctx context.Context, owner, repo string) ([]model.Branch, error)

	// ListUsers returns all users known to the upstream.
	ListUsers(ctx context.Context) ([]model.User, error)
}
