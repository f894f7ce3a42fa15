package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/repolens/repolens/pkg/domain/model"
	"github.com/repolens/repolens/pkg/domain/types"
	"github.com/repolens/repolens/pkg/infra/githubapi"
	"github.com/repolens/repolens/pkg/utils/logging"
)

// GetUserRepos returns all non-fork repositories of the user with their
// branches. Owner of every returned entry is the canonical login reported
// by the upstream user lookup, not the caller-supplied string.
func (x *UseCase) GetUserRepos(ctx context.Context, login string) ([]model.UserRepo, error) {
	login = strings.TrimSpace(login)

	user, err := x.clients.GitHub().GetUser(ctx, login)
	if err != nil {
		if errors.Is(err, githubapi.ErrNotFound) {
			return nil, goerr.Wrap(types.ErrUserNotFound, "unknown user", goerr.V("login", login))
		}
		return nil, err
	}

	return x.collectUserRepos(ctx, user.Login)
}

// collectUserRepos runs the per-user pipeline on an already-canonical
// login: list repos, drop forks, fan out branch lookups. Shared between
// the single-user and bulk paths.
func (x *UseCase) collectUserRepos(ctx context.Context, login string) ([]model.UserRepo, error) {
	repos, err := x.clients.GitHub().ListUserRepos(ctx, login)
	if err != nil {
		return nil, err
	}
	if len(repos) == 0 {
		return nil, goerr.Wrap(types.ErrReposNotFound, "user has no repositories", goerr.V("login", login))
	}

	var targets []model.Repository
	for _, repo := range repos {
		if !repo.Fork {
			targets = append(targets, repo)
		}
	}

	logging.From(ctx).Info("collected repositories",
		slog.String("login", login),
		slog.Int("total_repos", len(repos)),
		slog.Int("non_fork_repos", len(targets)),
	)

	return x.fetchBranches(ctx, login, targets)
}

// fetchBranches fans out one branch lookup per repository and merges the
// results back in submission order, regardless of completion order. A
// repository without a branch payload is skipped, not an error; any task
// failure aborts the whole fan-out.
func (x *UseCase) fetchBranches(ctx context.Context, owner string, repos []model.Repository) ([]model.UserRepo, error) {
	branchLists := make([][]model.Branch, len(repos))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, repo := range repos {
		eg.Go(func() error {
			branches, err := x.clients.GitHub().ListBranches(egCtx, owner, repo.Name)
			if err != nil {
				return err
			}
			branchLists[i] = branches
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	results := make([]model.UserRepo, 0, len(repos))
	for i, repo := range repos {
		if branchLists[i] == nil {
			logging.From(ctx).Debug("no branch payload, skipping repository",
				slog.String("owner", owner),
				slog.String("repo", repo.Name),
			)
			continue
		}
		results = append(results, model.UserRepo{
			RepoName: repo.Name,
			Owner:    owner,
			Branches: branchLists[i],
		})
	}

	return results, nil
}
