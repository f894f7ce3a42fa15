package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/repolens/repolens/pkg/domain/model"
	"github.com/repolens/repolens/pkg/utils/errutil"
	"github.com/repolens/repolens/pkg/utils/logging"
)

// GetUsersRepos aggregates non-fork repositories with their branches
// across all users known to the upstream. Each user runs as an
// independent task: a failing user is logged and dropped without
// affecting the others. Only a failure of the user directory listing
// itself fails the call.
func (x *UseCase) GetUsersRepos(ctx context.Context) ([]model.UserRepo, error) {
	users, err := x.clients.GitHub().ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	logger := logging.From(ctx)
	logger.Info("starting bulk aggregation", slog.Int("users", len(users)))

	// Per-user result slots keep the join free of concurrent writers and
	// preserve each user's internal ordering in the flattened output.
	perUser := make([][]model.UserRepo, len(users))

	var wg sync.WaitGroup
	for i, user := range users {
		wg.Add(1)
		go func() {
			defer wg.Done()

			repos, err := x.collectUserRepos(ctx, user.Login)
			if err != nil {
				errutil.HandleError(ctx, "dropping user from bulk aggregation",
					goerr.Wrap(err, "per-user aggregation failed", goerr.V("login", user.Login)))
				return
			}
			perUser[i] = repos
		}()
	}
	wg.Wait()

	results := make([]model.UserRepo, 0)
	for _, repos := range perUser {
		results = append(results, repos...)
	}

	logger.Info("completed bulk aggregation",
		slog.Int("users", len(users)),
		slog.Int("repos", len(results)),
	)

	return results, nil
}
