package interfaces

import (
	"context"

	"github.com/repolens/repolens/pkg/domain/model"
)

type UseCase interface {
	GetUserRepos(ctx context.Context, login string) ([]model.UserRepo, error)
	GetUsersRepos(ctx context.Context) ([]model.UserRepo, error)
}
