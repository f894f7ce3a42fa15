package usecase

import (
	"github.com/repolens/repolens/pkg/domain/interfaces"
	"github.com/repolens/repolens/pkg/infra"
)

type UseCase struct {
	clients *infra.Clients
}

var _ interfaces.UseCase = (*UseCase)(nil)

func New(clients *infra.Clients) *UseCase {
	return &UseCase{
		clients: clients,
	}
}
