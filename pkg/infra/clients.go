package infra

import (
	"github.com/repolens/repolens/pkg/domain/interfaces"
)

type Clients struct {
	github interfaces.GitHubClient
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) GitHub() interfaces.GitHubClient {
	return x.github
}

func WithGitHub(client interfaces.GitHubClient) Option {
	return func(x *Clients) {
		x.github = client
	}
}
