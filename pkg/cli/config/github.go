package config

import (
	"log/slog"

	"github.com/repolens/repolens/pkg/domain/types"
	"github.com/repolens/repolens/pkg/infra/githubapi"
	"github.com/urfave/cli/v3"
)

// GitHubAPI holds the fixed upstream configuration: base URL, bearer
// token and API version header. All three are required and immutable for
// the process lifetime.
type GitHubAPI struct {
	baseURL string
	token   types.GitHubToken `masq:"secret"`
	version string
}

func (x *GitHubAPI) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL",
			Category:    "GitHub API",
			Value:       "https://api.github.com",
			Sources:     cli.EnvVars("REPOLENS_GITHUB_BASE_URL"),
			Destination: &x.baseURL,
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API bearer token",
			Category:    "GitHub API",
			Sources:     cli.EnvVars("REPOLENS_GITHUB_TOKEN"),
			Destination: (*string)(&x.token),
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "github-api-version",
			Usage:       "Value of the X-GitHub-Api-Version header",
			Category:    "GitHub API",
			Value:       "2022-11-28",
			Sources:     cli.EnvVars("REPOLENS_GITHUB_API_VERSION"),
			Destination: &x.version,
		},
	}
}

func (x GitHubAPI) New(options ...githubapi.Option) (*githubapi.Client, error) {
	return githubapi.New(x.baseURL, x.token, x.version, options...)
}

func (x GitHubAPI) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("BaseURL", x.baseURL),
		slog.Int("Token.len", len(x.token)),
		slog.String("Version", x.version),
	)
}
