package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/repolens/repolens/pkg/cli/config"
	"github.com/repolens/repolens/pkg/domain/model"
	"github.com/repolens/repolens/pkg/infra"
	"github.com/repolens/repolens/pkg/usecase"

	"github.com/urfave/cli/v3"
)

func fetchCommand() *cli.Command {
	var (
		login string
		all   bool

		githubAPI config.GitHubAPI
	)

	return &cli.Command{
		Name:    "fetch",
		Aliases: []string{"f"},
		Usage:   "Aggregate once and print the result as JSON to stdout",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "login",
				Aliases:     []string{"u"},
				Usage:       "User login to aggregate",
				Sources:     cli.EnvVars("REPOLENS_LOGIN"),
				Destination: &login,
			},
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "Aggregate across all users known to the upstream",
				Destination: &all,
			},
		}, githubAPI.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			if (login == "" && !all) || (login != "" && all) {
				return goerr.New("exactly one of --login or --all is required")
			}

			ghClient, err := githubAPI.New()
			if err != nil {
				return err
			}

			uc := usecase.New(infra.New(infra.WithGitHub(ghClient)))

			var repos []model.UserRepo
			if all {
				repos, err = uc.GetUsersRepos(ctx)
			} else {
				repos, err = uc.GetUserRepos(ctx, login)
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(repos); err != nil {
				return goerr.Wrap(err, "failed to encode result")
			}

			return nil
		},
	}
}
