package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/repolens/repolens/pkg/cli/config"
)

func TestGitHubAPIFlags(t *testing.T) {
	githubConfig := &config.GitHubAPI{}
	flags := githubConfig.Flags()

	gt.V(t, len(flags)).Equal(3)

	flagNames := make(map[string]bool)
	for _, flag := range flags {
		flagNames[flag.Names()[0]] = true
	}

	gt.True(t, flagNames["github-base-url"])
	gt.True(t, flagNames["github-token"])
	gt.True(t, flagNames["github-api-version"])
}

func TestSentryFlags(t *testing.T) {
	sentryConfig := &config.Sentry{}
	flags := sentryConfig.Flags()

	gt.V(t, len(flags)).Equal(2)

	flagNames := make(map[string]bool)
	for _, flag := range flags {
		flagNames[flag.Names()[0]] = true
	}

	gt.True(t, flagNames["sentry-dsn"])
	gt.True(t, flagNames["sentry-env"])
}
