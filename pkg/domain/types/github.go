package types

import "log/slog"

type (
	GitHubToken string
	BranchName  string
	CommitSHA   string
)

func (x GitHubToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubToken) String() string {
	return "***********"
}
