package model

// UserRepo is the aggregation output unit: one non-fork repository with
// its fetched branches. Owner is always the canonical login returned by
// the upstream user lookup.
type UserRepo struct {
	RepoName string   `json:"repoName"`
	Owner    string   `json:"owner"`
	Branches []Branch `json:"branches"`
}
