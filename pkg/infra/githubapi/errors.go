package githubapi

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrNotFound is returned when the upstream responds with 404 on a
	// user lookup.
	ErrNotFound = goerr.New("not found")
)
