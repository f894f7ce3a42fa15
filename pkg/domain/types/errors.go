package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrUserNotFound is returned when the upstream does not know the
	// requested user login.
	ErrUserNotFound = goerr.New("user not found")

	// ErrReposNotFound is returned when the upstream's raw repository
	// list for a user is empty or absent.
	ErrReposNotFound = goerr.New("repos not found")

	// ErrRestClient wraps any non-404 upstream failure or transport
	// error. The upstream's own message is attached as the
	// "upstream_message" value.
	ErrRestClient = goerr.New("upstream request failed")

	ErrInvalidOption = goerr.New("invalid option")
)

// KeyUpstreamMessage is the goerr value key carrying the upstream's raw
// error message through an ErrRestClient chain.
const KeyUpstreamMessage = "upstream_message"
