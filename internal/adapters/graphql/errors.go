package graphql

import "errors"

// Sentinel kinds for data API failures.
var (
	ErrNetwork           = errors.New("graphql: network failure")
	ErrHTTPStatus        = errors.New("graphql: unexpected http status")
	ErrUnauthorized      = errors.New("graphql: unauthorized")
	ErrSessionExpired    = errors.New("graphql: session expired")
	ErrMalformedResponse = errors.New("graphql: malformed response")
	ErrQuery             = errors.New("graphql: query rejected")
	ErrUserNotFound      = errors.New("graphql: user not found")
)
