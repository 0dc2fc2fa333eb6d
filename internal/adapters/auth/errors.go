package auth

import "errors"

// Sentinel kinds for sign-in failures.
var (
	ErrMissingCredentials = errors.New("auth: login and password are required")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrNoToken            = errors.New("auth: no token received from server")
	ErrNetwork            = errors.New("auth: network failure")
	ErrHTTPStatus         = errors.New("auth: unexpected http status")
	ErrMalformedToken     = errors.New("auth: malformed token")
)
