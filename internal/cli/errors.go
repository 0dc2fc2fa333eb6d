package cli

import "errors"

// Sentinel errors for command validation.
var (
	ErrMissingToken       = errors.New("no token: pass --token or set " + EnvToken)
	ErrMissingCredentials = errors.New("both --user and --password are required")
)
