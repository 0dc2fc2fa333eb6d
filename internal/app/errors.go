package service

import "errors"

// Sentinel kinds for dashboard failures.
var (
	// ErrSessionExpired means the token expired; the caller must sign in again.
	ErrSessionExpired = errors.New("session expired")
	ErrMissingToken   = errors.New("missing token")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrUnavailable    = errors.New("data api unavailable")
	ErrUnknownChart   = errors.New("unknown chart")
	ErrNotConfigured  = errors.New("service not configured")
)
