package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiresAt returns the exp claim of token without verifying its signature.
// ok is false when the token carries no exp claim.
func ExpiresAt(token string) (exp time.Time, ok bool, err error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	e, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if e == nil {
		return time.Time{}, false, nil
	}
	return e.Time, true, nil
}

// IsExpired reports whether token is expired at now.
// A token that cannot be decoded counts as expired; one without exp never expires.
func IsExpired(token string, now time.Time) bool {
	exp, ok, err := ExpiresAt(token)
	if err != nil {
		return true
	}
	if !ok {
		return false
	}
	return !now.Before(exp)
}
