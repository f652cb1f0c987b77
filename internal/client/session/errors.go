package session

import "errors"

var (
	// ErrNoRefreshToken is returned by the refresh coordinator when no
	// refresh token is available; no exchange is attempted and stored
	// tokens are left untouched.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrRefreshFailed wraps any failure of the refresh exchange. By the
	// time it is returned, stored tokens have been cleared.
	ErrRefreshFailed = errors.New("refresh exchange failed")

	// ErrInvalidToken marks a token that could not be decoded.
	ErrInvalidToken = errors.New("invalid token")
)
