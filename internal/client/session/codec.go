package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// timeNow is a test seam for the expiry clock.
var timeNow = time.Now

// Payload is the decoded body of an access token. Subject carries the
// user's email; AppExpiresAt is the application-defined expiry in seconds
// since epoch, kept separate from the standard exp claim.
type Payload struct {
	jwt.RegisteredClaims
	AppExpiresAt int64  `json:"expires_at,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	IsVerified   bool   `json:"is_verified,omitempty"`
	Role         string `json:"role,omitempty"`
}

// User is the identity projection derived from an access token.
type User struct {
	UserID     string
	Email      string
	IsVerified bool
	Role       string
}

// DecodeToken decodes the payload of a token without verifying its
// signature. This is a read-only convenience decode, not a trust boundary:
// the server remains the sole authority on token validity.
//
// A token that is not three dot-separated segments, or whose payload is not
// base64-encoded JSON, yields an error. Segments may carry base64 padding;
// some issuers emit padded payloads and the web client accepts them.
func DecodeToken(token string) (*Payload, error) {
	payload := &Payload{}
	if _, _, err := jwt.NewParser(jwt.WithPaddingAllowed()).ParseUnverified(token, payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return payload, nil
}

// IsTokenExpired reports whether the token should be considered expired.
// Undecodable tokens are expired. Both the application expires_at field and
// the standard exp claim are checked; either one in the past expires the
// token. A decodable token carrying neither field is treated as unexpired.
func IsTokenExpired(token string) bool {
	payload, err := DecodeToken(token)
	if err != nil {
		return true
	}

	now := timeNow().Unix()

	if payload.AppExpiresAt != 0 && payload.AppExpiresAt <= now {
		return true
	}
	if payload.ExpiresAt != nil && payload.ExpiresAt.Unix() <= now {
		return true
	}
	return false
}

// UserFromToken maps the decoded payload to a User, or nil when the token
// cannot be decoded.
func UserFromToken(token string) *User {
	payload, err := DecodeToken(token)
	if err != nil {
		return nil
	}
	return &User{
		UserID:     payload.UserID,
		Email:      payload.Subject,
		IsVerified: payload.IsVerified,
		Role:       payload.Role,
	}
}
