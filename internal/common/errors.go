// Package common defines shared constants and sentinel errors used across
// the TableOrder server. Callers should match these values with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Order lifecycle errors.
	ErrOrderCancelled = errors.New("order already cancelled")
	ErrEmptyDraft     = errors.New("draft is empty")
)

// AccessTokenCookieName is the cookie that carries the session access token
// for page requests. API clients send the token in the Authorization header
// instead.
const AccessTokenCookieName = "to-access-token"

// UserIDHeaderName and UserEmailHeaderName carry the resolved identity from
// the route guard to downstream handlers. Inbound values are stripped before
// the guard runs, so handlers can trust them.
const (
	UserIDHeaderName    = "X-User-Id"
	UserEmailHeaderName = "X-User-Email"
)
