package common

import "errors"

// Auth errors (invalid or malformed token).
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
