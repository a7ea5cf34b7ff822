package profiles

import "errors"

var (
	ErrNotInitialized = errors.New("profile store is not initialized")
	ErrNotFound       = errors.New("profile not found")
	ErrPersistence    = errors.New("profile storage failure")
	ErrInvalidProfile = errors.New("invalid profile")
)
