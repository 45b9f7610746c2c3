package services

import "errors"

// Every error here is recoverable by the user: handlers translate them into
// status codes and messages, and nothing below this layer leaks to clients.
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrValidationFailed      = errors.New("missing required field")
	ErrWrongOldPassword      = errors.New("old password is incorrect")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrSessionNotFound       = errors.New("session not found")
)
