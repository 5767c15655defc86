package models

import "errors"

// Error taxonomy shared by services and handlers.
// Handlers map these to HTTP statuses with errors.Is, so services wrap them with %w.
var (
	// ErrInvalidRequest is returned when required fields are missing or malformed.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateEmail is returned when an email is already taken by another user.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrNotFound is returned when a user or content item does not exist.
	ErrNotFound = errors.New("not found")
)
