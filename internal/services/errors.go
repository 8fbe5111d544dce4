package services

import "errors"

// Business failures surfaced by the service layer. Handlers map these onto
// HTTP statuses; everything else is treated as a store failure.
var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrDeactivated        = errors.New("account is deactivated")
)
