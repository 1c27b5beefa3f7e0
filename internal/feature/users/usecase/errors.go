// Package usecase contains the error definitions for user account management.
package usecase

import "errors"

var (
	// ErrEmailAlreadyExists is returned when the email address is already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")
)
