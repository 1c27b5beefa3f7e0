// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned when the email/password pair does not
	// match a registered user. Callers must not reveal which part failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionExpired is returned when a token is expired or does not
	// belong to the user it is presented for.
	ErrSessionExpired = errors.New("session expired")

	// ErrInactiveUser is returned when a deactivated account presents a
	// valid token.
	ErrInactiveUser = errors.New("inactive user")

	// ErrOtpTooEarly is returned when a new reset code is requested before
	// the cooldown since the previous one has elapsed.
	ErrOtpTooEarly = errors.New("otp requested too early")

	// ErrOtpExpired is returned when the reset code's validity window has
	// passed.
	ErrOtpExpired = errors.New("otp expired")

	// ErrInvalidOtp is returned when the submitted reset code matches no
	// stored value.
	ErrInvalidOtp = errors.New("incorrect otp")
)
