package authn

import "errors"

var (
	// ErrInvalidCredentials is returned for any authentication failure:
	// unknown identifier, wrong password, or malformed input. Collapsing the
	// causes prevents account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserNotFound is returned when a user cannot be found in the store.
	ErrUserNotFound = errors.New("user not found")

	// ErrPasswordTooShort is returned when a registration password is below
	// the minimum length.
	ErrPasswordTooShort = errors.New("password too short")

	// ErrMissingFields is returned when registration input is incomplete.
	ErrMissingFields = errors.New("name, email and password are required")
)
