package csrf

import "errors"

var (
	// ErrTokenMissing is returned when the request lacks the token cookie or
	// the echoing header.
	ErrTokenMissing = errors.New("csrf token missing")

	// ErrTokenMismatch is returned when the header value does not equal the
	// cookie value.
	ErrTokenMismatch = errors.New("csrf token mismatch")

	// ErrTokenGeneration is returned when token generation fails.
	ErrTokenGeneration = errors.New("failed to generate csrf token")
)
