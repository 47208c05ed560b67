package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gatekit/core/authn"
)

// Session associates an opaque identifier with an authenticated principal.
// A session with a zero Principal is anonymous; anonymous sessions are a
// per-request view and are never persisted. The Principal is a snapshot
// bound at login and is the only path by which a request's security context
// becomes non-empty.
type Session struct {
	// ID is the stable unique session identifier.
	ID uuid.UUID

	// Token is the cryptographically secure session token (32 bytes,
	// base64url). It is the cookie value; the store is keyed by it.
	Token string

	// Principal is the identity snapshot bound at login (zero when anonymous).
	Principal authn.Principal

	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// isModified tracks if the session needs saving
	isModified bool
}

// New creates a new session bound to the given principal, with a fresh ID
// and token. Login always goes through here: a pre-login session identifier
// is never promoted, which is the session-fixation protection.
func New(principal authn.Principal, ttl time.Duration) (Session, error) {
	token, err := generateToken()
	if err != nil {
		return Session{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session{
		ID:         uuid.New(),
		Token:      token,
		Principal:  principal,
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
		UpdatedAt:  now,
		isModified: true,
	}, nil
}

// IsAuthenticated returns true if the session is bound to a principal.
func (s Session) IsAuthenticated() bool {
	return !s.Principal.IsZero() && s.Token != ""
}

// IsExpired returns true if the session has expired.
func (s Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsModified returns true if the session has been modified and needs saving.
func (s Session) IsModified() bool {
	return s.isModified
}

// Touch extends the session expiration if the touch interval has elapsed.
// This reduces write operations by only updating when sufficient time has passed.
func (s *Session) Touch(ttl, touchInterval time.Duration) {
	if time.Since(s.UpdatedAt) >= touchInterval {
		s.ExpiresAt = time.Now().Add(ttl)
		s.UpdatedAt = time.Now()
		s.isModified = true
	}
}

// generateToken creates a cryptographically secure random token using
// 32 bytes (256 bits) encoded as base64 URL-safe string without padding.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
