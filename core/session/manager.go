package session

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/gatekit/core/authn"
)

// Manager handles session lifecycle: creation on login, retrieval with
// expiration checks, persistence, and destruction on logout. The
// touchInterval throttles expiration updates to reduce store writes.
type Manager struct {
	store  Store
	config *Config
}

// NewManager creates a session manager with the specified store and options.
func NewManager(store Store, opts ...Option) *Manager {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Manager{
		store:  store,
		config: cfg,
	}
}

// Create mints a new session bound to the principal and persists it.
// The session always gets a fresh identifier and token.
func (m *Manager) Create(ctx context.Context, principal authn.Principal) (Session, error) {
	sess, err := New(principal, m.config.TTL)
	if err != nil {
		return Session{}, err
	}

	if err := m.store.Save(ctx, &sess); err != nil {
		return Session{}, errors.Join(ErrSaveSession, err)
	}

	// The caller receives a clean snapshot; the store already has this state.
	sess.isModified = false
	return sess, nil
}

// GetByToken retrieves a session by token and validates expiration.
func (m *Manager) GetByToken(ctx context.Context, token string) (Session, error) {
	sess, err := m.store.GetByToken(ctx, token)
	if err != nil {
		return Session{}, err
	}

	if sess.IsExpired() {
		return Session{}, ErrExpired
	}

	return *sess, nil
}

// Save persists the session if it was modified, extending its expiration
// when the touch interval has elapsed. The touch is visible to the caller so
// transports can synchronize cookie lifetimes with the new expiration.
func (m *Manager) Save(ctx context.Context, sess *Session) error {
	sess.Touch(m.config.TTL, m.config.TouchInterval)

	if sess.IsModified() {
		if err := m.store.Save(ctx, sess); err != nil {
			return errors.Join(ErrSaveSession, err)
		}
	}

	return nil
}

// Destroy removes the session from the store. Destroying a session that no
// longer exists is not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if err := m.store.Delete(ctx, token); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}

// CleanupExpired removes all expired sessions from the store.
// Should be called periodically to prevent store growth.
func (m *Manager) CleanupExpired(ctx context.Context) error {
	_, err := m.store.DeleteExpired(ctx)
	return err
}

// TTL returns the session time-to-live duration.
func (m *Manager) TTL() time.Duration {
	return m.config.TTL
}
