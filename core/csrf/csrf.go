package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/dmitrymomot/gatekit/core/cookie"
)

// Manager implements the double-submit-cookie pattern: it issues a random
// token in a cookie readable by client script, and validates that
// state-changing requests echo the same value in a header. A third-party
// site cannot read the victim's cookie, so it cannot construct the header.
type Manager struct {
	cookieMgr *cookie.Manager
	config    Config
}

// NewManager creates a CSRF token manager writing through the given cookie
// manager.
func NewManager(cookieMgr *cookie.Manager, cfg Config) *Manager {
	cfg = cfg.withDefaults()
	return &Manager{
		cookieMgr: cookieMgr,
		config:    cfg,
	}
}

// CookieName returns the configured token cookie name.
func (m *Manager) CookieName() string { return m.config.CookieName }

// HeaderName returns the configured request header name.
func (m *Manager) HeaderName() string { return m.config.HeaderName }

// RotateOnLogin reports whether a fresh token should be minted after
// successful authentication.
func (m *Manager) RotateOnLogin() bool { return m.config.RotateOnLogin }

// Token returns the current token from the request cookie, if any.
func (m *Manager) Token(r *http.Request) (string, bool) {
	value, err := m.cookieMgr.Get(r, m.config.CookieName)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

// Issue ensures the client holds a token cookie, generating one only if
// absent. Repeated calls within one session return the stable existing
// token: rotating per-request would invalidate concurrently open tabs.
func (m *Manager) Issue(w http.ResponseWriter, r *http.Request) (string, error) {
	if token, ok := m.Token(r); ok {
		return token, nil
	}
	return m.Rotate(w)
}

// Rotate unconditionally generates a new token and sets its cookie.
// The cookie is intentionally not httpOnly: the double-submit pattern
// requires client script to read it back into the request header.
func (m *Manager) Rotate(w http.ResponseWriter) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}

	err = m.cookieMgr.Set(w, m.config.CookieName, token,
		cookie.WithHTTPOnly(false),
		cookie.WithPath(m.config.CookiePath),
		cookie.WithSecure(m.config.CookieSecure),
		cookie.WithSameSite(m.config.CookieSameSite),
	)
	if err != nil {
		return "", err
	}

	return token, nil
}

// Validate checks that the request header echoes the cookie token byte for
// byte. The comparison is constant-time.
func (m *Manager) Validate(r *http.Request) error {
	token, ok := m.Token(r)
	if !ok {
		return ErrTokenMissing
	}

	header := r.Header.Get(m.config.HeaderName)
	if header == "" {
		return ErrTokenMissing
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(header)) != 1 {
		return ErrTokenMismatch
	}

	return nil
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
