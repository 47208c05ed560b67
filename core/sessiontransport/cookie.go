package sessiontransport

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/gatekit/core/authn"
	"github.com/dmitrymomot/gatekit/core/cookie"
	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/session"
)

// Cookie provides HTTP cookie-based session transport. The session token is
// stored as a signed cookie value; the cookie is httpOnly because client
// script has no business reading it.
type Cookie struct {
	manager   *session.Manager
	cookieMgr *cookie.Manager
	name      string
	opts      []cookie.Option
}

// NewCookie creates a new cookie-based session transport. Extra cookie
// options (Secure, SameSite) are applied on every write.
func NewCookie(mgr *session.Manager, cookieMgr *cookie.Manager, name string, opts ...cookie.Option) *Cookie {
	return &Cookie{
		manager:   mgr,
		cookieMgr: cookieMgr,
		name:      name,
		opts:      opts,
	}
}

// Load resolves the session referenced by the request's cookie. A missing,
// unsigned, or stale cookie degrades to an anonymous zero session rather
// than failing the request; anonymous sessions are never persisted.
func (c *Cookie) Load(ctx handler.Context) (session.Session, error) {
	token, err := c.cookieMgr.GetSigned(ctx.Request(), c.name)
	if err != nil {
		return session.Session{}, nil
	}

	sess, err := c.manager.GetByToken(ctx, token)
	if err != nil {
		return session.Session{}, nil
	}

	return sess, nil
}

// Store persists a modified authenticated session and refreshes the cookie
// so the client's MaxAge stays synchronized with server-side expiration.
// Anonymous sessions are a no-op.
func (c *Cookie) Store(ctx handler.Context, sess session.Session) error {
	if !sess.IsAuthenticated() {
		return nil
	}

	if err := c.manager.Save(ctx, &sess); err != nil {
		return err
	}

	if sess.IsModified() {
		return c.writeCookie(ctx, sess)
	}
	return nil
}

// Login mints a fresh session bound to the principal and sets its cookie.
// The previous session, if any, is destroyed so its id cannot outlive the
// login exchange.
func (c *Cookie) Login(ctx handler.Context, principal authn.Principal) (session.Session, error) {
	if old, err := c.Load(ctx); err == nil && old.Token != "" {
		_ = c.manager.Destroy(ctx, old.Token)
	}

	sess, err := c.manager.Create(ctx, principal)
	if err != nil {
		return session.Session{}, err
	}

	if err := c.writeCookie(ctx, sess); err != nil {
		return session.Session{}, err
	}

	return sess, nil
}

// Logout destroys the current session and clears the cookie.
func (c *Cookie) Logout(ctx handler.Context) error {
	sess, err := c.Load(ctx)
	if err != nil {
		return err
	}

	if sess.Token != "" {
		if err := c.manager.Destroy(ctx, sess.Token); err != nil {
			return err
		}
	}

	c.cookieMgr.Delete(ctx.ResponseWriter(), c.name)
	return nil
}

func (c *Cookie) writeCookie(ctx handler.Context, sess session.Session) error {
	until := time.Until(sess.ExpiresAt)
	if until <= 0 {
		return fmt.Errorf("sessiontransport: cannot save expired session (expired %v ago)", -until)
	}

	opts := append([]cookie.Option{
		cookie.WithHTTPOnly(true),
		cookie.WithMaxAge(int(until.Seconds())),
	}, c.opts...)

	return c.cookieMgr.SetSigned(ctx.ResponseWriter(), c.name, sess.Token, opts...)
}
