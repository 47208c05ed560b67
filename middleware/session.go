package middleware

import (
	"net/http"

	"github.com/dmitrymomot/gatekit/core/authn"
	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/session"
)

// sessionContextKey is used as a key for storing the session in request context.
type sessionContextKey struct{}

// SessionTransport resolves a session from a request and persists changes
// back to the client. Implemented by sessiontransport.Cookie.
type SessionTransport interface {
	Load(ctx handler.Context) (session.Session, error)
	Store(ctx handler.Context, sess session.Session) error
}

// SessionConfig configures the session loading middleware.
type SessionConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// Transport resolves and persists sessions. Required.
	Transport SessionTransport
}

// Session returns a middleware that resolves the request's session and
// stores it in the context.
func Session(transport SessionTransport) handler.Middleware {
	return SessionWithConfig(SessionConfig{Transport: transport})
}

// SessionWithConfig returns a session middleware with custom configuration.
//
// An unresolvable session degrades to an anonymous one; later stages decide
// whether anonymity is acceptable for the route. Before the response body
// is written, a modified authenticated session is persisted and its cookie
// refreshed. Requests whose client has already disconnected are dropped
// before any downstream work.
func SessionWithConfig(cfg SessionConfig) handler.Middleware {
	if cfg.Transport == nil {
		panic("middleware: Session requires a transport")
	}

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(ctx handler.Context) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			if err := ctx.Err(); err != nil {
				return func(w http.ResponseWriter, r *http.Request) error {
					return err
				}
			}

			sess, err := cfg.Transport.Load(ctx)
			if err != nil {
				sess = session.Session{}
			}

			ctx.SetValue(sessionContextKey{}, sess)

			response := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				// Persist before the body is written: Set-Cookie is a header.
				// Re-read from context first, a later stage may have replaced
				// the session.
				if current, ok := GetSession(ctx); ok {
					if err := cfg.Transport.Store(ctx, current); err != nil {
						return err
					}
				}
				return response(w, r)
			}
		}
	}
}

// GetSession retrieves the session from the request context.
func GetSession(ctx handler.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(session.Session)
	return sess, ok
}

// SetSession replaces the session stored in the request context.
func SetSession(ctx handler.Context, sess session.Session) {
	ctx.SetValue(sessionContextKey{}, sess)
}

// GetPrincipal returns the authenticated principal bound to the request's
// session, if any.
func GetPrincipal(ctx handler.Context) (authn.Principal, bool) {
	sess, ok := GetSession(ctx)
	if !ok || !sess.IsAuthenticated() {
		return authn.Principal{}, false
	}
	return sess.Principal, true
}
