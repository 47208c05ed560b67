package middleware

import (
	"net/http"

	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/response"
	"github.com/dmitrymomot/gatekit/core/session"
)

// LogoutTransport tears down the current session and clears its cookie.
// Implemented by sessiontransport.Cookie.
type LogoutTransport interface {
	Logout(ctx handler.Context) error
}

// LogoutConfig configures the logout middleware.
type LogoutConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// Transport destroys the session. Required.
	Transport LogoutTransport

	// Path is the logout endpoint (default "/api/auth/logout").
	Path string
}

// Logout returns a middleware that terminates POST requests to the logout
// path, destroying the current session.
func Logout(transport LogoutTransport) handler.Middleware {
	return LogoutWithConfig(LogoutConfig{Transport: transport})
}

// LogoutWithConfig returns a logout middleware with custom configuration.
//
// The stage is terminal for its route and idempotent: logging out without a
// session still succeeds. The context session is reset so the session stage
// does not persist the destroyed session afterwards.
func LogoutWithConfig(cfg LogoutConfig) handler.Middleware {
	if cfg.Transport == nil {
		panic("middleware: Logout requires a transport")
	}

	if cfg.Path == "" {
		cfg.Path = "/api/auth/logout"
	}

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(ctx handler.Context) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			if req.Method != http.MethodPost || req.URL.Path != cfg.Path {
				return next(ctx)
			}

			if err := cfg.Transport.Logout(ctx); err != nil {
				return response.Error(response.ErrInternalServerError)
			}
			SetSession(ctx, session.Session{})

			return response.JSON(map[string]string{"status": "success"})
		}
	}
}
