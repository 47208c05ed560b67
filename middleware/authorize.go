package middleware

import (
	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/response"
	"github.com/dmitrymomot/gatekit/pkg/routematch"
)

// AuthorizeConfig configures the route authorization middleware.
type AuthorizeConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// PublicRoutes lists path patterns reachable without authentication,
	// e.g. "/api/auth/*", "/static/**", "/*.js". Order matters: the first
	// matching pattern wins.
	PublicRoutes []string
}

// Authorize returns a middleware that rejects unauthenticated requests to
// any route not declared public.
func Authorize(publicRoutes ...string) handler.Middleware {
	return AuthorizeWithConfig(AuthorizeConfig{PublicRoutes: publicRoutes})
}

// AuthorizeWithConfig returns a route authorization middleware with custom
// configuration.
//
// The matcher fails closed: a path matching no pattern is protected. Adding
// an endpoint can therefore never silently expose it.
func AuthorizeWithConfig(cfg AuthorizeConfig) handler.Middleware {
	public := routematch.New(cfg.PublicRoutes...)

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(ctx handler.Context) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			if public.Matches(ctx.Request().URL.Path) {
				return next(ctx)
			}

			if _, ok := GetPrincipal(ctx); !ok {
				return response.Error(response.ErrUnauthorized)
			}

			return next(ctx)
		}
	}
}
