package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/gatekit/core/csrf"
	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/response"
)

// CSRFConfig configures the CSRF defense middleware.
type CSRFConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// Manager issues and validates the double-submit tokens. Required.
	Manager *csrf.Manager

	// IgnoredRoutes lists "METHOD /path" entries exempt from validation,
	// matched exactly. The token bootstrap endpoint belongs here: a first-time
	// client cannot present a token it has not received yet.
	IgnoredRoutes []string
}

// CSRF returns a CSRF middleware protecting all state-changing requests.
func CSRF(manager *csrf.Manager) handler.Middleware {
	return CSRFWithConfig(CSRFConfig{Manager: manager})
}

// CSRFWithConfig returns a CSRF middleware with custom configuration.
//
// Every response carries the token cookie, issued on first contact and kept
// stable afterwards. Safe methods (GET, HEAD, OPTIONS, TRACE) pass without
// validation; all others must echo the cookie token in the configured
// header unless the route is in the ignored set.
func CSRFWithConfig(cfg CSRFConfig) handler.Middleware {
	if cfg.Manager == nil {
		panic("middleware: CSRF requires a token manager")
	}

	ignored := make(map[string]bool, len(cfg.IgnoredRoutes))
	for _, route := range cfg.IgnoredRoutes {
		route = strings.Join(strings.Fields(route), " ")
		if route != "" {
			ignored[route] = true
		}
	}

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(ctx handler.Context) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()

			if !safeMethod(req.Method) && !ignored[req.Method+" "+req.URL.Path] {
				if err := cfg.Manager.Validate(req); err != nil {
					if errors.Is(err, csrf.ErrTokenMismatch) {
						return response.Error(response.ErrCSRFTokenMismatch)
					}
					return response.Error(response.ErrCSRFTokenMissing)
				}
			}

			res := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				if _, err := cfg.Manager.Issue(w, r); err != nil {
					return err
				}
				return res(w, r)
			}
		}
	}
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
