package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/response"
)

// OriginConfig configures the origin verification middleware.
type OriginConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// TrustedOrigins lists origins permitted to send state-changing requests,
	// e.g. "https://app.example.com". Required.
	TrustedOrigins []string

	// Methods lists the HTTP methods subject to verification.
	// If empty, defaults to POST, PUT and DELETE.
	Methods []string
}

// OriginCheck returns a middleware verifying that state-changing requests
// come from a trusted origin.
//
// An Origin header, when present, must exactly equal one of the trusted
// origins. A Referer header, when present, must be prefixed by one. A
// request carrying neither header passes: some legitimate clients and
// privacy proxies strip both, and rejecting them would break non-browser
// callers that CSRF does not threaten. Cross-site browser requests always
// carry at least one of the two.
func OriginCheck(trusted ...string) handler.Middleware {
	return OriginCheckWithConfig(OriginConfig{TrustedOrigins: trusted})
}

// OriginCheckWithConfig returns an origin verification middleware with
// custom configuration.
func OriginCheckWithConfig(cfg OriginConfig) handler.Middleware {
	if len(cfg.Methods) == 0 {
		cfg.Methods = []string{http.MethodPost, http.MethodPut, http.MethodDelete}
	}

	trusted := make([]string, 0, len(cfg.TrustedOrigins))
	for _, o := range cfg.TrustedOrigins {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o != "" {
			trusted = append(trusted, o)
		}
	}

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(ctx handler.Context) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			if !slices.Contains(cfg.Methods, req.Method) {
				return next(ctx)
			}

			if origin := req.Header.Get("Origin"); origin != "" {
				if !slices.Contains(trusted, strings.TrimSuffix(origin, "/")) {
					return response.Error(response.ErrOriginMismatch)
				}
			}

			if referer := req.Header.Get("Referer"); referer != "" {
				if !refererTrusted(referer, trusted) {
					return response.Error(response.ErrOriginMismatch)
				}
			}

			return next(ctx)
		}
	}
}

// refererTrusted reports whether the referer URL belongs to a trusted
// origin. Matching requires a path boundary after the origin so that
// "https://app.example.com.evil.com" does not pass for
// "https://app.example.com".
func refererTrusted(referer string, trusted []string) bool {
	for _, origin := range trusted {
		if referer == origin || strings.HasPrefix(referer, origin+"/") {
			return true
		}
	}
	return false
}
