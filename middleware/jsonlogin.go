package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrymomot/gatekit/core/authn"
	"github.com/dmitrymomot/gatekit/core/csrf"
	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/response"
	"github.com/dmitrymomot/gatekit/core/session"
)

// defaultMaxLoginBodySize bounds the credentials payload. Login bodies are
// tiny; anything larger is abuse.
const defaultMaxLoginBodySize = 1 << 20 // 1MB

// LoginTransport establishes an authenticated session for a principal.
// Implemented by sessiontransport.Cookie.
type LoginTransport interface {
	Login(ctx handler.Context, principal authn.Principal) (session.Session, error)
}

// JSONLoginConfig configures the JSON login middleware.
type JSONLoginConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// Authenticator verifies submitted credentials. Required.
	Authenticator authn.Authenticator

	// Transport establishes the session on success. Required.
	Transport LoginTransport

	// Path is the login endpoint (default "/api/auth/login").
	Path string

	// CSRF optionally rotates the anti-forgery token after login when its
	// manager is configured to do so.
	CSRF *csrf.Manager

	// MaxBodySize bounds the request body in bytes (default 1MB).
	MaxBodySize int64
}

// loginRequest accepts credentials keyed by either email or username; the
// two fields are interchangeable identifiers.
type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// JSONLogin returns a middleware that terminates POST requests to the login
// path, authenticating the submitted JSON credentials.
func JSONLogin(auth authn.Authenticator, transport LoginTransport) handler.Middleware {
	return JSONLoginWithConfig(JSONLoginConfig{
		Authenticator: auth,
		Transport:     transport,
	})
}

// JSONLoginWithConfig returns a JSON login middleware with custom
// configuration.
//
// The stage is terminal for its route: matching requests never reach later
// stages. Success yields 200 with the submitted identifier; any failure,
// malformed body included, yields the same 401 payload so responses do not
// reveal whether the account exists. A successful login always mints a
// fresh session so a pre-login session id never survives authentication.
func JSONLoginWithConfig(cfg JSONLoginConfig) handler.Middleware {
	if cfg.Authenticator == nil || cfg.Transport == nil {
		panic("middleware: JSONLogin requires an authenticator and a transport")
	}

	if cfg.Path == "" {
		cfg.Path = "/api/auth/login"
	}

	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = defaultMaxLoginBodySize
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

			body, err := io.ReadAll(io.LimitReader(req.Body, cfg.MaxBodySize))
			if err != nil {
				return loginFailure()
			}

			var creds loginRequest
			if err := json.Unmarshal(body, &creds); err != nil {
				return loginFailure()
			}

			identifier := strings.TrimSpace(creds.Email)
			if identifier == "" {
				identifier = strings.TrimSpace(creds.Username)
			}
			if identifier == "" || creds.Password == "" {
				return loginFailure()
			}

			principal, err := cfg.Authenticator.Authenticate(ctx, identifier, creds.Password)
			if err != nil {
				return loginFailure()
			}

			sess, err := cfg.Transport.Login(ctx, principal)
			if err != nil {
				return response.Error(response.ErrInternalServerError)
			}
			SetSession(ctx, sess)

			if cfg.CSRF != nil && cfg.CSRF.RotateOnLogin() {
				if _, err := cfg.CSRF.Rotate(ctx.ResponseWriter()); err != nil {
					return response.Error(response.ErrInternalServerError)
				}
			}

			return response.JSON(map[string]string{
				"status": "success",
				"user":   identifier,
			})
		}
	}
}

// loginFailure is the single response for every failed login attempt.
func loginFailure() handler.Response {
	return response.JSONWithStatus(map[string]string{
		"status":  "error",
		"message": "Invalid credentials",
	}, http.StatusUnauthorized)
}
