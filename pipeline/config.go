package pipeline

// Config holds the defense pipeline's route and origin policy with
// environment variable support.
//
// The default public routes mirror a single-page application layout: the
// shell and its assets, the token bootstrap endpoint, and the two
// authentication endpoints a logged-out user must be able to reach.
type Config struct {
	// TrustedOrigins lists origins allowed by both the CORS evaluator and
	// the origin verifier.
	TrustedOrigins []string `env:"TRUSTED_ORIGINS" envDefault:"http://localhost:8080"`

	// PublicRoutes lists path patterns reachable without authentication.
	// Everything else is protected; unknown paths fail closed.
	PublicRoutes []string `env:"PUBLIC_ROUTES" envDefault:"/,/index.html,/static/**,/*.js,/*.css,/*.ico,/api/csrf,/api/auth/login,/api/auth/register"`

	// CSRFIgnoredRoutes lists "METHOD /path" entries exempt from CSRF
	// validation.
	CSRFIgnoredRoutes []string `env:"CSRF_IGNORED_ROUTES" envDefault:"POST /api/csrf"`

	// LoginPath is the JSON login endpoint.
	LoginPath string `env:"LOGIN_PATH" envDefault:"/api/auth/login"`

	// LogoutPath is the logout endpoint.
	LogoutPath string `env:"LOGOUT_PATH" envDefault:"/api/auth/logout"`

	// CORSMaxAge caches preflight responses for this many seconds.
	CORSMaxAge int `env:"CORS_MAX_AGE" envDefault:"3600"`
}
