package sessiontransport

// CookieConfig provides environment-based configuration for cookie-based
// session transport.
type CookieConfig struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"__session"`
}
