package csrf

import "net/http"

// Config holds CSRF token manager configuration.
type Config struct {
	// CookieName is the token cookie name (default "XSRF-TOKEN").
	CookieName string `env:"CSRF_COOKIE_NAME" envDefault:"XSRF-TOKEN"`

	// HeaderName is the request header that must echo the cookie value on
	// state-changing requests (default "X-XSRF-TOKEN").
	HeaderName string `env:"CSRF_HEADER_NAME" envDefault:"X-XSRF-TOKEN"`

	// CookiePath scopes the token cookie (default "/").
	CookiePath string `env:"CSRF_COOKIE_PATH" envDefault:"/"`

	// CookieSecure restricts the token cookie to HTTPS.
	CookieSecure bool `env:"CSRF_COOKIE_SECURE" envDefault:"false"`

	// CookieSameSite sets the token cookie's SameSite attribute
	// (default Lax).
	CookieSameSite http.SameSite `env:"CSRF_COOKIE_SAME_SITE" envDefault:"2"`

	// RotateOnLogin mints a new token after successful authentication.
	// Off by default: the pre-login token stays valid for the session
	// lifetime, keeping concurrently open tabs working.
	RotateOnLogin bool `env:"CSRF_ROTATE_ON_LOGIN" envDefault:"false"`
}

func (c Config) withDefaults() Config {
	if c.CookieName == "" {
		c.CookieName = "XSRF-TOKEN"
	}
	if c.HeaderName == "" {
		c.HeaderName = "X-XSRF-TOKEN"
	}
	if c.CookiePath == "" {
		c.CookiePath = "/"
	}
	if c.CookieSameSite == 0 {
		c.CookieSameSite = http.SameSiteLaxMode
	}
	return c
}
