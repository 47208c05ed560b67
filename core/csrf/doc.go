// Package csrf issues and validates anti-forgery tokens using the
// double-submit-cookie pattern: the token travels in a script-readable
// cookie and must be echoed in a request header on state-changing requests.
package csrf
