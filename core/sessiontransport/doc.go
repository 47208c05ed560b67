// Package sessiontransport moves sessions between HTTP requests and the
// session manager using a signed, httpOnly cookie. Login always mints a
// fresh session (and destroys the one the cookie pointed at), so a session
// identifier fixed before authentication never survives it.
package sessiontransport
