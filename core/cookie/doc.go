// Package cookie provides HTTP cookie management with HMAC-SHA256 signing
// and key rotation support.
//
// The Manager distinguishes two kinds of cookies this system needs: signed
// cookies for values the client must not be able to forge (session tokens),
// and plain cookies for values client-side script must read back (the CSRF
// double-submit token, which is only useful if JavaScript can echo it into a
// request header).
//
//	manager, err := cookie.New([]string{secret})
//	manager.SetSigned(w, "__session", token, cookie.WithMaxAge(86400))
//	manager.Set(w, "XSRF-TOKEN", csrfToken, cookie.WithHTTPOnly(false))
package cookie
