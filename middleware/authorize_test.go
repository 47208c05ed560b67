package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/middleware"
)

func authorizeChain(t *testing.T, publicRoutes ...string) (handler.Middleware, *sessionStack) {
	t.Helper()

	stack := newSessionStack(t)
	session := middleware.Session(stack.transport)
	authorize := middleware.Authorize(publicRoutes...)

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return session(authorize(next))
	}, stack
}

func TestAuthorizePublicRoute(t *testing.T) {
	t.Parallel()

	mw, _ := authorizeChain(t, "/api/auth/*", "/static/**", "/*.js")

	for _, path := range []string{"/api/auth/login", "/static/css/site.css", "/app.js"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := execute(t, mw, req, okHandler)
		assert.Equal(t, http.StatusOK, w.Code, "path %s should be public", path)
	}
}

func TestAuthorizeProtectedRouteUnauthenticated(t *testing.T) {
	t.Parallel()

	mw, _ := authorizeChain(t, "/api/auth/*")

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	w := execute(t, mw, req, okHandler)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorizeProtectedRouteAuthenticated(t *testing.T) {
	t.Parallel()

	mw, stack := authorizeChain(t, "/api/auth/*")
	c, _ := stack.loginCookie(t)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(c)

	w := execute(t, mw, req, okHandler)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorizeFailsClosed(t *testing.T) {
	t.Parallel()

	// No patterns at all: everything is protected.
	mw, _ := authorizeChain(t)

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	w := execute(t, mw, req, okHandler)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorizeUnknownPathIsProtected(t *testing.T) {
	t.Parallel()

	mw, _ := authorizeChain(t, "/", "/index.html", "/api/auth/*")

	req := httptest.NewRequest(http.MethodGet, "/api/internal/debug", nil)
	w := execute(t, mw, req, okHandler)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
