package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/session"
	"github.com/dmitrymomot/gatekit/middleware"
)

func TestLogoutDestroysSession(t *testing.T) {
	t.Parallel()

	stack := newSessionStack(t)
	c, created := stack.loginCookie(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(c)

	w := execute(t, middleware.Logout(stack.transport), req, okHandler)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"success"`)

	// Session is gone and the cookie is cleared.
	_, err := stack.manager.GetByToken(t.Context(), created.Token)
	assert.ErrorIs(t, err, session.ErrNotFound)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestLogoutIsIdempotent(t *testing.T) {
	t.Parallel()

	stack := newSessionStack(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	w := execute(t, middleware.Logout(stack.transport), req, okHandler)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"success"`)
}

func TestLogoutIsTerminal(t *testing.T) {
	t.Parallel()

	stack := newSessionStack(t)

	reached := false
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	execute(t, middleware.Logout(stack.transport), req, func(ctx handler.Context) handler.Response {
		reached = true
		return okHandler(ctx)
	})

	assert.False(t, reached)
}

func TestLogoutIgnoresOtherRoutes(t *testing.T) {
	t.Parallel()

	stack := newSessionStack(t)

	t.Run("GET on logout path", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/auth/logout", nil)
		w := execute(t, middleware.Logout(stack.transport), req, okHandler)
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("other path", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/api/notes", nil)
		w := execute(t, middleware.Logout(stack.transport), req, okHandler)
		assert.Equal(t, "ok", w.Body.String())
	})
}

func TestLogoutResetsContextSession(t *testing.T) {
	t.Parallel()

	stack := newSessionStack(t)
	c, _ := stack.loginCookie(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(c)

	w := httptest.NewRecorder()
	ctx := newTestContext(w, req)

	chain := middleware.Session(stack.transport)(middleware.Logout(stack.transport)(okHandler))
	resp := chain(ctx)
	require.NoError(t, resp(w, ctx.Request()))

	sess, ok := middleware.GetSession(ctx)
	require.True(t, ok)
	assert.False(t, sess.IsAuthenticated(), "logout must clear the context session")
}
