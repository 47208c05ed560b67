package csrf_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/core/cookie"
	"github.com/dmitrymomot/gatekit/core/csrf"
)

func newManager(t *testing.T, cfg csrf.Config) *csrf.Manager {
	t.Helper()
	cookieMgr, err := cookie.New([]string{"csrf-test-secret-key-long-enough!!!!"})
	require.NoError(t, err)
	return csrf.NewManager(cookieMgr, cfg)
}

func issueToken(t *testing.T, m *csrf.Manager) (string, *http.Cookie) {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	token, err := m.Issue(w, r)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return token, cookies[0]
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	m := newManager(t, csrf.Config{})
	assert.Equal(t, "XSRF-TOKEN", m.CookieName())
	assert.Equal(t, "X-XSRF-TOKEN", m.HeaderName())
	assert.False(t, m.RotateOnLogin())
}

func TestIssueSetsReadableCookie(t *testing.T) {
	t.Parallel()

	m := newManager(t, csrf.Config{})
	token, c := issueToken(t, m)

	assert.Equal(t, "XSRF-TOKEN", c.Name)
	assert.Equal(t, token, c.Value)
	assert.False(t, c.HttpOnly, "client script must be able to read the token")
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestIssueIsStable(t *testing.T) {
	t.Parallel()

	m := newManager(t, csrf.Config{})
	token, c := issueToken(t, m)

	// A client presenting its token gets it back unchanged and no new cookie.
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(c)

	again, err := m.Issue(w, r)
	require.NoError(t, err)
	assert.Equal(t, token, again)
	assert.Empty(t, w.Result().Cookies())
}

func TestRotateReplacesToken(t *testing.T) {
	t.Parallel()

	m := newManager(t, csrf.Config{})
	token, _ := issueToken(t, m)

	w := httptest.NewRecorder()
	fresh, err := m.Rotate(w)
	require.NoError(t, err)
	assert.NotEqual(t, token, fresh)
	require.Len(t, w.Result().Cookies(), 1)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	m := newManager(t, csrf.Config{})
	token, c := issueToken(t, m)

	t.Run("matching header passes", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.AddCookie(c)
		r.Header.Set("X-XSRF-TOKEN", token)
		assert.NoError(t, m.Validate(r))
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set("X-XSRF-TOKEN", token)
		assert.ErrorIs(t, m.Validate(r), csrf.ErrTokenMissing)
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.AddCookie(c)
		assert.ErrorIs(t, m.Validate(r), csrf.ErrTokenMissing)
	})

	t.Run("mismatched header", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.AddCookie(c)
		r.Header.Set("X-XSRF-TOKEN", "forged-value")
		assert.ErrorIs(t, m.Validate(r), csrf.ErrTokenMismatch)
	})
}

func TestCustomNames(t *testing.T) {
	t.Parallel()

	m := newManager(t, csrf.Config{
		CookieName: "csrf",
		HeaderName: "X-CSRF",
	})
	token, c := issueToken(t, m)
	require.Equal(t, "csrf", c.Name)

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.AddCookie(c)
	r.Header.Set("X-CSRF", token)
	assert.NoError(t, m.Validate(r))
}
