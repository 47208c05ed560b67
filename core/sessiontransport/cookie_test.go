package sessiontransport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/core/authn"
	"github.com/dmitrymomot/gatekit/core/cookie"
	"github.com/dmitrymomot/gatekit/core/session"
	"github.com/dmitrymomot/gatekit/core/sessiontransport"
)

const cookieName = "__session"

type testContext struct {
	w http.ResponseWriter
	r *http.Request
}

func (c *testContext) Deadline() (time.Time, bool)         { return c.r.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}               { return c.r.Context().Done() }
func (c *testContext) Err() error                          { return c.r.Context().Err() }
func (c *testContext) Value(key any) any                   { return c.r.Context().Value(key) }
func (c *testContext) Request() *http.Request              { return c.r }
func (c *testContext) ResponseWriter() http.ResponseWriter { return c.w }
func (c *testContext) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}

type fixture struct {
	manager   *session.Manager
	transport *sessiontransport.Cookie
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cookieMgr, err := cookie.New([]string{"transport-test-secret-key-long-enough"})
	require.NoError(t, err)

	manager := session.NewManager(session.NewMemoryStore(), session.WithTTL(time.Hour))
	return &fixture{
		manager:   manager,
		transport: sessiontransport.NewCookie(manager, cookieMgr, cookieName),
	}
}

func principal() authn.Principal {
	return authn.Principal{ID: uuid.New(), DisplayName: "Alice", Email: "alice@example.com"}
}

func TestLoginSetsSignedCookie(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	w := httptest.NewRecorder()
	ctx := &testContext{w: w, r: httptest.NewRequest(http.MethodPost, "/login", nil)}

	sess, err := f.transport.Login(ctx, principal())
	require.NoError(t, err)
	assert.True(t, sess.IsAuthenticated())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotEqual(t, sess.Token, cookies[0].Value, "cookie carries the signed token, not the raw one")
	assert.Positive(t, cookies[0].MaxAge)
}

func TestLoadRoundTrip(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	w := httptest.NewRecorder()
	loginCtx := &testContext{w: w, r: httptest.NewRequest(http.MethodPost, "/login", nil)}
	created, err := f.transport.Login(loginCtx, principal())
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(w.Result().Cookies()[0])
	loaded, err := f.transport.Load(&testContext{w: httptest.NewRecorder(), r: r})
	require.NoError(t, err)

	assert.Equal(t, created.ID, loaded.ID)
	assert.Equal(t, "alice@example.com", loaded.Principal.Email)
}

func TestLoadDegradesToAnonymous(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	t.Run("no cookie", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		sess, err := f.transport.Load(&testContext{w: httptest.NewRecorder(), r: r})
		require.NoError(t, err)
		assert.False(t, sess.IsAuthenticated())
	})

	t.Run("tampered cookie", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: cookieName, Value: "tampered"})
		sess, err := f.transport.Load(&testContext{w: httptest.NewRecorder(), r: r})
		require.NoError(t, err)
		assert.False(t, sess.IsAuthenticated())
	})
}

func TestLoginDestroysPreviousSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	w1 := httptest.NewRecorder()
	first, err := f.transport.Login(&testContext{w: w1, r: httptest.NewRequest(http.MethodPost, "/login", nil)}, principal())
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	r.AddCookie(w1.Result().Cookies()[0])
	second, err := f.transport.Login(&testContext{w: httptest.NewRecorder(), r: r}, principal())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.Token, second.Token)

	_, err = f.manager.GetByToken(context.Background(), first.Token)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestLogout(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	w1 := httptest.NewRecorder()
	created, err := f.transport.Login(&testContext{w: w1, r: httptest.NewRequest(http.MethodPost, "/login", nil)}, principal())
	require.NoError(t, err)

	w2 := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	r.AddCookie(w1.Result().Cookies()[0])
	require.NoError(t, f.transport.Logout(&testContext{w: w2, r: r}))

	_, err = f.manager.GetByToken(context.Background(), created.Token)
	assert.ErrorIs(t, err, session.ErrNotFound)

	cookies := w2.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestStoreSkipsAnonymous(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	w := httptest.NewRecorder()
	ctx := &testContext{w: w, r: httptest.NewRequest(http.MethodGet, "/", nil)}
	require.NoError(t, f.transport.Store(ctx, session.Session{}))
	assert.Empty(t, w.Result().Cookies())
}
