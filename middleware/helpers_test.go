package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/response"
)

// testContext is a minimal handler.Context for driving middleware directly.
type testContext struct {
	w http.ResponseWriter
	r *http.Request
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{w: w, r: r}
}

func (c *testContext) Deadline() (time.Time, bool)            { return c.r.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}                  { return c.r.Context().Done() }
func (c *testContext) Err() error                             { return c.r.Context().Err() }
func (c *testContext) Value(key any) any                      { return c.r.Context().Value(key) }
func (c *testContext) Request() *http.Request                 { return c.r }
func (c *testContext) ResponseWriter() http.ResponseWriter    { return c.w }
func (c *testContext) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}

// okHandler is a terminal handler writing 200 "ok".
func okHandler(ctx handler.Context) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("ok"))
		return err
	}
}

// execute drives a middleware chain the way the pipeline does, rendering
// HTTPError values as JSON and everything else as a bare 500.
func execute(t *testing.T, mw handler.Middleware, req *http.Request, next handler.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	ctx := newTestContext(w, req)

	resp := mw(next)(ctx)
	require.NotNil(t, resp)

	if err := resp(w, ctx.Request()); err != nil {
		var httpErr response.HTTPError
		if !errors.As(err, &httpErr) {
			httpErr = response.ErrInternalServerError
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(httpErr.Status)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "error",
			"message": httpErr.Message,
		})
	}

	return w
}
