package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/middleware"
)

func TestRequestIDGenerated(t *testing.T) {
	t.Parallel()

	var inContext string
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	w := execute(t, middleware.RequestID(), req, func(ctx handler.Context) handler.Response {
		inContext, _ = middleware.GetRequestID(ctx)
		return okHandler(ctx)
	})

	require.NotEmpty(t, inContext)
	_, err := uuid.Parse(inContext)
	assert.NoError(t, err)
	assert.Equal(t, inContext, w.Header().Get("X-Request-ID"))
}

func TestRequestIDUseExisting(t *testing.T) {
	t.Parallel()

	mw := middleware.RequestIDWithConfig(middleware.RequestIDConfig{UseExisting: true})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")

	w := execute(t, mw, req, okHandler)
	assert.Equal(t, "upstream-id", w.Header().Get("X-Request-ID"))
}

func TestRequestIDIgnoresIncomingByDefault(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "spoofed")

	w := execute(t, middleware.RequestID(), req, okHandler)
	assert.NotEqual(t, "spoofed", w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
