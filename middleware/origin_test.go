package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/gatekit/middleware"
)

const trustedOrigin = "https://app.example.com"

func TestOriginCheckTrustedOrigin(t *testing.T) {
	t.Parallel()

	mw := middleware.OriginCheck(trustedOrigin)

	req := httptest.NewRequest(http.MethodPost, "/api/notes", nil)
	req.Header.Set("Origin", trustedOrigin)

	w := execute(t, mw, req, okHandler)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOriginCheckForeignOrigin(t *testing.T) {
	t.Parallel()

	mw := middleware.OriginCheck(trustedOrigin)

	req := httptest.NewRequest(http.MethodPost, "/api/notes", nil)
	req.Header.Set("Origin", "https://evil.example.net")

	w := execute(t, mw, req, okHandler)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid origin")
}

func TestOriginCheckRefererPrefix(t *testing.T) {
	t.Parallel()

	mw := middleware.OriginCheck(trustedOrigin)

	t.Run("trusted referer passes", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodDelete, "/api/notes/1", nil)
		req.Header.Set("Referer", trustedOrigin+"/notes")

		w := execute(t, mw, req, okHandler)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("foreign referer rejected", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodDelete, "/api/notes/1", nil)
		req.Header.Set("Referer", "https://evil.example.net/notes")

		w := execute(t, mw, req, okHandler)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("lookalike host rejected", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPut, "/api/notes/1", nil)
		req.Header.Set("Referer", trustedOrigin+".evil.net/")

		w := execute(t, mw, req, okHandler)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestOriginCheckBothHeadersAbsent(t *testing.T) {
	t.Parallel()

	mw := middleware.OriginCheck(trustedOrigin)

	req := httptest.NewRequest(http.MethodPost, "/api/notes", nil)

	w := execute(t, mw, req, okHandler)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOriginCheckBadOriginWinsOverGoodReferer(t *testing.T) {
	t.Parallel()

	mw := middleware.OriginCheck(trustedOrigin)

	req := httptest.NewRequest(http.MethodPost, "/api/notes", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	req.Header.Set("Referer", trustedOrigin+"/page")

	w := execute(t, mw, req, okHandler)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOriginCheckIgnoresSafeMethods(t *testing.T) {
	t.Parallel()

	mw := middleware.OriginCheck(trustedOrigin)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.Header.Set("Origin", "https://evil.example.net")

	w := execute(t, mw, req, okHandler)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOriginCheckCustomMethods(t *testing.T) {
	t.Parallel()

	mw := middleware.OriginCheckWithConfig(middleware.OriginConfig{
		TrustedOrigins: []string{trustedOrigin},
		Methods:        []string{http.MethodPatch},
	})

	req := httptest.NewRequest(http.MethodPatch, "/api/notes/1", nil)
	req.Header.Set("Origin", "https://evil.example.net")

	w := execute(t, mw, req, okHandler)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
