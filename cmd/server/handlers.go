package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/gatekit/core/authn"
	"github.com/dmitrymomot/gatekit/core/csrf"
	"github.com/dmitrymomot/gatekit/core/sessiontransport"
	"github.com/dmitrymomot/gatekit/middleware"
	"github.com/dmitrymomot/gatekit/pipeline"
)

// api holds the application handlers served behind the defense pipeline.
type api struct {
	auth     *authn.Service
	sessions *sessiontransport.Cookie
	csrf     *csrf.Manager
	notes    *noteStore
}

func newAPI(auth *authn.Service, sessions *sessiontransport.Cookie, csrfMgr *csrf.Manager) *api {
	return &api{
		auth:     auth,
		sessions: sessions,
		csrf:     csrfMgr,
		notes:    newNoteStore(),
	}
}

func (a *api) routes() http.Handler {
	mux := http.NewServeMux()

	// Token bootstrap: the response matters only for its Set-Cookie header,
	// written by the CSRF stage. POST is exempted from validation upstream so
	// clients without a token yet can still bootstrap.
	mux.HandleFunc("GET /api/csrf", a.handleCSRFToken)
	mux.HandleFunc("POST /api/csrf", a.handleCSRFToken)

	mux.HandleFunc("POST /api/auth/register", a.handleRegister)
	mux.HandleFunc("GET /api/user", a.handleCurrentUser)

	mux.HandleFunc("GET /api/notes", a.handleListNotes)
	mux.HandleFunc("POST /api/notes", a.handleCreateNote)
	mux.HandleFunc("PUT /api/notes/{id}", a.handleUpdateNote)
	mux.HandleFunc("DELETE /api/notes/{id}", a.handleDeleteNote)

	return mux
}

func (a *api) handleCSRFToken(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *api) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	principal, err := a.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, authn.ErrEmailTaken):
		writeError(w, http.StatusConflict, "Email already registered")
		return
	case errors.Is(err, authn.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, "Password too short")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, principal)
}

func (a *api) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(pipeline.NewContext(w, r))
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, principal)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}
