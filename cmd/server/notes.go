package main

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/gatekit/middleware"
	"github.com/dmitrymomot/gatekit/pipeline"
)

// note is a per-user demo resource exercising the protected, state-changing
// side of the API.
type note struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"-"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type noteStore struct {
	mu    sync.RWMutex
	notes map[uuid.UUID]note
}

func newNoteStore() *noteStore {
	return &noteStore{notes: make(map[uuid.UUID]note)}
}

func (s *noteStore) listByOwner(owner uuid.UUID) []note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]note, 0)
	for _, n := range s.notes {
		if n.OwnerID == owner {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (s *noteStore) get(id uuid.UUID) (note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notes[id]
	return n, ok
}

func (s *noteStore) put(n note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[n.ID] = n
}

func (s *noteStore) delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notes, id)
}

type noteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (a *api) handleListNotes(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(pipeline.NewContext(w, r))
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, a.notes.listByOwner(principal.ID))
}

func (a *api) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(pipeline.NewContext(w, r))
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	now := time.Now()
	n := note{
		ID:        uuid.New(),
		OwnerID:   principal.ID,
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	a.notes.put(n)

	writeJSON(w, http.StatusCreated, n)
}

func (a *api) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(pipeline.NewContext(w, r))
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid note id")
		return
	}

	n, found := a.notes.get(id)
	if !found || n.OwnerID != principal.ID {
		writeError(w, http.StatusNotFound, "Note not found")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	n.Title = req.Title
	n.Body = req.Body
	n.UpdatedAt = time.Now()
	a.notes.put(n)

	writeJSON(w, http.StatusOK, n)
}

func (a *api) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(pipeline.NewContext(w, r))
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid note id")
		return
	}

	n, found := a.notes.get(id)
	if !found || n.OwnerID != principal.ID {
		writeError(w, http.StatusNotFound, "Note not found")
		return
	}

	a.notes.delete(id)
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
