package authn

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is an in-memory UserStore implementation, keyed by lowercased
// email. Intended for tests and single-process deployments.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryStore creates an empty in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]User)}
}

// FindByEmail returns the user with the given email (case-insensitive).
func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// Create stores a new user; fails if the email is already taken.
func (s *MemoryStore) Create(ctx context.Context, user *User) error {
	key := strings.ToLower(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[key]; exists {
		return ErrEmailTaken
	}
	s.users[key] = *user
	return nil
}
