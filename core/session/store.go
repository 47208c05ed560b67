package session

import "context"

// Store defines the persistence interface for session management.
// Implementations must handle concurrent access safely: reads for the same
// token return a consistent snapshot of the bound principal.
type Store interface {
	GetByToken(ctx context.Context, token string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, token string) error
	// DeleteExpired removes all expired sessions and returns the count of
	// deleted sessions.
	DeleteExpired(ctx context.Context) (int64, error)
}
