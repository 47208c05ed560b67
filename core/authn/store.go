package authn

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is the stored account record. PasswordHash never leaves this package:
// callers see Principal snapshots only.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal returns the identity snapshot for the user.
func (u User) Principal() Principal {
	return Principal{
		ID:          u.ID,
		DisplayName: u.Name,
		Email:       u.Email,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// UserStore defines the persistence interface for user accounts.
// Implementations must handle concurrent access safely and match emails
// case-insensitively.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
}
