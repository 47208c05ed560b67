package authn

import (
	"time"

	"github.com/google/uuid"
)

// Principal is an immutable snapshot of the authenticated identity, taken at
// session-establishment time. It is not re-fetched per request: a session
// resolves the same snapshot until logout or expiry.
type Principal struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsZero reports whether the principal is the zero value (unauthenticated).
func (p Principal) IsZero() bool {
	return p.ID == uuid.Nil
}

// Roles assignable to users. New registrations default to RoleUser.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
