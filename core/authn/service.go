package authn

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service implements Authenticator on top of a UserStore. It also handles
// registration, which is the only write path for accounts in this system.
type Service struct {
	users UserStore
}

// NewService creates an authentication service backed by the given store.
func NewService(users UserStore) *Service {
	return &Service{users: users}
}

// Authenticate verifies the identifier/password pair and returns the
// principal snapshot on success. Every failure maps to ErrInvalidCredentials;
// an unknown identifier still pays the bcrypt comparison cost so response
// timing does not leak account existence.
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (Principal, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return Principal{}, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = VerifyPassword(dummyHash, password)
			return Principal{}, ErrInvalidCredentials
		}
		return Principal{}, err
	}

	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return Principal{}, ErrInvalidCredentials
	}

	return user.Principal(), nil
}

// Register creates a new account with the default role and returns its
// principal snapshot.
func (s *Service) Register(ctx context.Context, name, email, password string) (Principal, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return Principal{}, ErrMissingFields
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Principal{}, err
	}

	now := time.Now()
	user := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return Principal{}, err
	}

	return user.Principal(), nil
}
