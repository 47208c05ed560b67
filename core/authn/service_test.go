package authn_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gatekit/core/authn"
)

func newServiceWithUser(t *testing.T) (*authn.Service, authn.Principal) {
	t.Helper()

	svc := authn.NewService(authn.NewMemoryStore())
	principal, err := svc.Register(context.Background(), "Alice", "alice@example.com", "correct-horse")
	require.NoError(t, err)
	return svc, principal
}

func TestRegister(t *testing.T) {
	t.Parallel()

	svc := authn.NewService(authn.NewMemoryStore())
	ctx := context.Background()

	principal, err := svc.Register(ctx, "Alice", "alice@example.com", "correct-horse")
	require.NoError(t, err)

	assert.Equal(t, "Alice", principal.DisplayName)
	assert.Equal(t, "alice@example.com", principal.Email)
	assert.Equal(t, authn.RoleUser, principal.Role)
	assert.False(t, principal.IsZero())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newServiceWithUser(t)

	_, err := svc.Register(context.Background(), "Other", "alice@example.com", "another-pass")
	assert.ErrorIs(t, err, authn.ErrEmailTaken)
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	t.Parallel()

	svc, _ := newServiceWithUser(t)

	_, err := svc.Register(context.Background(), "Other", "ALICE@example.com", "another-pass")
	assert.ErrorIs(t, err, authn.ErrEmailTaken)
}

func TestRegisterShortPassword(t *testing.T) {
	t.Parallel()

	svc := authn.NewService(authn.NewMemoryStore())

	_, err := svc.Register(context.Background(), "Bob", "bob@example.com", "short")
	assert.ErrorIs(t, err, authn.ErrPasswordTooShort)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	svc, registered := newServiceWithUser(t)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		principal, err := svc.Authenticate(ctx, "alice@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, principal.ID)
	})

	t.Run("identifier is trimmed and case-insensitive", func(t *testing.T) {
		t.Parallel()

		principal, err := svc.Authenticate(ctx, "  Alice@Example.com ", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, principal.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		_, err := svc.Authenticate(ctx, "alice@example.com", "wrong-password")
		assert.ErrorIs(t, err, authn.ErrInvalidCredentials)
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		t.Parallel()

		_, err := svc.Authenticate(ctx, "nobody@example.com", "whatever-pass")
		assert.ErrorIs(t, err, authn.ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		t.Parallel()

		_, err := svc.Authenticate(ctx, "", "")
		assert.ErrorIs(t, err, authn.ErrInvalidCredentials)
	})
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := authn.HashPassword("some-password")
	require.NoError(t, err)
	assert.NotEqual(t, "some-password", hash)

	assert.NoError(t, authn.VerifyPassword(hash, "some-password"))
	assert.Error(t, authn.VerifyPassword(hash, "other-password"))
}
