package authn

import "context"

// Authenticator verifies credentials and resolves the identity they belong
// to. Implementations must not reveal whether the identifier exists: any
// failure is ErrInvalidCredentials.
type Authenticator interface {
	Authenticate(ctx context.Context, identifier, password string) (Principal, error)
}
