package authn

import "golang.org/x/crypto/bcrypt"

const minPasswordLength = 8

// dummyHash is a valid bcrypt hash of a random throwaway value. It is
// compared against when the identifier is unknown so that lookups for
// existing and non-existing users take comparable time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMye1J9mZ8eQOQVvXz8L3bVS7lXyS1pZKxa"

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

// VerifyPassword compares a plaintext password with the stored hash.
func VerifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
