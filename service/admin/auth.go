package admin

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Authenticator decides whether a presented secret grants admin access.
type Authenticator interface {
	Authenticate(secret string) bool
}

// PasswordAuthenticator checks against a single configured password.
type PasswordAuthenticator struct {
	hash []byte
}

// NewPasswordAuthenticator hashes password. An empty password yields an
// authenticator that rejects every secret.
func NewPasswordAuthenticator(password string) (*PasswordAuthenticator, error) {
	if password == "" {
		return &PasswordAuthenticator{}, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &PasswordAuthenticator{hash: hash}, nil
}

func (a *PasswordAuthenticator) Authenticate(secret string) bool {
	if len(a.hash) == 0 || secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(a.hash, []byte(secret)) == nil
}
