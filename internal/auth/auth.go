package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	userDatamodel "github.com/frahmantamala/absence-request/internal/core/datamodel/user"
)

// CredentialStore looks accounts up by login email.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
}

type PasswordVerifier interface {
	Verify(hash, password string) bool
}

// BcryptHasher hashes and verifies account passwords.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
