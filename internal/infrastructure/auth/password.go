package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/domain"
)

// HashPassword derives a bcrypt hash suitable for storage.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "hash password", fmt.Errorf("empty password"))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt generate: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports a credential mismatch as ErrUnauthorized so
// callers never leak whether the account exists.
func VerifyPassword(hash, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return domain.WrapError(domain.ErrUnauthorized, "verify password", err)
	}
	return nil
}
