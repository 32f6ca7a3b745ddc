package auth

import (
	"testing"
	"time"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/domain"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("hash must not equal plaintext")
	}
	if err := VerifyPassword(hash, "s3cret"); err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
}

func TestVerifyPasswordMismatchIsUnauthorized(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	err = VerifyPassword(hash, "wrong")
	if !domain.IsKind(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTokenIssueAndVerifyRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)

	token, err := issuer.Issue("u1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	userID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != "u1" {
		t.Fatalf("expected subject u1, got %q", userID)
	}
}

func TestTokenVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)
	other := NewTokenIssuer("other-secret", time.Minute)

	token, err := issuer.Issue("u1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	_, err = other.Verify(token)
	if !domain.IsKind(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTokenVerifyRejectsExpired(t *testing.T) {
	issuer := &TokenIssuer{secret: []byte("test-secret"), ttl: -time.Minute}

	token, err := issuer.Issue("u1")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	_, err = issuer.Verify(token)
	if !domain.IsKind(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTokenVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)
	_, err := issuer.Verify("not-a-token")
	if !domain.IsKind(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
