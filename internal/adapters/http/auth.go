package httpadapter

import (
	"context"
	"net/http"
	"strings"
)

type ownerIDContextKey struct{}

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

func ownerIDFromContext(ctx context.Context) string {
	ownerID, _ := ctx.Value(ownerIDContextKey{}).(string)
	return ownerID
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// withOwner attaches the authenticated user id when a valid token is
// present. Invalid tokens are rejected; a missing token passes through
// anonymously.
func withOwner(verifier TokenVerifier, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next(w, r)
			return
		}
		ownerID, err := verifier.Verify(token)
		if err != nil {
			writeError(w, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ownerIDContextKey{}, ownerID)))
	}
}

// requireOwner is withOwner with anonymous access rejected.
func requireOwner(verifier TokenVerifier, next http.HandlerFunc) http.HandlerFunc {
	return withOwner(verifier, func(w http.ResponseWriter, r *http.Request) {
		if ownerIDFromContext(r.Context()) == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authorization required"})
			return
		}
		next(w, r)
	})
}
