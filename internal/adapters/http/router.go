package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/domain"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/core/ports"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/infrastructure/auth"
	"github.com/ViniciusLugli/AutoU-Email-Build/internal/observability/metrics"
)

// AuthTokens mints and validates access tokens for the auth endpoints.
type AuthTokens interface {
	TokenVerifier
	Issue(userID string) (string, error)
}

type Router struct {
	submitUC ports.Submitter
	entries  ports.EntryRepository
	users    ports.UserRepository
	tokens   AuthTokens
	logger   *slog.Logger
	metrics  *metrics.HTTPServerMetrics
	service  string
}

func NewRouter(
	submitUC ports.Submitter,
	entries ports.EntryRepository,
	users ports.UserRepository,
	tokens AuthTokens,
	logger *slog.Logger,
	httpMetrics *metrics.HTTPServerMetrics,
	service string,
) *Router {
	return &Router{
		submitUC: submitUC,
		entries:  entries,
		users:    users,
		tokens:   tokens,
		logger:   logger,
		metrics:  httpMetrics,
		service:  service,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/auth/register", rt.register)
	mux.HandleFunc("/v1/auth/login", rt.login)
	mux.HandleFunc("/v1/users/me", requireOwner(rt.tokens, rt.deleteMe))
	// Submission accepts anonymous callers; reads and deletes do not.
	mux.HandleFunc("/v1/entries", rt.entriesCollection)
	mux.HandleFunc("/v1/entries/", requireOwner(rt.tokens, rt.entryByID))
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	handler := http.Handler(mux)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(rt.logger, handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username, email and password are required"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := rt.users.Create(r.Context(), user); err != nil {
		writeError(w, err)
		return
	}

	token, err := rt.tokens.Issue(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"token": token, "user": user})
}

func (rt *Router) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	// Both an unknown email and a bad password come back as 401 so the
	// endpoint does not reveal which accounts exist.
	user, err := rt.users.GetByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if domain.IsKind(err, domain.ErrUserNotFound) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		writeError(w, err)
		return
	}
	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token, err := rt.tokens.Issue(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

// deleteMe removes the authenticated account. The schema cascades the
// deletion to the user's entries.
func (rt *Router) deleteMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if err := rt.users.DeleteByID(r.Context(), ownerIDFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) entriesCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		withOwner(rt.tokens, rt.submitEntry)(w, r)
	case http.MethodGet:
		requireOwner(rt.tokens, rt.listEntries)(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) submitEntry(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerIDFromContext(r.Context())

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, fileHeader, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
			return
		}
		defer file.Close()

		handle, err := rt.submitUC.SubmitFile(
			r.Context(),
			ownerID,
			fileHeader.Filename,
			fileHeader.Header.Get("Content-Type"),
			fileHeader.Size,
			file,
			parseTopN(r.FormValue("top_n")),
		)
		if err != nil {
			writeError(w, err)
			return
		}
		rt.recordSubmission("file")
		writeJSON(w, http.StatusAccepted, handle)
		return
	}

	var req struct {
		Text string `json:"text"`
		TopN int    `json:"top_n"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	handle, err := rt.submitUC.SubmitText(r.Context(), ownerID, req.Text, req.TopN)
	if err != nil {
		writeError(w, err)
		return
	}
	rt.recordSubmission("text")
	writeJSON(w, http.StatusAccepted, handle)
}

func (rt *Router) listEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := rt.entries.ListByOwner(r.Context(), ownerIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (rt *Router) entryByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/entries/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "entry id is required"})
		return
	}

	entry, err := rt.entries.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	// Foreign entries look exactly like missing ones.
	if entry.OwnerID != ownerIDFromContext(r.Context()) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "entry not found"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, entry)
	case http.MethodDelete:
		if err := rt.entries.DeleteByID(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) recordSubmission(kind string) {
	if rt.metrics != nil {
		rt.metrics.RecordSubmission(rt.service, kind)
	}
}

func parseTopN(raw string) int {
	topN, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || topN < 0 {
		return 0
	}
	return topN
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
