// Package rest serves the bloglist JSON API.
package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	apperrors "github.com/reettakoskinen/fullstack-part5/internal/platform/errors"
	"github.com/reettakoskinen/fullstack-part5/internal/services/bloglist/domain"
)

// Route prefixes for the JSON API.
const (
	blogsPath        = "/api/blogs"
	blogsPrefix      = "/api/blogs/"
	usersPath        = "/api/users"
	loginPath        = "/api/login"
	testingResetPath = "/api/testing/reset"
)

// Handler routes bloglist API requests.
type Handler struct {
	gate  *domain.Gate
	blogs *domain.BlogService
	creds *domain.CredentialService
	reset domain.ResetStore
}

// NewHandler builds the API handler. The reset store is optional; when
// nil the test-support route is not registered.
func NewHandler(gate *domain.Gate, blogs *domain.BlogService, creds *domain.CredentialService, reset domain.ResetStore) *Handler {
	return &Handler{
		gate:  gate,
		blogs: blogs,
		creds: creds,
		reset: reset,
	}
}

// RegisterRoutes wires API routes into the provided mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	if mux == nil || h == nil {
		return
	}
	mux.HandleFunc(blogsPath, h.handleBlogs)
	mux.HandleFunc(blogsPrefix, h.handleBlogByID)
	mux.HandleFunc(usersPath, h.handleUsers)
	mux.HandleFunc(loginPath, h.handleLogin)
	if h.reset != nil {
		mux.HandleFunc(testingResetPath, h.handleReset)
	}
}

// Routes returns a mux with all API routes registered.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

// bearerToken extracts the bearer credential from the Authorization
// header. An absent or non-bearer header yields an empty token.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) >= 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeDomainError maps a service failure to a JSON error response.
// Domain errors carry user-safe messages; anything else is logged and
// reported as a generic internal fault so operators can tell client
// mistakes from system faults.
func writeDomainError(w http.ResponseWriter, context string, err error) {
	var domainErr *apperrors.Error
	if errors.As(err, &domainErr) && domainErr.Code.HTTPStatus() < http.StatusInternalServerError {
		writeJSONError(w, domainErr.Code.HTTPStatus(), domainErr.Message)
		return
	}
	log.Printf("bloglist api: %s: %v", context, err)
	writeJSONError(w, http.StatusInternalServerError, "internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
