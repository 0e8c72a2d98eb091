// Package http provides the HTTP handlers and routing of the
// StudioSnap API.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/IsaacFdezPintor/studiosnap/internal/middleware"
	"github.com/IsaacFdezPintor/studiosnap/internal/models"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new account and returns its sanitized view.
	Register(ctx context.Context, email, password, name string) (*models.PublicUser, error)
	// Login verifies credentials and returns a signed token plus the
	// sanitized user.
	Login(ctx context.Context, email, password string) (string, *models.PublicUser, error)
}

// AuthHandler handles HTTP requests for registration, login and the
// current-identity view.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the JSON payload for registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Login handles POST /auth/login. Both fields are required; bad
// credentials yield 401 with no hint whether the email exists.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, user, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

// Register handles POST /auth/register. All three fields are required.
// On success it returns the sanitized user with 201; the caller logs
// in separately to obtain a token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeMessage(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Me handles GET /auth/me. It re-exposes the identity decoded from the
// bearer token; no store lookup happens, so the view reflects the user
// at token-issue time.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "token required")
		return
	}

	writeJSON(w, http.StatusOK, models.PublicUser{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  identity.Name,
	})
}
