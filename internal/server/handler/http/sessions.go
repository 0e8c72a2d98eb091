package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/IsaacFdezPintor/studiosnap/internal/middleware"
	"github.com/IsaacFdezPintor/studiosnap/internal/models"
	"github.com/IsaacFdezPintor/studiosnap/internal/service"
)

// SessionService defines the interface for the ownership-scoped record
// operations required by the HTTP handlers. Every method takes the
// authenticated caller's id explicitly.
type SessionService interface {
	List(ctx context.Context, ownerID int64) ([]models.Session, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Session, error)
	Create(ctx context.Context, ownerID int64, in models.SessionInput) (*models.Session, error)
	Replace(ctx context.Context, ownerID, id int64, in models.SessionInput) (*models.Session, error)
	Patch(ctx context.Context, ownerID, id int64, in models.SessionInput) (*models.Session, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// SessionHandler handles HTTP requests for session records.
type SessionHandler struct {
	Sessions SessionService
}

// owner extracts the authenticated caller from the request context.
func owner(r *http.Request) (models.Identity, bool) {
	return middleware.IdentityFromContext(r.Context())
}

// recordID parses the {id} URL parameter. A non-numeric id can never
// match a record, so it is reported as not found rather than as a
// malformed request.
func recordID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// List handles GET /sessions.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := owner(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "token required")
		return
	}

	recs, err := h.Sessions.List(r.Context(), identity.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// Get handles GET /sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := owner(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "token required")
		return
	}
	id, err := recordID(r)
	if err != nil {
		writeMessage(w, http.StatusNotFound, service.ErrNotFound.Error())
		return
	}

	rec, err := h.Sessions.Get(r.Context(), identity.ID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Create handles POST /sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := owner(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "token required")
		return
	}

	var in models.SessionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Sessions.Create(r.Context(), identity.ID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// Replace handles PUT /sessions/{id}.
func (h *SessionHandler) Replace(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.Sessions.Replace)
}

// Patch handles PATCH /sessions/{id}.
func (h *SessionHandler) Patch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.Sessions.Patch)
}

// update is the shared body of Replace and Patch; the two differ only
// in the facade operation they invoke.
func (h *SessionHandler) update(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, ownerID, id int64, in models.SessionInput) (*models.Session, error),
) {
	identity, ok := owner(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "token required")
		return
	}
	id, err := recordID(r)
	if err != nil {
		writeMessage(w, http.StatusNotFound, service.ErrNotFound.Error())
		return
	}

	var in models.SessionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := op(r.Context(), identity.ID, id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Delete handles DELETE /sessions/{id}. Success is an empty 204.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := owner(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "token required")
		return
	}
	id, err := recordID(r)
	if err != nil {
		writeMessage(w, http.StatusNotFound, service.ErrNotFound.Error())
		return
	}

	if err := h.Sessions.Delete(r.Context(), identity.ID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
