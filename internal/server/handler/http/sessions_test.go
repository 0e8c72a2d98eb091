package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/IsaacFdezPintor/studiosnap/internal/middleware"
	"github.com/IsaacFdezPintor/studiosnap/internal/models"
	"github.com/IsaacFdezPintor/studiosnap/internal/service"
)

// fakeSessionService implements SessionService for testing.
type fakeSessionService struct {
	ListFunc    func(ctx context.Context, ownerID int64) ([]models.Session, error)
	GetFunc     func(ctx context.Context, ownerID, id int64) (*models.Session, error)
	CreateFunc  func(ctx context.Context, ownerID int64, in models.SessionInput) (*models.Session, error)
	ReplaceFunc func(ctx context.Context, ownerID, id int64, in models.SessionInput) (*models.Session, error)
	PatchFunc   func(ctx context.Context, ownerID, id int64, in models.SessionInput) (*models.Session, error)
	DeleteFunc  func(ctx context.Context, ownerID, id int64) error
}

func (f *fakeSessionService) List(ctx context.Context, ownerID int64) ([]models.Session, error) {
	return f.ListFunc(ctx, ownerID)
}

func (f *fakeSessionService) Get(ctx context.Context, ownerID, id int64) (*models.Session, error) {
	return f.GetFunc(ctx, ownerID, id)
}

func (f *fakeSessionService) Create(ctx context.Context, ownerID int64, in models.SessionInput) (*models.Session, error) {
	return f.CreateFunc(ctx, ownerID, in)
}

func (f *fakeSessionService) Replace(ctx context.Context, ownerID, id int64, in models.SessionInput) (*models.Session, error) {
	return f.ReplaceFunc(ctx, ownerID, id, in)
}

func (f *fakeSessionService) Patch(ctx context.Context, ownerID, id int64, in models.SessionInput) (*models.Session, error) {
	return f.PatchFunc(ctx, ownerID, id, in)
}

func (f *fakeSessionService) Delete(ctx context.Context, ownerID, id int64) error {
	return f.DeleteFunc(ctx, ownerID, id)
}

// sessionRouter mounts the handler on the session routes so {id}
// parameters resolve, and injects the given identity on every request.
func sessionRouter(svc SessionService, identity models.Identity) http.Handler {
	h := &SessionHandler{Sessions: svc}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), identity)))
		})
	})
	r.Get("/sessions", h.List)
	r.Post("/sessions", h.Create)
	r.Get("/sessions/{id}", h.Get)
	r.Put("/sessions/{id}", h.Replace)
	r.Patch("/sessions/{id}", h.Patch)
	r.Delete("/sessions/{id}", h.Delete)
	return r
}

var alice = models.Identity{ID: 1, Email: "alice@example.com", Name: "Alice"}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, reader))
	return rec.Result()
}

func TestSessionHandler_List(t *testing.T) {
	svc := &fakeSessionService{
		ListFunc: func(ctx context.Context, ownerID int64) ([]models.Session, error) {
			if ownerID != alice.ID {
				t.Errorf("List received owner %d; want %d", ownerID, alice.ID)
			}
			return []models.Session{{ID: 1, Title: "Boda", UserID: ownerID}}, nil
		},
	}

	res := doRequest(t, sessionRouter(svc, alice), "GET", "/sessions", "")
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var recs []models.Session
	if err := json.NewDecoder(res.Body).Decode(&recs); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if len(recs) != 1 || recs[0].Title != "Boda" {
		t.Errorf("unexpected records: %+v", recs)
	}
}

func TestSessionHandler_Get(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		getErr       error
		expectedCode int
	}{
		{"found", "/sessions/5", nil, http.StatusOK},
		{"not found", "/sessions/5", service.ErrNotFound, http.StatusNotFound},
		{"non-numeric id", "/sessions/abc", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeSessionService{
				GetFunc: func(ctx context.Context, ownerID, id int64) (*models.Session, error) {
					if tt.getErr != nil {
						return nil, tt.getErr
					}
					return &models.Session{ID: id, Title: "Boda", UserID: ownerID}, nil
				},
			}

			res := doRequest(t, sessionRouter(svc, alice), "GET", tt.target, "")
			defer res.Body.Close()
			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}
		})
	}
}

func TestSessionHandler_Create(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		createErr    error
		expectedCode int
	}{
		{"success", `{"title":"Boda","client":"Jane"}`, nil, http.StatusCreated},
		{"invalid JSON", `{`, nil, http.StatusBadRequest},
		{"missing title", `{"client":"Jane"}`, &service.ValidationError{Message: "title is required"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeSessionService{
				CreateFunc: func(ctx context.Context, ownerID int64, in models.SessionInput) (*models.Session, error) {
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return &models.Session{ID: 1, Title: "Boda", Client: "Jane", UserID: ownerID}, nil
				},
			}

			res := doRequest(t, sessionRouter(svc, alice), "POST", "/sessions", tt.body)
			defer res.Body.Close()
			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}
		})
	}
}

func TestSessionHandler_Replace(t *testing.T) {
	svc := &fakeSessionService{
		ReplaceFunc: func(ctx context.Context, ownerID, id int64, in models.SessionInput) (*models.Session, error) {
			if in.Title == nil || *in.Title != "New" {
				t.Errorf("Replace received title %v; want New", in.Title)
			}
			return &models.Session{ID: id, Title: "New", UserID: ownerID}, nil
		},
	}

	res := doRequest(t, sessionRouter(svc, alice), "PUT", "/sessions/3", `{"title":"New"}`)
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}

func TestSessionHandler_Patch_NotFound(t *testing.T) {
	svc := &fakeSessionService{
		PatchFunc: func(ctx context.Context, ownerID, id int64, in models.SessionInput) (*models.Session, error) {
			return nil, service.ErrNotFound
		},
	}

	res := doRequest(t, sessionRouter(svc, alice), "PATCH", "/sessions/3", `{"notes":"x"}`)
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestSessionHandler_Delete(t *testing.T) {
	tests := []struct {
		name         string
		deleteErr    error
		expectedCode int
	}{
		{"success", nil, http.StatusNoContent},
		{"not owned", service.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeSessionService{
				DeleteFunc: func(ctx context.Context, ownerID, id int64) error {
					return tt.deleteErr
				},
			}

			res := doRequest(t, sessionRouter(svc, alice), "DELETE", "/sessions/3", "")
			defer res.Body.Close()
			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}
			if tt.expectedCode == http.StatusNoContent {
				body, _ := io.ReadAll(res.Body)
				if len(body) != 0 {
					t.Errorf("expected empty body on 204, got %q", body)
				}
			}
		})
	}
}
