package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/IsaacFdezPintor/studiosnap/internal/models"
)

// dummyHandler records whether it was called and the context it received.
type dummyHandler struct {
	called bool
	ctx    context.Context
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	d.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

// fakeVerifier implements TokenVerifier for testing.
type fakeVerifier struct {
	identity *models.Identity
	err      error
	gotToken string
}

func (f *fakeVerifier) Verify(tokenString string) (*models.Identity, error) {
	f.gotToken = tokenString
	return f.identity, f.err
}

func TestBearerAuth_MissingHeader(t *testing.T) {
	dummy := &dummyHandler{}
	h := BearerAuth(&fakeVerifier{})(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/sessions", nil)
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler to be called without a header")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", rec.Code)
	}
}

func TestBearerAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Token abc", "bearer abc", "Bearer"} {
		dummy := &dummyHandler{}
		h := BearerAuth(&fakeVerifier{})(dummy)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/sessions", nil)
		req.Header.Set("Authorization", header)
		h.ServeHTTP(rec, req)

		if dummy.called {
			t.Errorf("header %q: did not expect next handler to be called", header)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestBearerAuth_InvalidToken(t *testing.T) {
	dummy := &dummyHandler{}
	verifier := &fakeVerifier{err: errors.New("invalid token")}
	h := BearerAuth(verifier)(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/sessions", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler to be called for an invalid token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", rec.Code)
	}
	if verifier.gotToken != "bad-token" {
		t.Errorf("expected verifier to receive %q, got %q", "bad-token", verifier.gotToken)
	}
}

func TestBearerAuth_ValidToken(t *testing.T) {
	identity := models.Identity{ID: 7, Email: "ana@example.com", Name: "Ana"}
	dummy := &dummyHandler{}
	h := BearerAuth(&fakeVerifier{identity: &identity})(dummy)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/sessions", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	h.ServeHTTP(rec, req)

	if !dummy.called {
		t.Fatal("expected next handler to be called for a valid token")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 OK, got %d", rec.Code)
	}

	got, ok := IdentityFromContext(dummy.ctx)
	if !ok {
		t.Fatal("expected identity in context")
	}
	if got != identity {
		t.Errorf("expected context identity %+v, got %+v", identity, got)
	}
}

func TestIdentityFromContext(t *testing.T) {
	// no value
	if _, ok := IdentityFromContext(context.Background()); ok {
		t.Error("expected ok=false for missing identity")
	}
	// with value
	identity := models.Identity{ID: 3, Email: "b@c.d", Name: "B"}
	ctx := WithIdentity(context.Background(), identity)
	got, ok := IdentityFromContext(ctx)
	if !ok || got != identity {
		t.Errorf("expected %+v, got %+v (ok=%v)", identity, got, ok)
	}
}
