package http

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/IsaacFdezPintor/studiosnap/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// StudioSnap API. It applies CORS, JSON content-type enforcement and
// request logging globally, and bearer-token authentication on every
// route except login and registration.
//
// Routes:
//
//	POST   /auth/login        → authHandler.Login
//	POST   /auth/register     → authHandler.Register
//	GET    /auth/me           → authHandler.Me       (bearer)
//	GET    /sessions          → sessionHandler.List   (bearer)
//	POST   /sessions          → sessionHandler.Create (bearer)
//	GET    /sessions/{id}     → sessionHandler.Get    (bearer)
//	PUT    /sessions/{id}     → sessionHandler.Replace(bearer)
//	PATCH  /sessions/{id}     → sessionHandler.Patch  (bearer)
//	DELETE /sessions/{id}     → sessionHandler.Delete (bearer)
//
// Any other path falls through to the static browser client in webDir,
// when that directory exists.
func NewRouter(
	authHandler *AuthHandler,
	sessionHandler *SessionHandler,
	tokens middleware.TokenVerifier,
	logger *zap.Logger,
	webDir string,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS)
	// Only allow requests with Content-Type: application/json; requests
	// without a body pass through untouched.
	r.Use(chiMiddleware.AllowContentType("application/json"))
	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	authRequired := middleware.BearerAuth(tokens)

	r.Route("/auth", func(r chi.Router) {
		// Public endpoints
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(authRequired)
			r.Get("/me", authHandler.Me)
		})
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Use(authRequired)
		r.Get("/", sessionHandler.List)
		r.Post("/", sessionHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", sessionHandler.Get)
			r.Put("/", sessionHandler.Replace)
			r.Patch("/", sessionHandler.Patch)
			r.Delete("/", sessionHandler.Delete)
		})
	})

	if webDir != "" {
		if _, err := os.Stat(webDir); err == nil {
			r.Handle("/*", spaHandler(webDir))
		}
	}

	return r
}

// spaHandler serves the static browser client: real files are served
// as-is and every other path falls back to index.html so client-side
// routing keeps working after a reload.
func spaHandler(dir string) http.Handler {
	fileServer := http.FileServer(http.Dir(dir))
	indexPath := filepath.Join(dir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested := filepath.Join(dir, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, indexPath)
	})
}
