// Package main initializes and starts the StudioSnap API server,
// setting up configuration, logging, storage, repositories, services,
// handlers and routing.
package main

import (
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/IsaacFdezPintor/studiosnap/internal/config"
	"github.com/IsaacFdezPintor/studiosnap/internal/db"
	"github.com/IsaacFdezPintor/studiosnap/internal/logger"
	"github.com/IsaacFdezPintor/studiosnap/internal/repository"
	"github.com/IsaacFdezPintor/studiosnap/internal/server/handler/http"
	"github.com/IsaacFdezPintor/studiosnap/internal/service"
	"github.com/IsaacFdezPintor/studiosnap/internal/storage"
	"github.com/IsaacFdezPintor/studiosnap/internal/token"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	buildVersion, buildTimestamp := version, buildDate
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildTimestamp == "" {
		buildTimestamp = "N/A"
	}
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildTimestamp)

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Select the persistence backend: PostgreSQL when a DSN is given,
	// the flat JSON file store otherwise.
	var (
		userRepo    service.UserRepository
		sessionRepo service.SessionRepository
	)
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		userRepo = repository.NewPostgresUserRepository(postgresDB)
		sessionRepo = repository.NewPostgresSessionRepository(postgresDB)
		zapLogger.Info("using postgres store")
	} else {
		store, err := storage.Open(options.StorePath)
		if err != nil {
			zapLogger.Fatal("cannot open file store", zap.Error(err))
		}
		userRepo = store
		sessionRepo = store
		zapLogger.Info("using json file store", zap.String("path", options.StorePath))
	}

	// Bearer-token manager: 2-hour credentials signed with the secret.
	tokens := token.New([]byte(options.JWTSecret), token.DefaultTTL)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, tokens, options.BcryptCost)
	sessionService := service.NewSessionService(sessionRepo)

	// Create HTTP handlers for auth and session endpoints.
	authHandler := &http.AuthHandler{AuthService: authService}
	sessionHandler := &http.SessionHandler{Sessions: sessionService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, sessionHandler, tokens, zapLogger, options.WebDir)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
