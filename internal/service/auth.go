// Package service provides the business logic of the API: account
// registration and login, and the ownership-scoped session facade.
// Persistence is delegated to repository interfaces declared here, so
// the services can be exercised against in-memory fakes.
package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/IsaacFdezPintor/studiosnap/internal/models"
)

// UserRepository defines the persistence operations required by the
// authentication service. Lookups return (nil, nil) when no user
// matches.
type UserRepository interface {
	// FindUserByEmail returns the user with the given email, matched
	// case-sensitive, or nil if absent.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// InsertUser persists a new user, assigning its identifier, and
	// returns the stored user.
	InsertUser(ctx context.Context, user models.User) (models.User, error)
}

// TokenIssuer signs an identity into a bearer credential.
type TokenIssuer interface {
	Issue(identity models.Identity) (string, error)
}

// AuthService implements registration and login on top of a
// UserRepository and a TokenIssuer.
type AuthService struct {
	users  UserRepository
	tokens TokenIssuer
	cost   int
}

// NewAuthService constructs an AuthService. cost is the bcrypt cost
// factor; values below bcrypt.MinCost fall back to bcrypt.DefaultCost.
func NewAuthService(users UserRepository, tokens TokenIssuer, cost int) *AuthService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, tokens: tokens, cost: cost}
}

// Register creates a new account. It fails with ErrEmailTaken if the
// email is already registered. The plaintext password is hashed and
// discarded; only the sanitized user is returned, without a token.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.PublicUser, error) {
	existing, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.InsertUser(ctx, models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	public := user.Public()
	return &public, nil
}

// Login verifies the credentials and returns a signed token together
// with the sanitized user. An unknown email and a wrong password both
// yield ErrInvalidCredentials. There is no lockout: failed attempts
// leave no state behind.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.PublicUser, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("look up user: %w", err)
	}
	if user == nil || user.PasswordHash == "" {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(models.Identity{ID: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	public := user.Public()
	return tok, &public, nil
}
