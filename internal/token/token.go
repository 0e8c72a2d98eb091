// Package token issues and verifies the signed bearer credentials used
// to authenticate API requests.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/IsaacFdezPintor/studiosnap/internal/models"
)

// DefaultTTL is the lifetime of an issued credential.
const DefaultTTL = 2 * time.Hour

// ErrInvalidToken is returned for any credential that cannot be
// trusted: bad signature, malformed payload, or past expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload: the registered claims plus the user's
// email and display name, so protected routes can build the caller's
// identity without a store lookup.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Manager signs and verifies HS256 tokens with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// New creates a Manager signing with secret. Tokens expire after ttl;
// pass DefaultTTL unless a test needs a shorter window.
func New(secret []byte, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl}
}

// Issue signs a time-bounded token encoding the given identity.
func (m *Manager) Issue(identity models.Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.ID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Email: identity.Email,
		Name:  identity.Name,
	})
	return token.SignedString(m.secret)
}

// Verify checks the signature and expiry of tokenString and returns
// the identity it encodes. Any failure is reported as ErrInvalidToken.
func (m *Manager) Verify(tokenString string) (*models.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &models.Identity{ID: id, Email: claims.Email, Name: claims.Name}, nil
}
