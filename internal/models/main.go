// Package models defines the core data structures for users and
// photography session records.
package models

import "encoding/json"

// User represents a registered account with credentials.
type User struct {
	// ID is the unique, server-assigned identifier for the user.
	ID int64 `json:"id"`
	// Email is the unique login address, stored case-sensitive.
	Email string `json:"email"`
	// Name is the display name chosen at registration.
	Name string `json:"name"`
	// PasswordHash is the bcrypt hash of the user's password.
	// It is persisted but must never reach an API response.
	PasswordHash string `json:"passwordHash"`
}

// Public returns the user stripped of credential material,
// safe to return to any client.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}

// PublicUser is the client-facing view of a user account.
type PublicUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Identity is the authenticated caller decoded from a bearer token.
// It reflects the user at token-issue time, not live account state.
type Identity struct {
	ID    int64
	Email string
	Name  string
}

// Session represents a photography session record. Every record
// belongs to exactly one user; UserID is assigned at creation from
// the authenticated caller and never changes afterwards.
type Session struct {
	// ID is the unique, server-assigned identifier for the record.
	ID int64 `json:"id"`
	// Title is the session title. Required, stored trimmed.
	Title string `json:"title"`
	// Client is the client name. Required, stored trimmed.
	Client string `json:"client"`
	// Category is a free-text label ("Retrato", "Boda", ...).
	Category string `json:"category"`
	// Date is the session date as an ISO calendar date (YYYY-MM-DD).
	Date string `json:"date"`
	// Location is a free-text place description.
	Location string `json:"location"`
	// Price is the agreed price. Never negative.
	Price float64 `json:"price"`
	// Status is one of the Status* constants. Defaults to StatusPending.
	Status string `json:"status"`
	// Notes holds free-text remarks.
	Notes string `json:"notes"`
	// CoverURL points at the session's cover image.
	CoverURL string `json:"coverUrl"`
	// UserID is the identifier of the owning user.
	UserID int64 `json:"userId"`
}

// Session status values.
const (
	StatusPending   = "pendiente"
	StatusConfirmed = "confirmada"
	StatusCompleted = "completada"
	StatusCancelled = "cancelada"
)

// Defaults applied to optional session fields.
const (
	DefaultCategory = "Retrato"
	DefaultStatus   = StatusPending
)

// SessionInput carries client-supplied session fields for create and
// update operations. Pointer fields distinguish an absent field from
// an explicitly empty one, which partial updates rely on. Price is
// kept raw so non-numeric input can be coerced instead of failing the
// whole body. UserID is decoded but always discarded: the owner comes
// from the authenticated caller, never from the request body.
type SessionInput struct {
	Title    *string         `json:"title"`
	Client   *string         `json:"client"`
	Category *string         `json:"category"`
	Date     *string         `json:"date"`
	Location *string         `json:"location"`
	Price    json.RawMessage `json:"price"`
	Status   *string         `json:"status"`
	Notes    *string         `json:"notes"`
	CoverURL *string         `json:"coverUrl"`
	UserID   *int64          `json:"userId"`
}
