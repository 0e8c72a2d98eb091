package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/IsaacFdezPintor/studiosnap/internal/models"
)

// SessionRepository defines the persistence operations required by the
// session facade. Find returns (nil, nil) when the record is absent;
// ownership is enforced by the facade, never by the repository.
type SessionRepository interface {
	// FilterSessionsByOwner returns every record owned by ownerID.
	FilterSessionsByOwner(ctx context.Context, ownerID int64) ([]models.Session, error)
	// FindSession returns the record with the given id, or nil.
	FindSession(ctx context.Context, id int64) (*models.Session, error)
	// InsertSession persists a new record, assigning its identifier.
	InsertSession(ctx context.Context, rec models.Session) (models.Session, error)
	// UpdateSession replaces the stored record with the same id.
	UpdateSession(ctx context.Context, rec models.Session) error
	// RemoveSession deletes the record with the given id.
	RemoveSession(ctx context.Context, id int64) error
}

// SessionService is the ownership-scoped facade in front of the
// session store. Every operation takes the authenticated caller's id
// explicitly and either filters by it or verifies it before touching a
// record. A record that exists but belongs to someone else is reported
// exactly like a missing one.
type SessionService struct {
	records SessionRepository
}

// NewSessionService constructs a SessionService using the provided
// repository.
func NewSessionService(records SessionRepository) *SessionService {
	return &SessionService{records: records}
}

// findOwned is the single ownership gate used by every read and mutate
// path: it resolves the record and returns ErrNotFound both when the
// record is absent and when it is owned by a different user.
func (s *SessionService) findOwned(ctx context.Context, ownerID, id int64) (*models.Session, error) {
	rec, err := s.records.FindSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if rec == nil || rec.UserID != ownerID {
		return nil, ErrNotFound
	}
	return rec, nil
}

// List returns all records owned by ownerID. The slice is never nil,
// so an empty result serializes as a JSON array.
func (s *SessionService) List(ctx context.Context, ownerID int64) ([]models.Session, error) {
	recs, err := s.records.FilterSessionsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if recs == nil {
		recs = []models.Session{}
	}
	return recs, nil
}

// Get returns a single owned record, or ErrNotFound.
func (s *SessionService) Get(ctx context.Context, ownerID, id int64) (*models.Session, error) {
	return s.findOwned(ctx, ownerID, id)
}

// Create validates the input, normalizes optional fields to their
// defaults, forces the owner to ownerID regardless of the request body
// and persists the new record.
func (s *SessionService) Create(ctx context.Context, ownerID int64, in models.SessionInput) (*models.Session, error) {
	title := trimmed(in.Title)
	if title == "" {
		return nil, validationErr("title is required")
	}
	client := trimmed(in.Client)
	if client == "" {
		return nil, validationErr("client is required")
	}

	rec := models.Session{
		Title:    title,
		Client:   client,
		Category: defaulted(in.Category, models.DefaultCategory),
		Date:     defaulted(in.Date, today()),
		Location: trimmed(in.Location),
		Price:    coercePrice(in.Price),
		Status:   defaulted(in.Status, models.DefaultStatus),
		Notes:    trimmed(in.Notes),
		CoverURL: trimmed(in.CoverURL),
		UserID:   ownerID,
	}

	stored, err := s.records.InsertSession(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return &stored, nil
}

// Replace overwrites an owned record. The title is required; every
// other field falls back, field by field, to its previously stored
// value when blank or absent. The owner is re-asserted from ownerID
// even if the request body carried a full document.
func (s *SessionService) Replace(ctx context.Context, ownerID, id int64, in models.SessionInput) (*models.Session, error) {
	rec, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	title := trimmed(in.Title)
	if title == "" {
		return nil, validationErr("title is required")
	}

	updated := models.Session{
		ID:       rec.ID,
		Title:    title,
		Client:   defaulted(in.Client, rec.Client),
		Category: defaulted(in.Category, rec.Category),
		Date:     defaulted(in.Date, rec.Date),
		Location: defaulted(in.Location, rec.Location),
		Price:    rec.Price,
		Status:   defaulted(in.Status, rec.Status),
		Notes:    defaulted(in.Notes, rec.Notes),
		CoverURL: defaulted(in.CoverURL, rec.CoverURL),
		UserID:   ownerID,
	}
	if in.Price != nil {
		updated.Price = coercePrice(in.Price)
	}

	if err := s.records.UpdateSession(ctx, updated); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return &updated, nil
}

// Patch merges only the fields present in the input into an owned
// record. A present title must be non-empty after trimming; other
// strings are trimmed as supplied, and the price is clamped to zero.
// Absent fields, and the owner, are left untouched.
func (s *SessionService) Patch(ctx context.Context, ownerID, id int64, in models.SessionInput) (*models.Session, error) {
	rec, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, validationErr("title cannot be empty")
		}
		rec.Title = title
	}
	if in.Client != nil {
		rec.Client = strings.TrimSpace(*in.Client)
	}
	if in.Category != nil {
		rec.Category = strings.TrimSpace(*in.Category)
	}
	if in.Date != nil {
		rec.Date = strings.TrimSpace(*in.Date)
	}
	if in.Location != nil {
		rec.Location = strings.TrimSpace(*in.Location)
	}
	if in.Price != nil {
		rec.Price = coercePrice(in.Price)
	}
	if in.Status != nil {
		rec.Status = strings.TrimSpace(*in.Status)
	}
	if in.Notes != nil {
		rec.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.CoverURL != nil {
		rec.CoverURL = strings.TrimSpace(*in.CoverURL)
	}

	if err := s.records.UpdateSession(ctx, *rec); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	return rec, nil
}

// Delete removes an owned record, or fails with ErrNotFound under the
// same rules as Get.
func (s *SessionService) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.findOwned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.records.RemoveSession(ctx, id); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// trimmed returns the trimmed value of an optional string, or "" when
// the field is absent.
func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// defaulted returns the trimmed value of an optional string, falling
// back to fallback when the field is absent or blank.
func defaulted(p *string, fallback string) string {
	if v := trimmed(p); v != "" {
		return v
	}
	return fallback
}

// coercePrice turns raw JSON into a non-negative price. Numbers are
// used as-is, numeric strings are parsed, and anything else collapses
// to zero. Negative values are clamped to zero.
func coercePrice(raw json.RawMessage) float64 {
	if raw == nil {
		return 0
	}

	var price float64
	if err := json.Unmarshal(raw, &price); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		price, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
	}

	if price < 0 {
		return 0
	}
	return price
}

// today returns the current date as an ISO calendar date string.
func today() string {
	return time.Now().Format("2006-01-02")
}
