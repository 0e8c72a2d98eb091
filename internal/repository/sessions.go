package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/IsaacFdezPintor/studiosnap/internal/models"
)

// PostgresSessionRepository implements session-record persistence on
// PostgreSQL. Ownership is never enforced here; the facade checks it
// before every mutation.
type PostgresSessionRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSessionRepository creates a new PostgresSessionRepository
// with the given database connection.
func NewPostgresSessionRepository(db *sql.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{DB: db}
}

const sessionColumns = `id, user_id, title, client, category, date, location, price, status, notes, cover_url`

func scanSession(row interface{ Scan(...any) error }) (models.Session, error) {
	var rec models.Session
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Title, &rec.Client, &rec.Category,
		&rec.Date, &rec.Location, &rec.Price, &rec.Status, &rec.Notes, &rec.CoverURL,
	)
	return rec, err
}

// FilterSessionsByOwner returns every record owned by ownerID.
func (r *PostgresSessionRepository) FilterSessionsByOwner(ctx context.Context, ownerID int64) ([]models.Session, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE user_id = $1 ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Session{}
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// FindSession returns the record with the given id, or nil if absent.
func (r *PostgresSessionRepository) FindSession(ctx context.Context, id int64) (*models.Session, error) {
	rec, err := scanSession(r.DB.QueryRowContext(
		ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// InsertSession persists a new record. The identifier comes from the
// table sequence and is returned on the stored record.
func (r *PostgresSessionRepository) InsertSession(ctx context.Context, rec models.Session) (models.Session, error) {
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO sessions (user_id, title, client, category, date, location, price, status, notes, cover_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		rec.UserID, rec.Title, rec.Client, rec.Category, rec.Date,
		rec.Location, rec.Price, rec.Status, rec.Notes, rec.CoverURL,
	).Scan(&rec.ID)
	if err != nil {
		return models.Session{}, err
	}
	return rec, nil
}

// UpdateSession replaces the stored record with the same id.
func (r *PostgresSessionRepository) UpdateSession(ctx context.Context, rec models.Session) error {
	_, err := r.DB.ExecContext(
		ctx,
		`UPDATE sessions
		    SET user_id = $2, title = $3, client = $4, category = $5, date = $6,
		        location = $7, price = $8, status = $9, notes = $10, cover_url = $11
		  WHERE id = $1`,
		rec.ID, rec.UserID, rec.Title, rec.Client, rec.Category, rec.Date,
		rec.Location, rec.Price, rec.Status, rec.Notes, rec.CoverURL,
	)
	return err
}

// RemoveSession deletes the record with the given id.
func (r *PostgresSessionRepository) RemoveSession(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}
