// Package repository provides the PostgreSQL implementations of the
// persistence ports declared by the service layer.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/IsaacFdezPintor/studiosnap/internal/models"
)

// PostgresUserRepository implements user persistence on PostgreSQL.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with
// the given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// FindUserByEmail returns the user with the given email, or nil if no
// such user exists. The match is case-sensitive.
func (r *PostgresUserRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, email, name, password_hash FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// InsertUser persists a new user. The identifier comes from the table
// sequence and is returned on the stored user.
func (r *PostgresUserRepository) InsertUser(ctx context.Context, user models.User) (models.User, error) {
	err := r.DB.QueryRowContext(
		ctx,
		`INSERT INTO users (email, name, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		user.Email, user.Name, user.PasswordHash,
	).Scan(&user.ID)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}
