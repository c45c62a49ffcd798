package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("admin user not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// AdminUser is a row in admin_users.
type AdminUser struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (AdminUser, error) {
	var u AdminUser
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at
		FROM admin_users
		WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return AdminUser{}, ErrNotFound
	}
	return u, err
}

// EnsureSeed inserts the bootstrap admin if the username does not exist yet.
// An existing user's password hash is left untouched.
func (r *Repository) EnsureSeed(ctx context.Context, username, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO admin_users (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING`, username, passwordHash)
	return err
}
