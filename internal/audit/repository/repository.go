package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Entry is a row in audit_logs. RideID and RequestID are set depending on
// which listing the action concerns; actor is empty for system actions.
type Entry struct {
	ID        uuid.UUID
	Action    string
	RideID    *uuid.UUID
	RequestID *uuid.UUID
	Actor     *string
	CreatedAt time.Time
}

type InsertParams struct {
	Action    string
	RideID    *uuid.UUID
	RequestID *uuid.UUID
	Actor     *string
}

func (r *Repository) Insert(ctx context.Context, params InsertParams) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_logs (action, ride_id, request_id, actor)
		VALUES ($1, $2, $3, $4)`,
		params.Action, params.RideID, params.RequestID, params.Actor)
	return err
}

// ListRecent returns the newest audit entries.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, action, ride_id, request_id, actor, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.RideID, &e.RequestID, &e.Actor, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
