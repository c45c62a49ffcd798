package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("ride request not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Request is a ride request row.
type Request struct {
	ID           uuid.UUID
	Passenger    string
	Phone        string
	FromLocation string
	ToLocation   string
	Date         string
	Time         string
	TimeFlex     string
	PeopleCount  int
	Note         *string
	FromLat      *float64
	FromLng      *float64
	ToLat        *float64
	ToLng        *float64
	Status       string
	IsActive     bool
	IsFlagged    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateRequestParams struct {
	Passenger    string
	Phone        string
	FromLocation string
	ToLocation   string
	Date         string
	Time         string
	TimeFlex     string
	PeopleCount  int
	Note         *string
	FromLat      *float64
	FromLng      *float64
	ToLat        *float64
	ToLng        *float64
}

const requestColumns = `
	id, passenger, phone, from_location, to_location,
	date, time, time_flex, people_count, note,
	from_lat, from_lng, to_lat, to_lng,
	status, is_active, is_flagged, created_at, updated_at`

func scanRequest(row pgx.Row) (Request, error) {
	var r Request
	err := row.Scan(
		&r.ID, &r.Passenger, &r.Phone, &r.FromLocation, &r.ToLocation,
		&r.Date, &r.Time, &r.TimeFlex, &r.PeopleCount, &r.Note,
		&r.FromLat, &r.FromLng, &r.ToLat, &r.ToLng,
		&r.Status, &r.IsActive, &r.IsFlagged, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (r *Repository) Create(ctx context.Context, params CreateRequestParams) (Request, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO ride_requests (
			passenger, phone, from_location, to_location,
			date, time, time_flex, people_count, note,
			from_lat, from_lng, to_lat, to_lng
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+requestColumns,
		params.Passenger, params.Phone, params.FromLocation, params.ToLocation,
		params.Date, params.Time, params.TimeFlex, params.PeopleCount, params.Note,
		params.FromLat, params.FromLng, params.ToLat, params.ToLng,
	)
	return scanRequest(row)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Request, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM ride_requests WHERE id = $1`, id)
	req, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

// SearchParams filters the public request search. Empty fields are skipped;
// Status keeps its zero value meaning "any".
type SearchParams struct {
	From   string
	To     string
	Date   string
	Status string
}

// Search returns active, upcoming requests matching the filters, soonest first.
func (r *Repository) Search(ctx context.Context, today string, params SearchParams, limit int) ([]Request, error) {
	where := []string{"is_active = TRUE", "date >= $1"}
	args := []interface{}{today}

	if params.Status != "" {
		args = append(args, params.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if params.From != "" {
		args = append(args, "%"+params.From+"%")
		where = append(where, fmt.Sprintf("from_location ILIKE $%d", len(args)))
	}
	if params.To != "" {
		args = append(args, "%"+params.To+"%")
		where = append(where, fmt.Sprintf("to_location ILIKE $%d", len(args)))
	}
	if params.Date != "" {
		args = append(args, params.Date)
		where = append(where, fmt.Sprintf("date = $%d", len(args)))
	}

	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT %s FROM ride_requests
		WHERE %s
		ORDER BY date ASC, time ASC
		LIMIT $%d`, requestColumns, strings.Join(where, " AND "), len(args))

	return r.queryRequests(ctx, query, args...)
}

// ListUpcoming returns open, active requests from today onward for the map.
func (r *Repository) ListUpcoming(ctx context.Context, today string, limit int) ([]Request, error) {
	return r.queryRequests(ctx, `
		SELECT `+requestColumns+` FROM ride_requests
		WHERE is_active = TRUE AND status = 'open' AND date >= $1
		ORDER BY date ASC, time ASC
		LIMIT $2`, today, limit)
}

// ListAll returns every request for the admin panel, newest travel date first.
func (r *Repository) ListAll(ctx context.Context, limit int) ([]Request, error) {
	return r.queryRequests(ctx, `
		SELECT `+requestColumns+` FROM ride_requests
		ORDER BY date DESC, time DESC
		LIMIT $1`, limit)
}

func (r *Repository) queryRequests(ctx context.Context, query string, args ...interface{}) ([]Request, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, req)
	}
	return items, rows.Err()
}

func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) (Request, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE ride_requests SET is_active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+requestColumns, id, active)
	req, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

func (r *Repository) SetFlagged(ctx context.Context, id uuid.UUID, flagged bool) (Request, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE ride_requests SET is_flagged = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+requestColumns, id, flagged)
	req, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

// SetStatus transitions a request between open and fulfilled.
func (r *Repository) SetStatus(ctx context.Context, id uuid.UUID, status string) (Request, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE ride_requests SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+requestColumns, id, status)
	req, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

// DeactivatePast marks active requests dated strictly before today inactive
// and returns their ids.
func (r *Repository) DeactivatePast(ctx context.Context, today string) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE ride_requests SET is_active = FALSE, updated_at = NOW()
		WHERE is_active = TRUE AND date < $1
		RETURNING id`, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Stats holds the dashboard counters for ride requests.
type Stats struct {
	Open  int
	Today int
}

func (r *Repository) GetStats(ctx context.Context, today string) (Stats, error) {
	var s Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'open' AND is_active = TRUE AND date >= $1),
			COUNT(*) FILTER (WHERE date = $1)
		FROM ride_requests`, today).Scan(&s.Open, &s.Today)
	return s, err
}
