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

var ErrNotFound = errors.New("ride not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Ride is a published ride offer row.
type Ride struct {
	ID           uuid.UUID
	Driver       string
	Phone        string
	FromLocation string
	ToLocation   string
	Date         string
	Time         string
	Seats        int
	RideType     string
	FromLat      *float64
	FromLng      *float64
	ToLat        *float64
	ToLng        *float64
	IsActive     bool
	IsFlagged    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateRideParams struct {
	Driver       string
	Phone        string
	FromLocation string
	ToLocation   string
	Date         string
	Time         string
	Seats        int
	RideType     string
	FromLat      *float64
	FromLng      *float64
	ToLat        *float64
	ToLng        *float64
}

const rideColumns = `
	id, driver, phone, from_location, to_location,
	date, time, seats, ride_type,
	from_lat, from_lng, to_lat, to_lng,
	is_active, is_flagged, created_at, updated_at`

func scanRide(row pgx.Row) (Ride, error) {
	var r Ride
	err := row.Scan(
		&r.ID, &r.Driver, &r.Phone, &r.FromLocation, &r.ToLocation,
		&r.Date, &r.Time, &r.Seats, &r.RideType,
		&r.FromLat, &r.FromLng, &r.ToLat, &r.ToLng,
		&r.IsActive, &r.IsFlagged, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (r *Repository) Create(ctx context.Context, params CreateRideParams) (Ride, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO rides (
			driver, phone, from_location, to_location,
			date, time, seats, ride_type,
			from_lat, from_lng, to_lat, to_lng
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+rideColumns,
		params.Driver, params.Phone, params.FromLocation, params.ToLocation,
		params.Date, params.Time, params.Seats, params.RideType,
		params.FromLat, params.FromLng, params.ToLat, params.ToLng,
	)
	return scanRide(row)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Ride, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+rideColumns+` FROM rides WHERE id = $1`, id)
	ride, err := scanRide(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Ride{}, ErrNotFound
	}
	return ride, err
}

// SearchParams filters the public ride search. Empty fields are skipped.
type SearchParams struct {
	From     string
	To       string
	Date     string
	RideType string
}

// Search returns active, upcoming rides matching the filters, soonest first.
func (r *Repository) Search(ctx context.Context, today string, params SearchParams, limit int) ([]Ride, error) {
	where := []string{"is_active = TRUE", "date >= $1"}
	args := []interface{}{today}

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
	if params.RideType != "" {
		args = append(args, params.RideType)
		where = append(where, fmt.Sprintf("ride_type = $%d", len(args)))
	}

	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT %s FROM rides
		WHERE %s
		ORDER BY date ASC, time ASC
		LIMIT $%d`, rideColumns, strings.Join(where, " AND "), len(args))

	return r.queryRides(ctx, query, args...)
}

// ListUpcoming returns active rides from today onward for the map scene.
func (r *Repository) ListUpcoming(ctx context.Context, today string, limit int) ([]Ride, error) {
	return r.queryRides(ctx, `
		SELECT `+rideColumns+` FROM rides
		WHERE is_active = TRUE AND date >= $1
		ORDER BY date ASC, time ASC
		LIMIT $2`, today, limit)
}

// ListAll returns every ride for the admin panel, newest travel date first.
func (r *Repository) ListAll(ctx context.Context, limit int) ([]Ride, error) {
	return r.queryRides(ctx, `
		SELECT `+rideColumns+` FROM rides
		ORDER BY date DESC, time DESC
		LIMIT $1`, limit)
}

func (r *Repository) queryRides(ctx context.Context, query string, args ...interface{}) ([]Ride, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Ride, 0)
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, ride)
	}
	return items, rows.Err()
}

func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) (Ride, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE rides SET is_active = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+rideColumns, id, active)
	ride, err := scanRide(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Ride{}, ErrNotFound
	}
	return ride, err
}

func (r *Repository) SetFlagged(ctx context.Context, id uuid.UUID, flagged bool) (Ride, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE rides SET is_flagged = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+rideColumns, id, flagged)
	ride, err := scanRide(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Ride{}, ErrNotFound
	}
	return ride, err
}

// DeactivatePast marks active rides dated strictly before today inactive and
// returns their ids.
func (r *Repository) DeactivatePast(ctx context.Context, today string) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE rides SET is_active = FALSE, updated_at = NOW()
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

// Stats holds the dashboard counters for ride offers.
type Stats struct {
	Total    int
	Today    int
	Upcoming int
}

func (r *Repository) GetStats(ctx context.Context, today string) (Stats, error) {
	var s Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE date = $1),
			COUNT(*) FILTER (WHERE date > $1)
		FROM rides`, today).Scan(&s.Total, &s.Today, &s.Upcoming)
	return s, err
}
