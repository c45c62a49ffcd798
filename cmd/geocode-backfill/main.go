// Command geocode-backfill fills in missing listing coordinates by forward
// geocoding the free-form from/to place names. Listings created before the
// map capture UI existed only carry text locations.
package main

import (
	"context"
	"fmt"

	"village_rides_backend/internal/geomap/geocode"
	"village_rides_backend/platform/config"
	"village_rides_backend/platform/db"
	"village_rides_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const batchSize = 25

type listingRow struct {
	id           uuid.UUID
	fromLocation string
	toLocation   string
	fromMissing  bool
	toMissing    bool
}

// sweep describes one table's backfill. Ride requests only ever capture the
// origin on the map, so only that side is filled.
type sweep struct {
	table     string
	bothSides bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting listing coordinate backfill")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	geocoder := geocode.New(cfg, log)

	// The Nominatim client serializes requests to one per second, so the two
	// table sweeps can safely run concurrently.
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range []sweep{
		{table: "rides", bothSides: true},
		{table: "ride_requests", bothSides: false},
	} {
		g.Go(func() error {
			return backfillTable(gctx, pool, geocoder, log, s)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("backfill failed", "error", err)
		panic("backfill failed: " + err.Error())
	}

	log.Info("backfill finished")
}

func backfillTable(ctx context.Context, pool *pgxpool.Pool, geocoder *geocode.Nominatim, log *logger.Logger, s sweep) error {
	for {
		listings, err := listMissingCoordinates(ctx, pool, s, batchSize)
		if err != nil {
			return fmt.Errorf("list %s: %w", s.table, err)
		}
		if len(listings) == 0 {
			log.Info("nothing left to geocode", "table", s.table)
			return nil
		}

		progress := false
		for _, listing := range listings {
			if listing.fromMissing {
				if geocodeSide(ctx, pool, geocoder, log, s.table, listing.id, "from", listing.fromLocation) {
					progress = true
				}
			}
			if listing.toMissing && s.bothSides {
				if geocodeSide(ctx, pool, geocoder, log, s.table, listing.id, "to", listing.toLocation) {
					progress = true
				}
			}
		}

		if !progress {
			log.Info("no geocode progress in batch, stopping", "table", s.table)
			return nil
		}
	}
}

func geocodeSide(ctx context.Context, pool *pgxpool.Pool, geocoder *geocode.Nominatim, log *logger.Logger, table string, id uuid.UUID, side, location string) bool {
	if location == "" {
		return false
	}

	result, err := geocoder.Search(ctx, location)
	if err != nil {
		log.Error("geocode failed", "table", table, "id", id, "location", location, "error", err)
		return false
	}
	if result == nil {
		log.Info("no geocode result", "table", table, "id", id, "location", location)
		return false
	}

	query := fmt.Sprintf(`
		UPDATE %s SET %s_lat = $2, %s_lng = $3, updated_at = NOW()
		WHERE id = $1`, table, side, side)
	if _, err := pool.Exec(ctx, query, id, result.Lat, result.Lng); err != nil {
		log.Error("failed to store coordinates", "table", table, "id", id, "error", err)
		return false
	}

	log.Info("listing geocoded", "table", table, "id", id, "side", side, "lat", result.Lat, "lng", result.Lng)
	return true
}

func listMissingCoordinates(ctx context.Context, pool *pgxpool.Pool, s sweep, limit int) ([]listingRow, error) {
	missing := "(from_lat IS NULL OR from_lng IS NULL)"
	if s.bothSides {
		missing = "(from_lat IS NULL OR from_lng IS NULL OR to_lat IS NULL OR to_lng IS NULL)"
	}

	query := fmt.Sprintf(`
		SELECT id, from_location, to_location,
			(from_lat IS NULL OR from_lng IS NULL) AS from_missing,
			(to_lat IS NULL OR to_lng IS NULL) AS to_missing
		FROM %s
		WHERE is_active = TRUE AND %s
		ORDER BY created_at ASC
		LIMIT $1`, s.table, missing)
	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]listingRow, 0, limit)
	for rows.Next() {
		var l listingRow
		if err := rows.Scan(&l.id, &l.fromLocation, &l.toLocation, &l.fromMissing, &l.toMissing); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}
