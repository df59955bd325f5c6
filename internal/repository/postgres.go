package repository

import (
	"context"
	"errors"
	"fmt"

	"yahoo-geocoder/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no recorded lookup matches.
var ErrNotFound = errors.New("repository: no lookup found")

const schema = `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS geocode_lookups (
		id TEXT PRIMARY KEY,
		provider VARCHAR(32) NOT NULL,
		query TEXT NOT NULL,
		address TEXT NOT NULL,
		geom GEOGRAPHY(POINT, 4326),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS geocode_lookups_geom_idx ON geocode_lookups USING GIST (geom);
	CREATE INDEX IF NOT EXISTS geocode_lookups_created_at_idx ON geocode_lookups (created_at DESC);
`

// Repository stores geocoded lookups in PostgreSQL with PostGIS.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the lookup table and its indexes when missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// SaveLookup records a geocoded lookup.
func (r *Repository) SaveLookup(ctx context.Context, lookup models.Lookup) error {
	sql := `
		INSERT INTO geocode_lookups (id, provider, query, address, geom, created_at)
		VALUES (
			$1, $2, $3, $4,
			CASE WHEN $5::float8 IS NULL OR $6::float8 IS NULL THEN NULL
				ELSE ST_SetSRID(ST_MakePoint($6::float8, $5::float8), 4326)::geography END,
			$7
		)
	`

	_, err := r.db.Exec(ctx, sql,
		lookup.ID,
		lookup.Provider,
		lookup.Query,
		lookup.Address,
		lookup.Latitude,
		lookup.Longitude,
		lookup.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to save lookup: %w", err)
	}

	return nil
}

// RecentLookups returns the latest recorded lookups, newest first.
func (r *Repository) RecentLookups(ctx context.Context, limit int) ([]models.Lookup, error) {
	sql := `
		SELECT
			id,
			provider,
			query,
			address,
			ST_Y(geom::geometry) as latitude,
			ST_X(geom::geometry) as longitude,
			created_at
		FROM geocode_lookups
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute history query: %w", err)
	}
	defer rows.Close()

	lookups := []models.Lookup{}
	for rows.Next() {
		lookup, err := scanLookup(rows)
		if err != nil {
			return nil, err
		}
		lookups = append(lookups, *lookup)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return lookups, nil
}

// FindNearestLookup performs a spatial query to find the recorded lookup closest
// to the given coordinates
func (r *Repository) FindNearestLookup(ctx context.Context, lat, lon float64) (*models.Lookup, error) {
	sql := `
		SELECT
			id,
			provider,
			query,
			address,
			ST_Y(geom::geometry) as latitude,
			ST_X(geom::geometry) as longitude,
			created_at
		FROM geocode_lookups
		WHERE geom IS NOT NULL
			AND ST_DWithin(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography, 10000) -- Within 10km
		ORDER BY geom <-> ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography
		LIMIT 1
	`

	lookup, err := scanLookup(r.db.QueryRow(ctx, sql, lat, lon))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return lookup, nil
}

func scanLookup(row pgx.Row) (*models.Lookup, error) {
	var lookup models.Lookup
	err := row.Scan(
		&lookup.ID,
		&lookup.Provider,
		&lookup.Query,
		&lookup.Address,
		&lookup.Latitude,
		&lookup.Longitude,
		&lookup.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to scan lookup: %w", err)
	}
	return &lookup, nil
}
