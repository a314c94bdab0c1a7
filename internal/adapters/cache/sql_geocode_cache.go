package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-assignment-service/internal/domain"
	"ride-assignment-service/internal/platform/obs"
	"strings"
)

// SQLGeocodeCache is a Postgres-backed cache mapping place names to coordinates.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch cached coordinates for the given places. Misses are simply absent.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	places []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqPlaces(places)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	q := `
	SELECT place, lon, lat
    FROM geocode_cache
    WHERE place = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	return scanGeocodeRows(rows, len(uniq))
}

// Store place -> coordinate mappings in one transaction.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	return putGeocodes(ctx, s.DB, `
	INSERT INTO geocode_cache (place, lon, lat)
    VALUES ($1, $2, $3)
	ON CONFLICT (place) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`, results)
}

func scanGeocodeRows(rows *sql.Rows, sizeHint int) (map[string]domain.Coordinates, error) {
	out := make(map[string]domain.Coordinates, sizeHint)
	for rows.Next() {
		var place string
		var lon, lat float64
		if err := rows.Scan(&place, &lon, &lat); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[place] = domain.Coordinates{Lon: lon, Lat: lat}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}
	return out, nil
}

func putGeocodes(ctx context.Context, db *sql.DB, insert string, results map[string]domain.Coordinates) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for place, c := range results {
		if strings.TrimSpace(place) == "" {
			return errors.New("insert geocode cache: empty place key")
		}
		if _, err := stmt.ExecContext(ctx, place, c.Lon, c.Lat); err != nil {
			return fmt.Errorf("insert geocode cache place=%q: %w", place, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}
	return nil
}
