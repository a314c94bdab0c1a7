package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-assignment-service/internal/domain"
	"strings"
)

// SQLite backed cache mapping place names to coordinates.
// Place keys are expected to be normalized by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch cached coordinates for the given places. Misses are simply absent.
func (s *SqliteGeocodeCache) GetMany(ctx context.Context, places []string) (map[string]domain.Coordinates, error) {
	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqPlaces(places)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	args := make([]any, len(uniq))
	for i, p := range uniq {
		args[i] = p
	}

	// SQLite cannot bind a slice to IN (...); only placeholders are interpolated.
	q := fmt.Sprintf(`
	SELECT
        place,
        lon,
        lat
    FROM geocode_cache
    WHERE place IN (%s);
	`, strings.TrimSuffix(strings.Repeat("?,", len(uniq)), ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	return scanGeocodeRows(rows, len(uniq))
}

// Store place -> coordinate mappings in one transaction.
func (s *SqliteGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	return putGeocodes(ctx, s.DB, `
	INSERT OR REPLACE INTO geocode_cache (
        place,
        lon,
        lat
    )
    VALUES (?, ?, ?);
	`, results)
}
