package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-assignment-service/internal/domain"
)

// SQLite backed store of routed distances keyed by the geohashes of the
// ordered (from, to) pair.
type SqliteDistanceStore struct {
	DB *sql.DB
}

func NewSqliteDistanceStore(db *sql.DB) *SqliteDistanceStore {
	return &SqliteDistanceStore{DB: db}
}

func (s *SqliteDistanceStore) GetDistance(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
) (float64, bool, error) {
	if s.DB == nil {
		return 0, false, errors.New("distance store: db is nil")
	}

	q := `
	SELECT distance_km
    FROM distance_cache
    WHERE origin = ?
        AND destination = ?;
	`

	var km float64
	err := s.DB.QueryRowContext(ctx, q, cellKey(from), cellKey(to)).Scan(&km)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get distance store: query distance_cache table: %w", err)
	}

	return km, true, nil
}

func (s *SqliteDistanceStore) PutDistance(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
	km float64,
) error {
	if s.DB == nil {
		return errors.New("distance store: db is nil")
	}

	q := `
	INSERT OR REPLACE INTO distance_cache (
        origin,
        destination,
        distance_km
    )
    VALUES (?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, cellKey(from), cellKey(to), km); err != nil {
		return fmt.Errorf("insert distance store %s -> %s: %w", from, to, err)
	}

	return nil
}
