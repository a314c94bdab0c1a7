package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ride-assignment-service/internal/domain"
	"ride-assignment-service/internal/platform/obs"
)

// SQLDistanceStore is a Postgres-backed store of routed distances keyed by
// the geohashes of the ordered (from, to) pair.
type SQLDistanceStore struct {
	DB *sql.DB
}

func NewSQLDistanceStore(db *sql.DB) *SQLDistanceStore {
	return &SQLDistanceStore{DB: db}
}

func (s *SQLDistanceStore) GetDistance(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
) (_ float64, _ bool, err error) {
	defer obs.Time(ctx, "distance.store.Get")(&err)

	if s.DB == nil {
		return 0, false, errors.New("distance store: db is nil")
	}

	q := `
	SELECT distance_km
    FROM distance_cache
    WHERE origin = $1
        AND destination = $2;
	`

	var km float64
	err = s.DB.QueryRowContext(ctx, q, cellKey(from), cellKey(to)).Scan(&km)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get distance store: query distance_cache table: %w", err)
	}

	return km, true, nil
}

func (s *SQLDistanceStore) PutDistance(
	ctx context.Context,
	from domain.Coordinates,
	to domain.Coordinates,
	km float64,
) error {
	if s.DB == nil {
		return errors.New("distance store: db is nil")
	}

	q := `
	INSERT INTO distance_cache (origin, destination, distance_km)
    VALUES ($1, $2, $3)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_km = EXCLUDED.distance_km,
		updated_at = now();
	`

	if _, err := s.DB.ExecContext(ctx, q, cellKey(from), cellKey(to), km); err != nil {
		return fmt.Errorf("insert distance store %s -> %s: %w", from, to, err)
	}

	return nil
}
