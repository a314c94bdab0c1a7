package repositories

import (
	"context"
	"database/sql"
	"errors"
	"ride-assignment-service/internal/domain"
)

// SQLite-backed implementation of the FleetRepository port.
type SqliteFleetRepository struct{ DB *sql.DB }

func NewSqliteFleetRepository(db *sql.DB) *SqliteFleetRepository {
	return &SqliteFleetRepository{DB: db}
}

// Return all drivers in insertion order.
func (s *SqliteFleetRepository) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite fleet repository: DB is nil")
	}
	return listDrivers(ctx, s.DB)
}

func (s *SqliteFleetRepository) ListRides(ctx context.Context) ([]domain.Ride, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite fleet repository: DB is nil")
	}
	return listRides(ctx, s.DB)
}

// SaveFleet replaces drivers and rides with the same ids.
func (s *SqliteFleetRepository) SaveFleet(ctx context.Context, drivers []domain.Driver, rides []domain.Ride) error {
	if s.DB == nil {
		return errors.New("sqlite fleet repository: DB is nil")
	}

	driverUpsert := `
	INSERT OR REPLACE INTO drivers (
		driver_id, position, city, home_lat, home_lon, seats, fuel_cost,
		shift_start, shift_end, max_daily_hours, blocked_addresses
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	rideUpsert := `
	INSERT OR REPLACE INTO rides (
		ride_id, ride_date, start_time, end_time,
		start_point, start_lat, start_lon,
		end_point, end_lat, end_lon,
		seats
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	return insertFleet(ctx, s.DB, driverUpsert, rideUpsert, drivers, rides)
}
