package repositories

import (
	"context"
	"database/sql"
	"errors"
	"ride-assignment-service/internal/domain"
	"ride-assignment-service/internal/platform/obs"
)

// Postgres-backed implementation of the FleetRepository port.
// The schema is owned by the migrations applied through dbtool.
type SQLFleetRepository struct{ DB *sql.DB }

func NewSQLFleetRepository(db *sql.DB) *SQLFleetRepository {
	return &SQLFleetRepository{DB: db}
}

func (s *SQLFleetRepository) ListDrivers(ctx context.Context) (_ []domain.Driver, err error) {
	defer obs.Time(ctx, "fleet.ListDrivers")(&err)

	if s.DB == nil {
		return nil, errors.New("sql fleet repository: DB is nil")
	}
	return listDrivers(ctx, s.DB)
}

func (s *SQLFleetRepository) ListRides(ctx context.Context) (_ []domain.Ride, err error) {
	defer obs.Time(ctx, "fleet.ListRides")(&err)

	if s.DB == nil {
		return nil, errors.New("sql fleet repository: DB is nil")
	}
	return listRides(ctx, s.DB)
}

// SaveFleet upserts drivers and rides by id.
func (s *SQLFleetRepository) SaveFleet(ctx context.Context, drivers []domain.Driver, rides []domain.Ride) (err error) {
	defer obs.Time(ctx, "fleet.SaveFleet")(&err)

	if s.DB == nil {
		return errors.New("sql fleet repository: DB is nil")
	}

	driverUpsert := `
	INSERT INTO drivers (
		driver_id, position, city, home_lat, home_lon, seats, fuel_cost,
		shift_start, shift_end, max_daily_hours, blocked_addresses
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (driver_id) DO UPDATE
	SET position = EXCLUDED.position,
		city = EXCLUDED.city,
		home_lat = EXCLUDED.home_lat,
		home_lon = EXCLUDED.home_lon,
		seats = EXCLUDED.seats,
		fuel_cost = EXCLUDED.fuel_cost,
		shift_start = EXCLUDED.shift_start,
		shift_end = EXCLUDED.shift_end,
		max_daily_hours = EXCLUDED.max_daily_hours,
		blocked_addresses = EXCLUDED.blocked_addresses;
	`
	rideUpsert := `
	INSERT INTO rides (
		ride_id, ride_date, start_time, end_time,
		start_point, start_lat, start_lon,
		end_point, end_lat, end_lon,
		seats
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (ride_id) DO UPDATE
	SET ride_date = EXCLUDED.ride_date,
		start_time = EXCLUDED.start_time,
		end_time = EXCLUDED.end_time,
		start_point = EXCLUDED.start_point,
		start_lat = EXCLUDED.start_lat,
		start_lon = EXCLUDED.start_lon,
		end_point = EXCLUDED.end_point,
		end_lat = EXCLUDED.end_lat,
		end_lon = EXCLUDED.end_lon,
		seats = EXCLUDED.seats;
	`

	return insertFleet(ctx, s.DB, driverUpsert, rideUpsert, drivers, rides)
}
