package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"ride-assignment-service/internal/domain"
)

// Column lists and row mapping shared by the SQLite and Postgres repositories.

const selectDriversQuery = `
	SELECT
		driver_id,
		city,
		home_lat,
		home_lon,
		seats,
		fuel_cost,
		shift_start,
		shift_end,
		max_daily_hours,
		blocked_addresses
	FROM drivers
	ORDER BY position, driver_id;
	`

const selectRidesQuery = `
	SELECT
		ride_id,
		ride_date,
		start_time,
		end_time,
		start_point,
		start_lat,
		start_lon,
		end_point,
		end_lat,
		end_lon,
		seats
	FROM rides
	ORDER BY ride_date, start_time, ride_id;
	`

func listDrivers(ctx context.Context, db *sql.DB) ([]domain.Driver, error) {
	rows, err := db.QueryContext(ctx, selectDriversQuery)
	if err != nil {
		return nil, fmt.Errorf("list drivers: query drivers table: %w", err)
	}
	defer rows.Close()

	drivers := make([]domain.Driver, 0, 64)
	for rows.Next() {
		var (
			d                  domain.Driver
			shiftStart         sql.NullString
			shiftEnd           sql.NullString
			maxDaily           sql.NullFloat64
			blockedAddressJSON string
		)
		err := rows.Scan(
			&d.ID, &d.City, &d.Home.Lat, &d.Home.Lon, &d.Seats, &d.FuelCost,
			&shiftStart, &shiftEnd, &maxDaily, &blockedAddressJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("list drivers: scan row: %w", err)
		}

		if shiftStart.Valid && shiftEnd.Valid {
			start, err := domain.ParseClock(shiftStart.String)
			if err != nil {
				return nil, fmt.Errorf("list drivers: driver %q: %w", d.ID, err)
			}
			end, err := domain.ParseClock(shiftEnd.String)
			if err != nil {
				return nil, fmt.Errorf("list drivers: driver %q: %w", d.ID, err)
			}
			d.Shift = &domain.Shift{Start: start, End: end}
		}
		if maxDaily.Valid {
			hours := maxDaily.Float64
			d.MaxDailyHours = &hours
		}
		if err := json.Unmarshal([]byte(blockedAddressJSON), &d.Blocked); err != nil {
			return nil, fmt.Errorf("list drivers: driver %q: blocked_addresses: %w", d.ID, err)
		}

		drivers = append(drivers, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drivers: row iteration: %w", err)
	}

	return drivers, nil
}

func listRides(ctx context.Context, db *sql.DB) ([]domain.Ride, error) {
	rows, err := db.QueryContext(ctx, selectRidesQuery)
	if err != nil {
		return nil, fmt.Errorf("list rides: query rides table: %w", err)
	}
	defer rows.Close()

	rides := make([]domain.Ride, 0, 256)
	for rows.Next() {
		var (
			r          domain.Ride
			start, end string
		)
		err := rows.Scan(
			&r.ID, &r.Date, &start, &end,
			&r.StartPoint, &r.StartCoords.Lat, &r.StartCoords.Lon,
			&r.EndPoint, &r.EndCoords.Lat, &r.EndCoords.Lon,
			&r.Seats,
		)
		if err != nil {
			return nil, fmt.Errorf("list rides: scan row: %w", err)
		}

		if r.Start, err = domain.ParseClock(start); err != nil {
			return nil, fmt.Errorf("list rides: ride %q: %w", r.ID, err)
		}
		if r.End, err = domain.ParseClock(end); err != nil {
			return nil, fmt.Errorf("list rides: ride %q: %w", r.ID, err)
		}

		rides = append(rides, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rides: row iteration: %w", err)
	}

	return rides, nil
}

// driverArgs returns the insert arguments in column order, position first after the id.
func driverArgs(position int, d domain.Driver) ([]any, error) {
	blocked := d.Blocked
	if blocked == nil {
		blocked = []string{}
	}
	blockedJSON, err := json.Marshal(blocked)
	if err != nil {
		return nil, fmt.Errorf("encode blocked addresses: %w", err)
	}

	var shiftStart, shiftEnd, maxDaily any
	if d.Shift != nil {
		shiftStart = d.Shift.Start.String()
		shiftEnd = d.Shift.End.String()
	}
	if d.MaxDailyHours != nil {
		maxDaily = *d.MaxDailyHours
	}

	return []any{
		d.ID, position, d.City, d.Home.Lat, d.Home.Lon, d.Seats, d.FuelCost,
		shiftStart, shiftEnd, maxDaily, string(blockedJSON),
	}, nil
}

func rideArgs(r domain.Ride) []any {
	return []any{
		r.ID, r.Date, r.Start.String(), r.End.String(),
		r.StartPoint, r.StartCoords.Lat, r.StartCoords.Lon,
		r.EndPoint, r.EndCoords.Lat, r.EndCoords.Lon,
		r.Seats,
	}
}

// insertFleet writes drivers and rides in one transaction using dialect
// specific upsert statements.
func insertFleet(
	ctx context.Context,
	db *sql.DB,
	driverUpsert string,
	rideUpsert string,
	drivers []domain.Driver,
	rides []domain.Ride,
) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed fleet: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	driverStmt, err := tx.PrepareContext(ctx, driverUpsert)
	if err != nil {
		return fmt.Errorf("seed fleet: prepare driver insert: %w", err)
	}
	defer driverStmt.Close()

	for i, d := range drivers {
		args, err := driverArgs(i, d)
		if err != nil {
			return fmt.Errorf("seed fleet: driver %q: %w", d.ID, err)
		}
		if _, err := driverStmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("seed fleet: insert driver %q: %w", d.ID, err)
		}
	}

	rideStmt, err := tx.PrepareContext(ctx, rideUpsert)
	if err != nil {
		return fmt.Errorf("seed fleet: prepare ride insert: %w", err)
	}
	defer rideStmt.Close()

	for _, r := range rides {
		if _, err := rideStmt.ExecContext(ctx, rideArgs(r)...); err != nil {
			return fmt.Errorf("seed fleet: insert ride %q: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed fleet: commit tx: %w", err)
	}

	return nil
}
