package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDriversQuery := `
	CREATE TABLE IF NOT EXISTS drivers (
		driver_id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		city TEXT NOT NULL DEFAULT '',
		home_lat REAL NOT NULL,
		home_lon REAL NOT NULL,
		seats INTEGER NOT NULL,
		fuel_cost REAL NOT NULL,
		shift_start TEXT,
		shift_end TEXT,
		max_daily_hours REAL,
		blocked_addresses TEXT NOT NULL DEFAULT '[]'
	);
	`

	createRidesQuery := `
	CREATE TABLE IF NOT EXISTS rides (
		ride_id TEXT PRIMARY KEY,
		ride_date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		start_point TEXT NOT NULL DEFAULT '',
		start_lat REAL NOT NULL,
		start_lon REAL NOT NULL,
		end_point TEXT NOT NULL DEFAULT '',
		end_lat REAL NOT NULL,
		end_lon REAL NOT NULL,
		seats INTEGER NOT NULL
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_km REAL NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        place TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_rides_date_start
    ON rides(ride_date, start_time);
	`

	statements := []string{
		createDriversQuery,
		createRidesQuery,
		createDistanceCacheQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
