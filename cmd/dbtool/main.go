package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"ride-assignment-service/internal/adapters/cache"
	"ride-assignment-service/internal/adapters/distance"
	"ride-assignment-service/internal/adapters/repositories"
	"ride-assignment-service/internal/config"
	"ride-assignment-service/internal/platform/db"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// dbtool prepares a fleet database: it applies Postgres migrations or the
// SQLite schema, then seeds drivers and rides from JSON, geocoding any record
// that lacks coordinates.
func main() {
	target := flag.String("target", "sqlite", "database to prepare: sqlite or postgres")
	seed := flag.Bool("seed", true, "seed drivers and rides after the schema is ready")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	driversPath := config.Get("DRIVERS_PATH", "data/seeds/drivers.json")
	ridesPath := config.Get("RIDES_PATH", "data/seeds/rides.json")

	ctx := context.Background()

	switch *target {
	case "postgres":
		databaseURL := config.Get("DATABASE_URL", "")
		if strings.TrimSpace(databaseURL) == "" {
			log.Fatal("DATABASE_URL is required")
		}

		migrationsPath := config.Get("MIGRATIONS_PATH", "db/migrations")
		if err := migrateUp(migrationsPath, databaseURL); err != nil {
			log.Fatal(err)
		}
		if !*seed {
			return
		}

		conn, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		lookup := newLookup(cache.NewSQLGeocodeCache(conn))
		if err := repositories.SeedFromJSON(ctx, repositories.NewSQLFleetRepository(conn), lookup, driversPath, ridesPath); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}

	case "sqlite":
		conn, err := db.OpenSQLite(config.Get("DB_PATH", "data/app.db"))
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := initSchema(conn); err != nil {
			log.Fatal(err)
		}
		if !*seed {
			return
		}

		lookup := newLookup(cache.NewSqliteGeocodeCache(conn))
		if err := repositories.SeedFromJSON(ctx, repositories.NewSqliteFleetRepository(conn), lookup, driversPath, ridesPath); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}

	default:
		log.Fatalf("unknown target %q (want sqlite or postgres)", *target)
	}

	log.Println("Seeding complete.")
}

func migrateUp(migrationsPath, databaseURL string) error {
	log.Println("Applying migrations...")

	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("migrate: open %q: %w", migrationsPath, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: up: %w", err)
	}

	log.Println("Migrations applied.")
	return nil
}

func initSchema(conn *sql.DB) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")
	return nil
}

// newLookup returns a cache-backed geocoder. Without ORS_API_KEY only cached
// places resolve; fully specified seed files need neither.
func newLookup(geocodes cache.GeocodeCache) *cache.CachingGeocoder {
	lookup := &cache.CachingGeocoder{Cache: geocodes}

	key := strings.TrimSpace(config.Get("ORS_API_KEY", ""))
	if key == "" {
		return lookup
	}

	geocoder, err := distance.NewORSGeocoder(distance.ORSConfig{APIKey: key}, config.Get("GEOCODE_COUNTRY", ""))
	if err != nil {
		log.Fatal(err)
	}
	lookup.Geocoder = geocoder
	return lookup
}
