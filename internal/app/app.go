// Package app assembles adapters behind ports from a loaded Config.
// Commands share it so the server and the CLI run identical pipelines.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"ride-assignment-service/internal/adapters/cache"
	"ride-assignment-service/internal/adapters/distance"
	"ride-assignment-service/internal/adapters/repositories"
	"ride-assignment-service/internal/config"
	"ride-assignment-service/internal/platform/db"
	"ride-assignment-service/internal/ports"
	"ride-assignment-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// App holds the wired dependencies and the resources backing them.
type App struct {
	Assigner *services.Assigner
	Fleet    ports.FleetRepository

	sqlite   *sql.DB
	postgres *sql.DB
	redis    *redis.Client
}

// New wires the route provider, distance store and fleet repository selected by cfg.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{}

	provider, err := newRouteProvider(cfg)
	if err != nil {
		return nil, err
	}

	store, err := a.newDistanceStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	fleet, err := a.newFleetRepository(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Fleet = fleet
	a.Assigner = &services.Assigner{
		Provider: provider,
		Store:    store,
		Resolver: services.ResolverConfig{
			ThresholdKm:  cfg.RoutingThreshold,
			QueryTimeout: cfg.RoutingTimeout,
		},
		Engine: services.EngineOptions{
			HourlyRate: cfg.HourlyRate,
			SpeedKmh:   cfg.AverageSpeedKmh,
			Workers:    cfg.EngineWorkers,
			LogDrops:   cfg.LogVerbose,
		},
	}

	log.Printf("op=app.wire fleet=%s routing=%s store=%s threshold_km=%.1f",
		cfg.FleetSource, cfg.RoutingProvider, cfg.DistanceStore, cfg.RoutingThreshold)

	return a, nil
}

// Close releases every opened connection.
func (a *App) Close() error {
	var errs []error
	if a.sqlite != nil {
		errs = append(errs, a.sqlite.Close())
	}
	if a.postgres != nil {
		errs = append(errs, a.postgres.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	return errors.Join(errs...)
}

func newRouteProvider(cfg config.Config) (ports.RouteProvider, error) {
	switch cfg.RoutingProvider {
	case config.RoutingORS:
		p, err := distance.NewORSRouteProvider(distance.ORSConfig{
			APIKey:  cfg.ORSAPIKey,
			Timeout: cfg.RoutingTimeout,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.RoutingGoogle:
		p, err := distance.NewGoogleRouteProvider(cfg.GoogleMapsAPIKey)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.RoutingNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown routing provider %q", cfg.RoutingProvider)
	}
}

func (a *App) newDistanceStore(ctx context.Context, cfg config.Config) (ports.DistanceStore, error) {
	switch cfg.DistanceStore {
	case config.StoreNone:
		return nil, nil
	case config.StoreSqlite:
		conn, err := a.openSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return cache.NewSqliteDistanceStore(conn), nil
	case config.StorePostgres:
		conn, err := a.openPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return cache.NewSQLDistanceStore(conn), nil
	case config.StoreRedis:
		a.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisDistanceStore(a.redis, cfg.DistanceStoreTTL), nil
	default:
		return nil, fmt.Errorf("unknown distance store %q", cfg.DistanceStore)
	}
}

func (a *App) newFleetRepository(cfg config.Config) (ports.FleetRepository, error) {
	switch cfg.FleetSource {
	case config.FleetFile:
		return repositories.NewFileFleetRepository(cfg.DriversPath, cfg.RidesPath), nil
	case config.FleetSqlite:
		conn, err := a.openSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return repositories.NewSqliteFleetRepository(conn), nil
	case config.FleetPostgres:
		conn, err := a.openPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return repositories.NewSQLFleetRepository(conn), nil
	default:
		return nil, fmt.Errorf("unknown fleet source %q", cfg.FleetSource)
	}
}

// openSQLite opens the database once and makes sure the schema exists.
func (a *App) openSQLite(path string) (*sql.DB, error) {
	if a.sqlite != nil {
		return a.sqlite, nil
	}
	conn, err := db.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	a.sqlite = conn
	return conn, nil
}

func (a *App) openPostgres(url string) (*sql.DB, error) {
	if a.postgres != nil {
		return a.postgres, nil
	}
	conn, err := db.Open(url)
	if err != nil {
		return nil, err
	}
	a.postgres = conn
	return conn, nil
}
