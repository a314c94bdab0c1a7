package app

import (
	"context"
	"path/filepath"
	"ride-assignment-service/internal/adapters/cache"
	"ride-assignment-service/internal/adapters/repositories"
	"ride-assignment-service/internal/config"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func baseConfig(t *testing.T) config.Config {
	return config.Config{
		DBPath:           filepath.Join(t.TempDir(), "app.db"),
		DriversPath:      "drivers.json",
		RidesPath:        "rides.json",
		FleetSource:      config.FleetFile,
		RoutingProvider:  config.RoutingNone,
		RoutingThreshold: 30,
		RoutingTimeout:   time.Second,
		AverageSpeedKmh:  60,
		HourlyRate:       30,
		EngineWorkers:    2,
		DistanceStore:    config.StoreNone,
	}
}

func TestNewGeometricFileFleet(t *testing.T) {
	a, err := New(context.Background(), baseConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if a.Assigner.Provider != nil || a.Assigner.Store != nil {
		t.Fatalf("expected no provider and no store, got %T and %T", a.Assigner.Provider, a.Assigner.Store)
	}
	if _, ok := a.Fleet.(*repositories.FileFleetRepository); !ok {
		t.Fatalf("fleet = %T, want file repository", a.Fleet)
	}
	if a.Assigner.Resolver.ThresholdKm != 30 || a.Assigner.Engine.Workers != 2 {
		t.Fatalf("assigner not configured: %+v", a.Assigner)
	}
}

func TestNewSharesSQLiteBetweenFleetAndStore(t *testing.T) {
	cfg := baseConfig(t)
	cfg.FleetSource = config.FleetSqlite
	cfg.DistanceStore = config.StoreSqlite

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if _, ok := a.Assigner.Store.(*cache.SqliteDistanceStore); !ok {
		t.Fatalf("store = %T, want sqlite", a.Assigner.Store)
	}
	repo, ok := a.Fleet.(*repositories.SqliteFleetRepository)
	if !ok {
		t.Fatalf("fleet = %T, want sqlite repository", a.Fleet)
	}
	if repo.DB != a.sqlite {
		t.Fatalf("fleet and store opened separate databases")
	}

	drivers, err := repo.ListDrivers(context.Background())
	if err != nil || len(drivers) != 0 {
		t.Fatalf("fresh database: %v, %v", drivers, err)
	}
}

func TestNewRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := baseConfig(t)
	cfg.DistanceStore = config.StoreRedis
	cfg.RedisAddr = mr.Addr()
	cfg.DistanceStoreTTL = time.Hour

	a, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if _, ok := a.Assigner.Store.(*cache.RedisDistanceStore); !ok {
		t.Fatalf("store = %T, want redis", a.Assigner.Store)
	}
}

func TestNewORSRequiresKey(t *testing.T) {
	cfg := baseConfig(t)
	cfg.RoutingProvider = config.RoutingORS

	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatalf("expected error without ORS key")
	}
}
