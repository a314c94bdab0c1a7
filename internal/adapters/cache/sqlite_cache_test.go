package cache

import (
	"context"
	"database/sql"
	"ride-assignment-service/internal/adapters/repositories"
	"ride-assignment-service/internal/domain"
	"testing"

	_ "modernc.org/sqlite"
)

var (
	dizengoff = domain.Coordinates{Lat: 32.0780, Lon: 34.7740}
	azrieli   = domain.Coordinates{Lat: 32.0740, Lon: 34.7920}
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := repositories.InitSchema(db); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	return db
}

func TestSqliteDistanceStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSqliteDistanceStore(openTestDB(t))

	if _, ok, err := store.GetDistance(ctx, dizengoff, azrieli); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	if err := store.PutDistance(ctx, dizengoff, azrieli, 2.4); err != nil {
		t.Fatalf("PutDistance: %v", err)
	}
	km, ok, err := store.GetDistance(ctx, dizengoff, azrieli)
	if err != nil || !ok || km != 2.4 {
		t.Fatalf("GetDistance = %v, %v, %v; want 2.4, true, nil", km, ok, err)
	}

	// Direction matters.
	if _, ok, _ := store.GetDistance(ctx, azrieli, dizengoff); ok {
		t.Fatalf("reverse pair should miss")
	}

	// Overwrite keeps a single row.
	if err := store.PutDistance(ctx, dizengoff, azrieli, 2.6); err != nil {
		t.Fatalf("PutDistance overwrite: %v", err)
	}
	if km, _, _ := store.GetDistance(ctx, dizengoff, azrieli); km != 2.6 {
		t.Fatalf("after overwrite = %v, want 2.6", km)
	}
}

func TestSqliteDistanceStoreNilDB(t *testing.T) {
	store := NewSqliteDistanceStore(nil)
	if _, _, err := store.GetDistance(context.Background(), dizengoff, azrieli); err == nil {
		t.Fatalf("expected error for nil DB")
	}
}

func TestSqliteGeocodeCacheGetMany(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteGeocodeCache(openTestDB(t))

	err := c.PutMany(ctx, map[string]domain.Coordinates{
		"Dizengoff Center": dizengoff,
		"Azrieli Mall":     azrieli,
	})
	if err != nil {
		t.Fatalf("PutMany: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"Azrieli Mall", " ", "Unknown", "Azrieli Mall"})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 1 || got["Azrieli Mall"] != azrieli {
		t.Fatalf("GetMany = %v, want only Azrieli Mall", got)
	}

	empty, err := c.GetMany(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("GetMany(nil) = %v, %v", empty, err)
	}
}

func TestCellKeyIsStable(t *testing.T) {
	a := cellKey(dizengoff)
	if len(a) != keyPrecision {
		t.Fatalf("key %q has length %d, want %d", a, len(a), keyPrecision)
	}
	if a != cellKey(domain.Coordinates{Lat: 32.0780, Lon: 34.7740}) {
		t.Fatalf("same point produced different keys")
	}
	if a == cellKey(azrieli) {
		t.Fatalf("distinct points share key %q", a)
	}
}
