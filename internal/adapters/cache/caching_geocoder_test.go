package cache

import (
	"context"
	"errors"
	"ride-assignment-service/internal/domain"
	"testing"
)

type fakeGeocoder struct {
	known map[string]domain.Coordinates
	asked []string
}

func (f *fakeGeocoder) Geocode(ctx context.Context, place string) (domain.Coordinates, error) {
	f.asked = append(f.asked, place)
	c, ok := f.known[place]
	if !ok {
		return domain.Coordinates{}, errors.New("no results for " + place)
	}
	return c, nil
}

func TestCachingGeocoderGeocodesOnlyMisses(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	c := NewSqliteGeocodeCache(db)
	if err := c.PutMany(ctx, map[string]domain.Coordinates{"Dizengoff Center": dizengoff}); err != nil {
		t.Fatalf("PutMany: %v", err)
	}

	geo := &fakeGeocoder{known: map[string]domain.Coordinates{"Azrieli Mall": azrieli}}
	g := &CachingGeocoder{Geocoder: geo, Cache: c}

	got, err := g.Lookup(ctx, []string{"Dizengoff  Center", "Azrieli Mall", "Azrieli Mall"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got["Dizengoff  Center"] != dizengoff || got["Azrieli Mall"] != azrieli {
		t.Fatalf("Lookup = %v", got)
	}
	if len(geo.asked) != 1 || geo.asked[0] != "Azrieli Mall" {
		t.Fatalf("geocoder asked %v, want only Azrieli Mall", geo.asked)
	}

	// The miss was written back.
	geo.asked = nil
	if _, err := g.Lookup(ctx, []string{"Azrieli Mall"}); err != nil {
		t.Fatalf("second Lookup: %v", err)
	}
	if len(geo.asked) != 0 {
		t.Fatalf("geocoder asked %v on a warm cache", geo.asked)
	}
}

func TestCachingGeocoderPropagatesFailures(t *testing.T) {
	g := &CachingGeocoder{Geocoder: &fakeGeocoder{}}

	if _, err := g.Lookup(context.Background(), []string{"Nowhere"}); err == nil {
		t.Fatalf("expected error for unknown place")
	}
}

func TestCachingGeocoderWithoutGeocoder(t *testing.T) {
	g := &CachingGeocoder{Cache: NewSqliteGeocodeCache(openTestDB(t))}

	if _, err := g.Lookup(context.Background(), []string{"Azrieli Mall"}); err == nil {
		t.Fatalf("expected error when a miss cannot be geocoded")
	}
}
