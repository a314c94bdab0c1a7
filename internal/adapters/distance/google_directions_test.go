package distance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"googlemaps.github.io/maps"
)

func TestGoogleRouteProviderRouteDistanceKm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maps/api/directions/json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("origin"); got != pickup.String() {
			t.Errorf("origin = %q, want %q", got, pickup.String())
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"routes": [{"legs": [{"distance": {"text": "6.4 km", "value": 6420}}]}]
		}`))
	}))
	defer srv.Close()

	p, err := NewGoogleRouteProvider("AIzaTestKey", maps.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	km, err := p.RouteDistanceKm(context.Background(), pickup, dropoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if km != 6.42 {
		t.Fatalf("km = %v, want 6.42", km)
	}
}

func TestGoogleRouteProviderNoRoutes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "OK", "routes": []}`))
	}))
	defer srv.Close()

	p, _ := NewGoogleRouteProvider("AIzaTestKey", maps.WithBaseURL(srv.URL))
	if _, err := p.RouteDistanceKm(context.Background(), pickup, dropoff); err == nil {
		t.Fatalf("expected error for empty route set")
	}
}
