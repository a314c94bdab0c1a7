package distance

import (
	"context"
	"fmt"
	"ride-assignment-service/internal/domain"
	"sync"
	"sync/atomic"
	"time"
)

type MockRoute struct {
	From, To domain.Coordinates
	Km       float64
}

// MockRouteProvider serves fixed routes and counts every query it receives.
// Pairs it does not know fail, as do all queries while an error is set.
type MockRouteProvider struct {
	m     map[[2]domain.Coordinates]float64
	delay time.Duration

	mu  sync.Mutex
	err error

	calls atomic.Int64
}

func NewMockRouteProvider(routes []MockRoute) *MockRouteProvider {
	m := make(map[[2]domain.Coordinates]float64, len(routes))
	for _, r := range routes {
		m[[2]domain.Coordinates{r.From, r.To}] = r.Km
	}
	return &MockRouteProvider{m: m}
}

// WithDelay makes every query wait d or until its context is done.
func (p *MockRouteProvider) WithDelay(d time.Duration) *MockRouteProvider {
	p.delay = d
	return p
}

// FailWith makes every following query return err. A nil err restores normal behaviour.
func (p *MockRouteProvider) FailWith(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

func (p *MockRouteProvider) Calls() int64 { return p.calls.Load() }

func (p *MockRouteProvider) RouteDistanceKm(ctx context.Context, from, to domain.Coordinates) (float64, error) {
	p.calls.Add(1)

	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timer.C:
		}
	}

	p.mu.Lock()
	err := p.err
	p.mu.Unlock()
	if err != nil {
		return 0, err
	}

	km, ok := p.m[[2]domain.Coordinates{from, to}]
	if !ok {
		return 0, fmt.Errorf("missing route %s -> %s: %w", from, to, ErrNoRoute)
	}

	return km, nil
}
