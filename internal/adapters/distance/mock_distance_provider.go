package distance

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"sleigh-route-service/internal/domain"
	"sleigh-route-service/internal/ports"
)

type MockPair struct {
	From, To   domain.Coordinates
	Kilometers float64
}

// MockDistanceProvider serves fixed pair distances for tests. Pairs are
// symmetric. Without a matching pair it falls back to the grid distance
// (one degree = one kilometre) when grid mode is on, and fails otherwise.
type MockDistanceProvider struct {
	m     map[string]ports.DistanceResult
	grid  bool
	calls atomic.Int64
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]ports.DistanceResult, 2*len(pairs))
	for _, p := range pairs {
		r := ports.DistanceResult{Kilometers: p.Kilometers}
		m[p.From.Key()+"|"+p.To.Key()] = r
		m[p.To.Key()+"|"+p.From.Key()] = r
	}
	return &MockDistanceProvider{m: m}
}

// NewGridDistanceProvider treats latitude and longitude as planar kilometres.
func NewGridDistanceProvider() *MockDistanceProvider {
	return &MockDistanceProvider{m: map[string]ports.DistanceResult{}, grid: true}
}

func (p *MockDistanceProvider) GetDistance(ctx context.Context, origin, destination domain.Coordinates) (ports.DistanceResult, error) {
	p.calls.Add(1)

	if origin == destination {
		return ports.DistanceResult{}, nil
	}
	if r, ok := p.m[origin.Key()+"|"+destination.Key()]; ok {
		return r, nil
	}
	if p.grid {
		return ports.DistanceResult{
			Kilometers: math.Hypot(destination.Lat-origin.Lat, destination.Lon-origin.Lon),
		}, nil
	}
	return ports.DistanceResult{}, fmt.Errorf("missing pair %s -> %s", origin, destination)
}

// Calls reports how many single distances were served.
func (p *MockDistanceProvider) Calls() int64 { return p.calls.Load() }

func (p *MockDistanceProvider) GetDistances(ctx context.Context, origin domain.Coordinates, destinations []domain.Coordinates) ([]ports.DistanceResult, error) {
	out := make([]ports.DistanceResult, len(destinations))
	for i, d := range destinations {
		r, err := p.GetDistance(ctx, origin, d)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}
