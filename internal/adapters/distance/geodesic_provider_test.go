package distance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleigh-route-service/internal/domain"
)

func TestGeodesicKm(t *testing.T) {
	tests := []struct {
		name string
		from domain.Coordinates
		to   domain.Coordinates
		want float64
	}{
		{name: "same point", from: domain.Coordinates{Lat: 48.1, Lon: 11.5}, to: domain.Coordinates{Lat: 48.1, Lon: 11.5}, want: 0},
		{name: "quarter meridian", from: domain.NorthPole, to: domain.Coordinates{Lat: 0, Lon: 0}, want: 10001.965729},
		{name: "one degree on the equator", from: domain.Coordinates{Lat: 0, Lon: 0}, to: domain.Coordinates{Lat: 0, Lon: 1}, want: 111.319491},
		{name: "nearly antipodal", from: domain.Coordinates{Lat: -30, Lon: 0}, to: domain.Coordinates{Lat: 29.9, Lon: 179.8}, want: 19989.832828},
		{name: "antipodal region lon 179.5", from: domain.Coordinates{Lat: 0, Lon: 0}, to: domain.Coordinates{Lat: 0.5, Lon: 179.5}, want: 19936.288579},
		{name: "antipodal region lon 179.7", from: domain.Coordinates{Lat: 0, Lon: 0}, to: domain.Coordinates{Lat: 0.5, Lon: 179.7}, want: 19944.127421},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, GeodesicKm(tt.from, tt.to), 0.001)
		})
	}
}

func TestGeodesicKmIsSymmetric(t *testing.T) {
	a := domain.Coordinates{Lat: 52.52, Lon: 13.405}
	b := domain.Coordinates{Lat: -33.8688, Lon: 151.2093}

	assert.InDelta(t, GeodesicKm(a, b), GeodesicKm(b, a), 1e-6)
}

func TestGeodesicKmIsContinuousNearAntipode(t *testing.T) {
	origin := domain.Coordinates{Lat: 0, Lon: 0}
	prev := GeodesicKm(origin, domain.Coordinates{Lat: 0.5, Lon: 179.4})

	for lon := 179.5; lon < 179.95; lon += 0.1 {
		got := GeodesicKm(origin, domain.Coordinates{Lat: 0.5, Lon: lon})
		assert.Greater(t, got, prev, "lon %.1f", lon)
		assert.Less(t, got-prev, 6.0, "lon %.1f", lon)
		prev = got
	}
}

func TestGeodesicDistanceProviderGetDistances(t *testing.T) {
	p := NewGeodesicDistanceProvider()
	dests := []domain.Coordinates{{Lat: 0, Lon: 0}, domain.NorthPole}

	got, err := p.GetDistances(context.Background(), domain.NorthPole, dests)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 10001.966, got[0].Kilometers, 0.001)
	assert.Zero(t, got[1].Kilometers)
}

func TestGeodesicDistanceProviderHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGeodesicDistanceProvider().GetDistance(ctx, domain.NorthPole, domain.Coordinates{})
	assert.ErrorIs(t, err, context.Canceled)
}
