package distance

import (
	"context"

	"github.com/tidwall/geodesic"

	"sleigh-route-service/internal/domain"
	"sleigh-route-service/internal/ports"
)

// GeodesicDistanceProvider computes ellipsoidal (WGS84) distances locally.
// It implements DistanceMatrixProvider and is safe for concurrent use.
type GeodesicDistanceProvider struct{}

func NewGeodesicDistanceProvider() *GeodesicDistanceProvider {
	return &GeodesicDistanceProvider{}
}

func (g *GeodesicDistanceProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.DistanceResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.DistanceResult{}, err
	}
	return ports.DistanceResult{Kilometers: GeodesicKm(origin, destination)}, nil
}

func (g *GeodesicDistanceProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) ([]ports.DistanceResult, error) {
	out := make([]ports.DistanceResult, len(destinations))
	for i, d := range destinations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = ports.DistanceResult{Kilometers: GeodesicKm(origin, d)}
	}
	return out, nil
}

// GeodesicKm returns the shortest WGS84 distance in kilometres. The inverse
// problem is solved with Karney's method, which converges for every pair
// including nearly antipodal points.
func GeodesicKm(p1, p2 domain.Coordinates) float64 {
	if p1 == p2 {
		return 0
	}
	var meters float64
	geodesic.WGS84.Inverse(p1.Lat, p1.Lon, p2.Lat, p2.Lon, &meters, nil, nil)
	return meters / 1000
}
