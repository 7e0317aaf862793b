package ports

import (
	"context"
	"sleigh-route-service/internal/domain"
)

// Flight distance between two locations.
type DistanceResult struct {
	Kilometers float64
}

// Contract for retrieving travel distance between locations.
type DistanceProvider interface {
	// Return the distance between two locations.
	GetDistance(ctx context.Context, origin, destination domain.Coordinates) (DistanceResult, error)
}
