package ports

import "context"

// Persistent origin->destination distance cache keyed by Coordinates.Key.
type DistanceCache interface {
	// Return cached results for the destinations that are present.
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]DistanceResult, error)
	// Store results for one origin.
	PutMany(ctx context.Context, origin string, results map[string]DistanceResult) error
}
