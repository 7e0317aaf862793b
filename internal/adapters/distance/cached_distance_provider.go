package distance

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"sleigh-route-service/internal/domain"
	"sleigh-route-service/internal/metrics"
	"sleigh-route-service/internal/platform/obs"
	"sleigh-route-service/internal/ports"
)

// CachedDistanceProvider puts a persistent DistanceCache in front of another
// DistanceMatrixProvider.
//
// It coordinates:
//   - Coordinate key normalization
//   - Cache lookups for one origin and many destinations
//   - Computing only the misses and writing them back
//
// Cache write failures are logged and do not fail the lookup.
type CachedDistanceProvider struct {
	next  ports.DistanceMatrixProvider
	cache ports.DistanceCache
}

func NewCachedDistanceProvider(next ports.DistanceMatrixProvider, cache ports.DistanceCache) *CachedDistanceProvider {
	return &CachedDistanceProvider{next: next, cache: cache}
}

// Delegate to batched path to reuse caching logic.
func (c *CachedDistanceProvider) GetDistance(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.DistanceResult, error) {
	results, err := c.GetDistances(ctx, origin, []domain.Coordinates{destination})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("get distance %s -> %s: %w", origin, destination, err)
	}
	return results[0], nil
}

// Compute distances from a single origin to many destinations.
func (c *CachedDistanceProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (_ []ports.DistanceResult, err error) {
	defer obs.Time(ctx, "distance.cached.GetDistances")(&err)

	if len(destinations) == 0 {
		return []ports.DistanceResult{}, nil
	}

	originKey := origin.Key()

	seen := make(map[string]struct{}, len(destinations))
	keys := make([]string, 0, len(destinations))
	for _, d := range destinations {
		k := d.Key()
		if k == originKey {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	hits := map[string]ports.DistanceResult{}
	if c.cache != nil && len(keys) > 0 {
		hits, err = c.cache.GetMany(ctx, originKey, keys)
		if err != nil {
			return nil, fmt.Errorf("distance cache get: %w", err)
		}
	}

	missCoords := make([]domain.Coordinates, 0, len(keys))
	missKeys := make([]string, 0, len(keys))
	queued := make(map[string]struct{}, len(keys))
	for _, d := range destinations {
		k := d.Key()
		if k == originKey {
			continue
		}
		if _, ok := hits[k]; ok {
			continue
		}
		if _, ok := queued[k]; ok {
			continue
		}
		queued[k] = struct{}{}
		missKeys = append(missKeys, k)
		missCoords = append(missCoords, d)
	}

	metrics.RecordDistanceCache(len(keys)-len(missKeys), len(missKeys))

	fresh := make(map[string]ports.DistanceResult, len(missKeys))
	if len(missCoords) > 0 {
		fetched, err := c.next.GetDistances(ctx, origin, missCoords)
		if err != nil {
			return nil, fmt.Errorf("compute %d distances from %s: %w", len(missCoords), origin, err)
		}
		if len(fetched) != len(missCoords) {
			return nil, fmt.Errorf("distance provider returned %d results for %d destinations", len(fetched), len(missCoords))
		}
		for i, k := range missKeys {
			fresh[k] = fetched[i]
		}

		if c.cache != nil {
			if err := c.cache.PutMany(ctx, originKey, fresh); err != nil {
				log.Warn().Err(err).Str("origin", originKey).Msg("distance cache write failed")
			}
		}
	}

	out := make([]ports.DistanceResult, len(destinations))
	for i, d := range destinations {
		k := d.Key()
		if k == originKey {
			continue
		}
		if r, ok := hits[k]; ok {
			out[i] = r
			continue
		}
		out[i] = fresh[k]
	}

	return out, nil
}
