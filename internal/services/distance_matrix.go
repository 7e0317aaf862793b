package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"sleigh-route-service/internal/domain"
	"sleigh-route-service/internal/ports"
)

// distanceMatrix holds kilometres between every pair of points. Row and
// column 0 is the depot, index i > 0 is the i-th deliverable assignment.
type distanceMatrix [][]float64

func (m distanceMatrix) km(from, to int) float64 { return m[from][to] }

// buildDistanceMatrix fetches one origin->all row per point, running at most
// workers rows concurrently. The first failure cancels the remaining rows.
func buildDistanceMatrix(
	ctx context.Context,
	provider ports.DistanceProvider,
	points []domain.Coordinates,
	workers int,
) (distanceMatrix, error) {
	if workers < 1 {
		workers = 1
	}

	matrix := make(distanceMatrix, len(points))
	mp, hasMatrix := provider.(ports.DistanceMatrixProvider)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range points {
		g.Go(func() error {
			row := make([]float64, len(points))

			// Prefer a single origin->many lookup when supported.
			if hasMatrix {
				results, err := mp.GetDistances(ctx, points[i], points)
				if err != nil {
					return fmt.Errorf("distances from %s: %w", points[i], err)
				}
				if len(results) != len(points) {
					return fmt.Errorf("distances from %s: got %d results for %d points", points[i], len(results), len(points))
				}
				for j, r := range results {
					row[j] = r.Kilometers
				}
			} else {
				for j := range points {
					if i == j {
						continue
					}
					r, err := provider.GetDistance(ctx, points[i], points[j])
					if err != nil {
						return fmt.Errorf("distance %s -> %s: %w", points[i], points[j], err)
					}
					row[j] = r.Kilometers
				}
			}

			row[i] = 0
			matrix[i] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return matrix, nil
}
