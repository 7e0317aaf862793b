package services

import (
	"fmt"
	"slices"

	"sleigh-route-service/internal/domain"
)

// trip is one depot departure: the reload rows emitted before leaving and the
// stops (distance matrix indices) visited before returning.
type trip struct {
	loads []domain.RouteEntry
	stops []int
}

// nearestNeighborTrips flies the greedy tour.
//
// From the current position the sleigh visits the nearest remaining child
// whose article is on board; equal distances go to the smaller child id.
// When nothing on board matches a remaining child it returns to the depot
// and reloads. The first reload happens at the depot before any travel.
func nearestNeighborTrips(
	assignments []domain.Assignment,
	spec domain.Specification,
	m distanceMatrix,
) ([]trip, error) {
	sleigh := domain.NewSleigh(spec)
	done := make([]bool, len(assignments))
	left := len(assignments)
	cur := 0

	var trips []trip
	for left > 0 {
		best := -1
		bestKm := 0.0

		// Select next stop by minimum distance (greedy step).
		for i, a := range assignments {
			if done[i] || !sleigh.Has(a.Article.ArticleID) {
				continue
			}
			km := m.km(cur, i+1)
			// Tie-breaker ensures deterministic ordering when distances are equal.
			if best == -1 || km < bestKm || (km == bestKm && a.Child.ChildID < assignments[best].Child.ChildID) {
				best, bestKm = i, km
			}
		}

		if best == -1 {
			loads, err := reload(sleigh, assignments, done)
			if err != nil {
				return nil, err
			}
			trips = append(trips, trip{loads: loads})
			cur = 0
			continue
		}

		if err := sleigh.Deliver(assignments[best].Article.ArticleID); err != nil {
			return nil, fmt.Errorf("deliver to child %d: %w", assignments[best].Child.ChildID, err)
		}
		done[best] = true
		left--
		cur = best + 1

		last := &trips[len(trips)-1]
		last.stops = append(last.stops, cur)
	}

	return trips, nil
}

// reload empties the sleigh and fills it for the remaining children. Article
// ids are walked in ascending order and each gets as many pieces as are still
// needed, limited by the weight and volume left.
func reload(sleigh *domain.Sleigh, assignments []domain.Assignment, done []bool) ([]domain.RouteEntry, error) {
	sleigh.Unload()

	needed := make(map[int]int)
	articles := make(map[int]domain.Article)
	remaining := 0
	for i, a := range assignments {
		if done[i] {
			continue
		}
		remaining++
		needed[a.Article.ArticleID]++
		articles[a.Article.ArticleID] = a.Article
	}

	ids := make([]int, 0, len(needed))
	for id := range needed {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var loads []domain.RouteEntry
	for _, id := range ids {
		pieces := min(sleigh.Room(articles[id]), needed[id])
		if pieces == 0 {
			continue
		}
		if err := sleigh.Load(articles[id], pieces); err != nil {
			return nil, fmt.Errorf("reload: %w", err)
		}
		loads = append(loads, domain.ReloadEntry(id, pieces))
	}

	if len(loads) == 0 {
		return nil, fmt.Errorf("reload: %w: nothing fits for %d remaining children", domain.ErrArticleTooLarge, remaining)
	}
	return loads, nil
}
