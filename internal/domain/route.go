package domain

import (
	"fmt"
	"time"
)

// DepotStop is the stop index of a reload row.
const DepotStop = 0

// Represents one row of the route file.
// A delivery row carries the child id as Stop and no article or pieces.
// A reload row has Stop == DepotStop and both Article and Pieces set.
type RouteEntry struct {
	Stop    int
	Article *int
	Pieces  *int
}

func DeliveryEntry(childID int) RouteEntry {
	return RouteEntry{Stop: childID}
}

func ReloadEntry(articleID, pieces int) RouteEntry {
	return RouteEntry{Stop: DepotStop, Article: &articleID, Pieces: &pieces}
}

func (e RouteEntry) IsReload() bool { return e.Stop == DepotStop }

// Validate enforces the row format: reload rows carry article and a
// non-negative whole number of pieces, delivery rows carry neither.
func (e RouteEntry) Validate() error {
	switch {
	case e.Stop < 0:
		return fmt.Errorf("%w: negative stop %d", ErrInvalidRouteEntry, e.Stop)
	case e.IsReload():
		if e.Article == nil || e.Pieces == nil {
			return fmt.Errorf("%w: reload row requires article and pieces", ErrInvalidRouteEntry)
		}
		if *e.Pieces < 0 {
			return fmt.Errorf("%w: reload of article %d has negative pieces %d", ErrInvalidRouteEntry, *e.Article, *e.Pieces)
		}
	default:
		if e.Article != nil || e.Pieces != nil {
			return fmt.Errorf("%w: delivery row for stop %d must not carry article or pieces", ErrInvalidRouteEntry, e.Stop)
		}
	}
	return nil
}

// Represents the planned tour of the sleigh.
// A RoutePlan is the output of the planner: ordered route rows plus aggregate
// distance, time and count metrics. It is immutable planning data.
type RoutePlan struct {
	ID              string
	CreatedAt       time.Time
	Entries         []RouteEntry
	Trips           int
	TotalDistanceKm float64
	TravelTime      time.Duration
	ServiceTime     time.Duration
	Window          time.Duration
	NiceCount       int
	NaughtyCount    int
	Undeliverable   []int
}

// Elapsed is travel plus dwell time, including the final return leg.
func (p *RoutePlan) Elapsed() time.Duration {
	return p.TravelTime + p.ServiceTime
}

func (p *RoutePlan) WithinWindow() bool {
	return p.Window <= 0 || p.Elapsed() <= p.Window
}

// Deliveries counts delivery rows.
func (p *RoutePlan) Deliveries() int {
	n := 0
	for _, e := range p.Entries {
		if !e.IsReload() {
			n++
		}
	}
	return n
}

// Reloads counts depot visits that loaded cargo. Consecutive reload rows form
// one depot visit.
func (p *RoutePlan) Reloads() int {
	n := 0
	prevReload := false
	for _, e := range p.Entries {
		if e.IsReload() && !prevReload {
			n++
		}
		prevReload = e.IsReload()
	}
	return n
}

// WindowError returns a *WindowExceededError when the tour overruns the window.
func (p *RoutePlan) WindowError() error {
	if p.WithinWindow() {
		return nil
	}

	required := 0.0
	if flight := p.Window - p.ServiceTime; flight > 0 {
		required = p.TotalDistanceKm / flight.Hours()
	}
	return &WindowExceededError{
		Elapsed:          p.Elapsed(),
		Window:           p.Window,
		RequiredSpeedKmh: required,
	}
}
