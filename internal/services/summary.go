package services

import (
	"time"

	"github.com/rs/zerolog"

	"sleigh-route-service/internal/domain"
)

// Summary is the statistics block reported for a plan.
type Summary struct {
	PlanID          string
	TotalDistanceKm float64
	Stops           int
	Reloads         int
	Trips           int
	TravelTime      time.Duration
	ServiceTime     time.Duration
	Elapsed         time.Duration
	Window          time.Duration
	WithinWindow    bool
	NiceCount       int
	NaughtyCount    int
	Undeliverable   int
}

func Summarize(plan *domain.RoutePlan) Summary {
	return Summary{
		PlanID:          plan.ID,
		TotalDistanceKm: plan.TotalDistanceKm,
		Stops:           plan.Deliveries(),
		Reloads:         plan.Reloads(),
		Trips:           plan.Trips,
		TravelTime:      plan.TravelTime,
		ServiceTime:     plan.ServiceTime,
		Elapsed:         plan.Elapsed(),
		Window:          plan.Window,
		WithinWindow:    plan.WithinWindow(),
		NiceCount:       plan.NiceCount,
		NaughtyCount:    plan.NaughtyCount,
		Undeliverable:   len(plan.Undeliverable),
	}
}

// MarshalZerologObject lets a Summary be logged with Event.Object.
func (s Summary) MarshalZerologObject(e *zerolog.Event) {
	e.Str("plan_id", s.PlanID).
		Float64("distance_km", s.TotalDistanceKm).
		Int("stops", s.Stops).
		Int("reloads", s.Reloads).
		Dur("travel", s.TravelTime).
		Dur("service", s.ServiceTime).
		Dur("elapsed", s.Elapsed).
		Dur("window", s.Window).
		Bool("within_window", s.WithinWindow).
		Int("nice", s.NiceCount).
		Int("naughty", s.NaughtyCount).
		Int("undeliverable", s.Undeliverable)
}
