package dto

import (
	"time"

	"sleigh-route-service/internal/domain"
	"sleigh-route-service/internal/services"
)

// PlanRequest overrides planner switches for one run. Omitted fields keep
// the server defaults.
type PlanRequest struct {
	Improve           *bool `json:"improve"`
	SkipUndeliverable *bool `json:"skip_undeliverable"`
	StrictWindow      *bool `json:"strict_window"`
}

type RouteEntryResponse struct {
	Stop    int  `json:"stop"`
	Article *int `json:"article,omitempty"`
	Pieces  *int `json:"pieces,omitempty"`
}

type PlanSummaryResponse struct {
	TotalDistanceKm float64 `json:"total_distance_km"`
	Stops           int     `json:"stops"`
	Reloads         int     `json:"reloads"`
	Trips           int     `json:"trips"`
	TravelMinutes   float64 `json:"travel_minutes"`
	ServiceMinutes  float64 `json:"service_minutes"`
	ElapsedMinutes  float64 `json:"elapsed_minutes"`
	WindowMinutes   float64 `json:"window_minutes"`
	WithinWindow    bool    `json:"within_window"`
	NiceCount       int     `json:"nice_count"`
	NaughtyCount    int     `json:"naughty_count"`
}

type PlanResponse struct {
	ID            string               `json:"id"`
	CreatedAt     time.Time            `json:"created_at"`
	Summary       PlanSummaryResponse  `json:"summary"`
	Undeliverable []int                `json:"undeliverable"`
	Entries       []RouteEntryResponse `json:"entries"`
}

func NewPlanResponse(p *domain.RoutePlan) PlanResponse {
	s := services.Summarize(p)

	res := PlanResponse{
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
		Summary: PlanSummaryResponse{
			TotalDistanceKm: s.TotalDistanceKm,
			Stops:           s.Stops,
			Reloads:         s.Reloads,
			Trips:           s.Trips,
			TravelMinutes:   s.TravelTime.Minutes(),
			ServiceMinutes:  s.ServiceTime.Minutes(),
			ElapsedMinutes:  s.Elapsed.Minutes(),
			WindowMinutes:   s.Window.Minutes(),
			WithinWindow:    s.WithinWindow,
			NiceCount:       s.NiceCount,
			NaughtyCount:    s.NaughtyCount,
		},
		Undeliverable: make([]int, 0, len(p.Undeliverable)),
		Entries:       make([]RouteEntryResponse, 0, len(p.Entries)),
	}
	res.Undeliverable = append(res.Undeliverable, p.Undeliverable...)
	for _, e := range p.Entries {
		res.Entries = append(res.Entries, RouteEntryResponse{Stop: e.Stop, Article: e.Article, Pieces: e.Pieces})
	}
	return res
}
