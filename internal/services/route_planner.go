package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"sleigh-route-service/internal/domain"
	"sleigh-route-service/internal/metrics"
	"sleigh-route-service/internal/platform/obs"
	"sleigh-route-service/internal/ports"
)

const defaultWorkers = 4

// Planner builds a single-sleigh tour with depot reloads.
//
// The visiting order is a greedy nearest-neighbour walk, optionally improved
// by 2-opt inside each trip. It does not attempt global optimization.
// A Planner is safe for concurrent use.
type Planner struct {
	provider          ports.DistanceProvider
	depot             domain.Coordinates
	window            time.Duration
	workers           int
	improve           bool
	skipUndeliverable bool
	strictWindow      bool
	now               func() time.Time
}

type Option func(*Planner)

// WithDepot moves the start, end and reload point. Default is the North Pole.
func WithDepot(c domain.Coordinates) Option { return func(p *Planner) { p.depot = c } }

// WithWindow sets the delivery window. Zero disables the window check.
func WithWindow(d time.Duration) Option { return func(p *Planner) { p.window = d } }

// WithWorkers bounds concurrent distance-matrix rows.
func WithWorkers(n int) Option { return func(p *Planner) { p.workers = n } }

// WithImprove enables 2-opt within each trip.
func WithImprove(on bool) Option { return func(p *Planner) { p.improve = on } }

// WithSkipUndeliverable drops children whose article never fits the sleigh
// instead of failing the plan.
func WithSkipUndeliverable(on bool) Option { return func(p *Planner) { p.skipUndeliverable = on } }

// WithStrictWindow turns an overrun of the delivery window into an error.
func WithStrictWindow(on bool) Option { return func(p *Planner) { p.strictWindow = on } }

func withClock(now func() time.Time) Option { return func(p *Planner) { p.now = now } }

func NewPlanner(provider ports.DistanceProvider, opts ...Option) *Planner {
	p := &Planner{
		provider: provider,
		depot:    domain.NorthPole,
		window:   domain.DefaultDeliveryWindow,
		workers:  defaultWorkers,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan assigns articles, orders the deliveries and inserts reloads.
//
// When the tour overruns the window in strict mode, Plan returns the plan
// together with a *domain.WindowExceededError so callers can still report it.
func (p *Planner) Plan(
	ctx context.Context,
	children []domain.Child,
	articles []domain.Article,
	spec domain.Specification,
) (plan *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "planner.Plan")(&err)

	started := time.Now()
	defer func() {
		status := "ok"
		var wErr *domain.WindowExceededError
		switch {
		case errors.As(err, &wErr):
			status = "overtime"
		case err != nil:
			status = "failed"
		case !plan.WithinWindow():
			status = "overtime"
		}
		reloads, elapsed := 0, time.Duration(0)
		if plan != nil {
			reloads, elapsed = plan.Reloads(), plan.Elapsed()
		}
		metrics.RecordPlan(time.Since(started), status, reloads, elapsed)
	}()

	if p.provider == nil {
		return nil, errors.New("plan route: distance provider is nil")
	}
	if err := p.depot.Validate(); err != nil {
		return nil, fmt.Errorf("plan route: depot: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	catalog, err := domain.NewCatalog(articles)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	assignments, err := AssignArticles(children, catalog)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	deliverable, tooLarge := splitDeliverable(assignments, spec)
	if len(tooLarge) > 0 && !p.skipUndeliverable {
		a := tooLarge[0]
		return nil, fmt.Errorf(
			"plan route: child %d: article %d (weight=%g volume=%g): %w",
			a.Child.ChildID, a.Article.ArticleID, a.Article.Weight, a.Article.Volume, domain.ErrArticleTooLarge,
		)
	}

	plan = &domain.RoutePlan{
		ID:        uuid.NewString(),
		CreatedAt: p.now().UTC(),
		Window:    p.window,
	}
	for _, a := range tooLarge {
		log.Warn().
			Int("child", a.Child.ChildID).
			Int("article", a.Article.ArticleID).
			Msg("article exceeds sleigh capacity, child skipped")
		plan.Undeliverable = append(plan.Undeliverable, a.Child.ChildID)
	}
	slices.Sort(plan.Undeliverable)

	points := make([]domain.Coordinates, 0, len(deliverable)+1)
	points = append(points, p.depot)
	for _, a := range deliverable {
		points = append(points, a.Child.Location)
	}

	matrix, err := buildDistanceMatrix(ctx, p.provider, points, p.workers)
	if err != nil {
		return nil, fmt.Errorf("plan route: build distance matrix: %w", err)
	}

	trips, err := nearestNeighborTrips(deliverable, spec, matrix)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	for i := range trips {
		if p.improve {
			trips[i].stops = improveTrip(trips[i].stops, matrix)
		}
		plan.TotalDistanceKm += tripKm(trips[i].stops, matrix)
		plan.Entries = append(plan.Entries, trips[i].loads...)
		for _, s := range trips[i].stops {
			plan.Entries = append(plan.Entries, domain.DeliveryEntry(deliverable[s-1].Child.ChildID))
		}
	}

	plan.Trips = len(trips)
	plan.TravelTime = spec.TravelTime(plan.TotalDistanceKm)
	plan.ServiceTime = time.Duration(len(deliverable)) * spec.TimePerStop
	for _, a := range deliverable {
		if a.Child.Naughty {
			plan.NaughtyCount++
		} else {
			plan.NiceCount++
		}
	}

	if err := domain.ReplayRoute(plan.Entries, deliverable, catalog, spec); err != nil {
		return nil, fmt.Errorf("plan route: verify: %w", err)
	}

	if wErr := plan.WindowError(); wErr != nil {
		if p.strictWindow {
			return plan, fmt.Errorf("plan route: %w", wErr)
		}
		log.Warn().Err(wErr).Str("plan_id", plan.ID).Msg("route does not fit the delivery window")
	}

	return plan, nil
}
