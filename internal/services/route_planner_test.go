package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleigh-route-service/internal/adapters/distance"
	"sleigh-route-service/internal/domain"
	"sleigh-route-service/internal/ports"
)

var origin = domain.Coordinates{Lat: 0, Lon: 0}

func at(lat, lon float64) domain.Coordinates { return domain.Coordinates{Lat: lat, Lon: lon} }

func gridSpec(maxWeight float64) domain.Specification {
	return domain.Specification{
		MaxWeight:   maxWeight,
		MaxVolume:   100,
		SpeedKmh:    1,
		TimePerStop: time.Minute,
	}
}

var gridArticles = []domain.Article{
	{ArticleID: 0, Weight: 1, Volume: 1},
	{ArticleID: 1, Weight: 2, Volume: 1},
	{ArticleID: 9, Weight: 50, Volume: 1},
}

func newGridPlanner(opts ...Option) *Planner {
	opts = append([]Option{WithDepot(origin), WithWindow(24 * time.Hour)}, opts...)
	return NewPlanner(distance.NewGridDistanceProvider(), opts...)
}

func TestPlannerNearestNeighbourOrder(t *testing.T) {
	children := []domain.Child{
		{ChildID: 1, Location: at(0, 1), Wish: 1},
		{ChildID: 2, Location: at(0, 3), Wish: 1},
		{ChildID: 3, Location: at(0, 2), Wish: 1, Naughty: true},
	}

	plan, err := newGridPlanner().Plan(context.Background(), children, gridArticles, gridSpec(10))
	require.NoError(t, err)

	assert.Equal(t, []domain.RouteEntry{
		domain.ReloadEntry(0, 1),
		domain.ReloadEntry(1, 2),
		domain.DeliveryEntry(1),
		domain.DeliveryEntry(3),
		domain.DeliveryEntry(2),
	}, plan.Entries)

	assert.Equal(t, 1, plan.Trips)
	assert.InDelta(t, 6, plan.TotalDistanceKm, 1e-9)
	assert.Equal(t, 6*time.Hour, plan.TravelTime)
	assert.Equal(t, 3*time.Minute, plan.ServiceTime)
	assert.Equal(t, 2, plan.NiceCount)
	assert.Equal(t, 1, plan.NaughtyCount)
	assert.NotEmpty(t, plan.ID)
	assert.True(t, plan.WithinWindow())
}

func TestPlannerReloadsWhenCargoRunsOut(t *testing.T) {
	children := []domain.Child{
		{ChildID: 1, Location: at(0, 1), Wish: 1},
		{ChildID: 2, Location: at(0, 2), Wish: 1},
		{ChildID: 3, Location: at(0, 3), Wish: 1},
	}

	plan, err := newGridPlanner().Plan(context.Background(), children, gridArticles, gridSpec(5))
	require.NoError(t, err)

	assert.Equal(t, []domain.RouteEntry{
		domain.ReloadEntry(1, 2),
		domain.DeliveryEntry(1),
		domain.DeliveryEntry(2),
		domain.ReloadEntry(1, 1),
		domain.DeliveryEntry(3),
	}, plan.Entries)

	assert.Equal(t, 2, plan.Trips)
	assert.Equal(t, 2, plan.Reloads())
	// 1 + 1 + 2 back to the depot, then 3 out and 3 home.
	assert.InDelta(t, 10, plan.TotalDistanceKm, 1e-9)
}

func TestPlannerBreaksTiesBySmallerChildID(t *testing.T) {
	children := []domain.Child{
		{ChildID: 5, Location: at(0, 1), Wish: 1},
		{ChildID: 2, Location: at(1, 0), Wish: 1},
	}

	plan, err := newGridPlanner().Plan(context.Background(), children, gridArticles, gridSpec(10))
	require.NoError(t, err)

	assert.Equal(t, []domain.RouteEntry{
		domain.ReloadEntry(1, 2),
		domain.DeliveryEntry(2),
		domain.DeliveryEntry(5),
	}, plan.Entries)
	assert.InDelta(t, 2+math.Sqrt2, plan.TotalDistanceKm, 1e-9)
}

func TestPlannerTwoOptShortensTrip(t *testing.T) {
	children := []domain.Child{
		{ChildID: 1, Location: at(1, 0), Wish: 1},
		{ChildID: 2, Location: at(3, 0), Wish: 1},
		{ChildID: 3, Location: at(2, 1), Wish: 1},
	}
	ctx := context.Background()

	greedy, err := newGridPlanner().Plan(ctx, children, gridArticles, gridSpec(10))
	require.NoError(t, err)
	assert.InDelta(t, 1+2*math.Sqrt2+3, greedy.TotalDistanceKm, 1e-9)

	improved, err := newGridPlanner(WithImprove(true)).Plan(ctx, children, gridArticles, gridSpec(10))
	require.NoError(t, err)
	assert.InDelta(t, 1+2+math.Sqrt2+math.Sqrt(5), improved.TotalDistanceKm, 1e-9)
	assert.Less(t, improved.TotalDistanceKm, greedy.TotalDistanceKm)

	assert.Equal(t, []domain.RouteEntry{
		domain.ReloadEntry(1, 3),
		domain.DeliveryEntry(1),
		domain.DeliveryEntry(2),
		domain.DeliveryEntry(3),
	}, improved.Entries)
}

func TestPlannerUndeliverableArticles(t *testing.T) {
	children := []domain.Child{
		{ChildID: 1, Location: at(0, 1), Wish: 1},
		{ChildID: 2, Location: at(0, 2), Wish: 9},
	}
	ctx := context.Background()

	_, err := newGridPlanner().Plan(ctx, children, gridArticles, gridSpec(10))
	require.ErrorIs(t, err, domain.ErrArticleTooLarge)
	assert.ErrorContains(t, err, "child 2")

	plan, err := newGridPlanner(WithSkipUndeliverable(true)).Plan(ctx, children, gridArticles, gridSpec(10))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, plan.Undeliverable)
	assert.Equal(t, []domain.RouteEntry{domain.ReloadEntry(1, 1), domain.DeliveryEntry(1)}, plan.Entries)
}

func TestPlannerLoadsFeatherweightArticles(t *testing.T) {
	children := []domain.Child{{ChildID: 1, Location: at(0, 1), Wish: 5}}
	articles := []domain.Article{{ArticleID: 5, Weight: 1e-18, Volume: 0}}

	plan, err := newGridPlanner().Plan(context.Background(), children, articles, gridSpec(20))
	require.NoError(t, err)
	assert.Equal(t, []domain.RouteEntry{domain.ReloadEntry(5, 1), domain.DeliveryEntry(1)}, plan.Entries)
}

func TestPlannerDeliveryWindow(t *testing.T) {
	children := []domain.Child{
		{ChildID: 1, Location: at(0, 4), Wish: 1},
		{ChildID: 2, Location: at(0, 5), Wish: 1},
	}
	ctx := context.Background()

	plan, err := newGridPlanner(WithWindow(7*time.Hour)).Plan(ctx, children, gridArticles, gridSpec(10))
	require.NoError(t, err, "overrun is only a warning by default")
	assert.False(t, plan.WithinWindow())

	plan, err = newGridPlanner(WithWindow(7*time.Hour), WithStrictWindow(true)).Plan(ctx, children, gridArticles, gridSpec(10))
	var wErr *domain.WindowExceededError
	require.ErrorAs(t, err, &wErr)
	require.NotNil(t, plan)
	assert.Equal(t, 10*time.Hour+2*time.Minute, wErr.Elapsed)
	assert.Equal(t, 7*time.Hour, wErr.Window)
	assert.InDelta(t, 10/(7*time.Hour-2*time.Minute).Hours(), wErr.RequiredSpeedKmh, 1e-9)
}

func TestPlannerInputErrors(t *testing.T) {
	ctx := context.Background()
	p := newGridPlanner()

	tests := []struct {
		name     string
		children []domain.Child
		spec     domain.Specification
		want     error
	}{
		{
			name:     "duplicate child",
			children: []domain.Child{{ChildID: 1, Wish: 1}, {ChildID: 1, Wish: 1}},
			spec:     gridSpec(10),
			want:     domain.ErrDuplicateChild,
		},
		{
			name:     "unknown wish",
			children: []domain.Child{{ChildID: 1, Wish: 42}},
			spec:     gridSpec(10),
			want:     domain.ErrUnknownArticle,
		},
		{
			name:     "child id zero",
			children: []domain.Child{{ChildID: 0, Wish: 1}},
			spec:     gridSpec(10),
			want:     domain.ErrInvalidChild,
		},
		{
			name:     "zero speed",
			children: []domain.Child{{ChildID: 1, Wish: 1}},
			spec:     domain.Specification{MaxWeight: 1, MaxVolume: 1},
			want:     domain.ErrInvalidSpecification,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Plan(ctx, tt.children, gridArticles, tt.spec)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPlannerWithoutChildren(t *testing.T) {
	plan, err := newGridPlanner().Plan(context.Background(), nil, gridArticles, gridSpec(10))
	require.NoError(t, err)
	assert.Empty(t, plan.Entries)
	assert.Zero(t, plan.Trips)
	assert.Zero(t, plan.TotalDistanceKm)
}

func TestPlannerPropagatesDistanceErrors(t *testing.T) {
	p := NewPlanner(distance.NewMockDistanceProvider(nil), WithDepot(origin))
	children := []domain.Child{{ChildID: 1, Location: at(0, 1), Wish: 1}}

	_, err := p.Plan(context.Background(), children, gridArticles, gridSpec(10))
	assert.ErrorContains(t, err, "missing pair")
}

// singleProvider hides GetDistances so the pairwise fallback is used.
type singleProvider struct{ ports.DistanceProvider }

func TestPlannerWithPairwiseProvider(t *testing.T) {
	pairs := []distance.MockPair{
		{From: origin, To: at(0, 1), Kilometers: 10},
		{From: origin, To: at(0, 2), Kilometers: 20},
		{From: at(0, 1), To: at(0, 2), Kilometers: 5},
	}
	p := NewPlanner(singleProvider{distance.NewMockDistanceProvider(pairs)}, WithDepot(origin), WithWorkers(1))
	children := []domain.Child{
		{ChildID: 7, Location: at(0, 2), Wish: 1},
		{ChildID: 8, Location: at(0, 1), Wish: 1},
	}

	plan, err := p.Plan(context.Background(), children, gridArticles, gridSpec(100))
	require.NoError(t, err)
	assert.Equal(t, []domain.RouteEntry{
		domain.ReloadEntry(1, 2),
		domain.DeliveryEntry(8),
		domain.DeliveryEntry(7),
	}, plan.Entries)
	assert.InDelta(t, 35, plan.TotalDistanceKm, 1e-9)
}

func TestPlannerGeodesicFromNorthPole(t *testing.T) {
	children := []domain.Child{
		{ChildID: 1, Location: at(52.52, 13.405), Wish: 1},
		{ChildID: 2, Location: at(48.137, 11.575), Wish: 1, Naughty: true},
		{ChildID: 3, Location: at(59.3293, 18.0686), Wish: 1},
		{ChildID: 4, Location: at(40.4168, -3.7038), Wish: 1},
	}
	spec := domain.Specification{MaxWeight: 4, MaxVolume: 100, SpeedKmh: 10000, TimePerStop: 2 * time.Minute}
	now := time.Date(2026, 12, 24, 18, 0, 0, 0, time.UTC)

	p := NewPlanner(distance.NewGeodesicDistanceProvider(), WithImprove(true), withClock(func() time.Time { return now }))
	plan, err := p.Plan(context.Background(), children, gridArticles, spec)
	require.NoError(t, err)

	assert.Equal(t, now, plan.CreatedAt)
	assert.Equal(t, domain.DefaultDeliveryWindow, plan.Window)
	assert.True(t, plan.Entries[0].IsReload())
	assert.Equal(t, 4, plan.Deliveries())
	assert.GreaterOrEqual(t, plan.Reloads(), 2)
	// Stockholm is the closest to the pole.
	for _, e := range plan.Entries {
		if !e.IsReload() {
			assert.Equal(t, 3, e.Stop)
			break
		}
	}
	assert.True(t, plan.WithinWindow())
}

func TestPlannerReplayIsDeterministic(t *testing.T) {
	children := make([]domain.Child, 0, 30)
	for i := 1; i <= 30; i++ {
		children = append(children, domain.Child{
			ChildID:  i,
			Location: at(float64((i*7)%11), float64((i*5)%13)),
			Wish:     1,
			Naughty:  i%4 == 0,
		})
	}
	ctx := context.Background()
	p := newGridPlanner(WithImprove(true), WithWorkers(3))

	first, err := p.Plan(ctx, children, gridArticles, gridSpec(9))
	require.NoError(t, err)
	second, err := p.Plan(ctx, children, gridArticles, gridSpec(9))
	require.NoError(t, err)

	assert.Equal(t, first.Entries, second.Entries)
	assert.Equal(t, 30, first.Deliveries())
	assert.Equal(t, 23, first.NiceCount)
	assert.Equal(t, 7, first.NaughtyCount)
}
