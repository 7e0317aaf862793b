package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleigh-route-service/internal/domain"
)

func TestMemoryPlanStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPlanStore()

	plan := &domain.RoutePlan{
		ID:      "p-1",
		Entries: []domain.RouteEntry{domain.ReloadEntry(1, 2), domain.DeliveryEntry(4)},
		Trips:   1,
	}
	require.NoError(t, store.SavePlan(ctx, plan))

	plan.Entries[1] = domain.DeliveryEntry(99)

	got, err := store.GetPlan(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Entries[1].Stop, "stored plan must not alias the caller's slice")

	_, err = store.GetPlan(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)

	assert.Error(t, store.SavePlan(ctx, &domain.RoutePlan{}))
}
