package repositories

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"sleigh-route-service/internal/domain"
)

// MemoryPlanStore keeps plans in process memory. It is used when no database
// is configured and by tests.
type MemoryPlanStore struct {
	mu    sync.RWMutex
	plans map[string]domain.RoutePlan
}

func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{plans: make(map[string]domain.RoutePlan)}
}

func (m *MemoryPlanStore) SavePlan(_ context.Context, plan *domain.RoutePlan) error {
	if plan == nil || plan.ID == "" {
		return errors.New("save plan: plan id must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[plan.ID] = clonePlan(*plan)
	return nil
}

func (m *MemoryPlanStore) GetPlan(_ context.Context, id string) (*domain.RoutePlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	plan, ok := m.plans[id]
	if !ok {
		return nil, fmt.Errorf("get plan %s: %w", id, domain.ErrPlanNotFound)
	}
	out := clonePlan(plan)
	return &out, nil
}

// Entries share article and pieces pointers, which are never mutated.
func clonePlan(p domain.RoutePlan) domain.RoutePlan {
	p.Entries = slices.Clone(p.Entries)
	p.Undeliverable = slices.Clone(p.Undeliverable)
	return p
}
