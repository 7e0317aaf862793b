package ports

import (
	"context"
	"sleigh-route-service/internal/domain"
)

// Port: persistence for computed route plans.
type PlanStore interface {
	SavePlan(ctx context.Context, plan *domain.RoutePlan) error
	// Return domain.ErrPlanNotFound when no plan has the id.
	GetPlan(ctx context.Context, id string) (*domain.RoutePlan, error)
}
