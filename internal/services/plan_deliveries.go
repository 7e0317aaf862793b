package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"sleigh-route-service/internal/domain"
	"sleigh-route-service/internal/ports"
)

// PlanInput is everything the planner needs from an InputRepository.
type PlanInput struct {
	Children      []domain.Child
	Articles      []domain.Article
	Specification domain.Specification
}

// LoadInput reads children, articles and the specification concurrently.
func LoadInput(ctx context.Context, repo ports.InputRepository) (PlanInput, error) {
	if repo == nil {
		return PlanInput{}, errors.New("load input: repository is nil")
	}

	var in PlanInput
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if in.Children, err = repo.ListChildren(ctx); err != nil {
			return fmt.Errorf("list children: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if in.Articles, err = repo.ListArticles(ctx); err != nil {
			return fmt.Errorf("list articles: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if in.Specification, err = repo.GetSpecification(ctx); err != nil {
			return fmt.Errorf("get specification: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return PlanInput{}, fmt.Errorf("load input: %w", err)
	}
	return in, nil
}

// PlanDeliveries loads the input from repo and plans the tour.
func PlanDeliveries(ctx context.Context, repo ports.InputRepository, planner *Planner) (*domain.RoutePlan, error) {
	in, err := LoadInput(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	plan, err := planner.Plan(ctx, in.Children, in.Articles, in.Specification)
	if err != nil {
		return plan, fmt.Errorf("plan deliveries: %w", err)
	}
	return plan, nil
}

// ListAssignments reports which article every child receives.
func ListAssignments(ctx context.Context, repo ports.InputRepository) ([]domain.Assignment, error) {
	in, err := LoadInput(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	catalog, err := domain.NewCatalog(in.Articles)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	assignments, err := AssignArticles(in.Children, catalog)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}
