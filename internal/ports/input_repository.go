package ports

import (
	"context"
	"sleigh-route-service/internal/domain"
)

// Port: a boundary for retrieving planning input from a data source.
type InputRepository interface {
	// Retrieve all children to be visited.
	ListChildren(ctx context.Context) ([]domain.Child, error)
	// Retrieve the article catalog, coal included.
	ListArticles(ctx context.Context) ([]domain.Article, error)
	// Retrieve the sleigh specification.
	GetSpecification(ctx context.Context) (domain.Specification, error)
}
