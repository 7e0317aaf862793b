package csvfile

import (
	"context"

	"sleigh-route-service/internal/domain"
	"sleigh-route-service/internal/platform/obs"
)

// InputRepository serves planner input straight from the three CSV files.
// Files are re-read on every call so edits are picked up without a restart.
type InputRepository struct {
	ChildrenPath      string
	ArticlesPath      string
	SpecificationPath string
}

func NewInputRepository(children, articles, specification string) *InputRepository {
	return &InputRepository{
		ChildrenPath:      children,
		ArticlesPath:      articles,
		SpecificationPath: specification,
	}
}

func (r *InputRepository) ListChildren(ctx context.Context) (_ []domain.Child, err error) {
	defer obs.Time(ctx, "csv.ListChildren")(&err)
	return LoadChildren(r.ChildrenPath)
}

func (r *InputRepository) ListArticles(ctx context.Context) (_ []domain.Article, err error) {
	defer obs.Time(ctx, "csv.ListArticles")(&err)
	return LoadArticles(r.ArticlesPath)
}

func (r *InputRepository) GetSpecification(ctx context.Context) (_ domain.Specification, err error) {
	defer obs.Time(ctx, "csv.GetSpecification")(&err)
	return LoadSpecification(r.SpecificationPath)
}
