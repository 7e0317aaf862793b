package services

import (
	"fmt"

	"sleigh-route-service/internal/domain"
)

// AssignArticles decides which article every child receives: the wish for
// nice children, coal for naughty ones. Assignments keep the input order.
func AssignArticles(children []domain.Child, catalog domain.Catalog) ([]domain.Assignment, error) {
	seen := make(map[int]struct{}, len(children))
	out := make([]domain.Assignment, 0, len(children))

	for _, c := range children {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("assign articles: %w", err)
		}
		if _, dup := seen[c.ChildID]; dup {
			return nil, fmt.Errorf("assign articles: %w: %d", domain.ErrDuplicateChild, c.ChildID)
		}
		seen[c.ChildID] = struct{}{}

		article, err := catalog.Lookup(c.ArticleID())
		if err != nil {
			return nil, fmt.Errorf("assign articles: child %d: %w", c.ChildID, err)
		}
		out = append(out, domain.Assignment{Child: c, Article: article})
	}

	return out, nil
}

// splitDeliverable separates assignments whose article fits into an empty
// sleigh from those that never can.
func splitDeliverable(assignments []domain.Assignment, spec domain.Specification) (ok, tooLarge []domain.Assignment) {
	for _, a := range assignments {
		if spec.Fits(a.Article) {
			ok = append(ok, a)
		} else {
			tooLarge = append(tooLarge, a)
		}
	}
	return ok, tooLarge
}
