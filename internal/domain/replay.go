package domain

import (
	"errors"
	"fmt"
)

// ReplayRoute re-flies a sequence of route rows against the specification and
// verifies that capacity is never exceeded, that every delivered article is on
// board, and that each assigned child is visited exactly once.
func ReplayRoute(entries []RouteEntry, assignments []Assignment, catalog Catalog, spec Specification) error {
	byChild := make(map[int]Assignment, len(assignments))
	for _, a := range assignments {
		byChild[a.Child.ChildID] = a
	}

	sleigh := NewSleigh(spec)
	visited := make(map[int]struct{}, len(assignments))

	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("replay route: row %d: %w", i+1, err)
		}

		if e.IsReload() {
			article, err := catalog.Lookup(*e.Article)
			if err != nil {
				return fmt.Errorf("replay route: row %d: %w", i+1, err)
			}
			if err := sleigh.Load(article, *e.Pieces); err != nil {
				return fmt.Errorf("replay route: row %d: %w", i+1, err)
			}
			continue
		}

		a, ok := byChild[e.Stop]
		if !ok {
			return fmt.Errorf("replay route: row %d: %w: stop %d is not an assigned child", i+1, ErrInvalidChild, e.Stop)
		}
		if _, dup := visited[e.Stop]; dup {
			return fmt.Errorf("replay route: row %d: %w: child %d visited twice", i+1, ErrDuplicateChild, e.Stop)
		}
		if err := sleigh.Deliver(a.Article.ArticleID); err != nil {
			return fmt.Errorf("replay route: row %d: child %d: %w", i+1, e.Stop, err)
		}
		visited[e.Stop] = struct{}{}
	}

	var missing []error
	for _, a := range assignments {
		if _, ok := visited[a.Child.ChildID]; !ok {
			missing = append(missing, fmt.Errorf("child %d never visited", a.Child.ChildID))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("replay route: %w", errors.Join(missing...))
	}

	return nil
}
