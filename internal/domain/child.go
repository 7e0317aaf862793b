package domain

import "fmt"

// Represents a single delivery target.
// A Child is visited exactly once and receives exactly one article: its wish
// when nice, coal when naughty.
type Child struct {
	ChildID  int
	Location Coordinates
	Wish     int
	Naughty  bool
}

// Validate checks the child id and position. Stop index 0 is reserved for the
// depot, so child ids must be positive.
func (c Child) Validate() error {
	if c.ChildID <= 0 {
		return fmt.Errorf("%w: child id must be positive, got %d", ErrInvalidChild, c.ChildID)
	}
	if err := c.Location.Validate(); err != nil {
		return fmt.Errorf("%w: child %d: %v", ErrInvalidChild, c.ChildID, err)
	}
	return nil
}

// ArticleID returns the article this child actually receives.
func (c Child) ArticleID() int {
	if c.Naughty {
		return CoalArticleID
	}
	return c.Wish
}

// Assignment pairs a child with the article handed over at its stop.
type Assignment struct {
	Child   Child
	Article Article
}
