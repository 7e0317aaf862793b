package domain

import (
	"fmt"
	"math"
	"sort"
)

// CoalArticleID is the substitute gift for naughty children.
const CoalArticleID = 0

// Represents a deliverable item type with per-piece weight and volume.
type Article struct {
	ArticleID int
	Weight    float64
	Volume    float64
}

func (a Article) Validate() error {
	if a.ArticleID < 0 {
		return fmt.Errorf("%w: article id must not be negative, got %d", ErrInvalidArticle, a.ArticleID)
	}
	if math.IsNaN(a.Weight) || a.Weight < 0 {
		return fmt.Errorf("%w: article %d weight must not be negative", ErrInvalidArticle, a.ArticleID)
	}
	if math.IsNaN(a.Volume) || a.Volume < 0 {
		return fmt.Errorf("%w: article %d volume must not be negative", ErrInvalidArticle, a.ArticleID)
	}
	return nil
}

// Catalog indexes articles by id.
type Catalog map[int]Article

// NewCatalog validates and indexes the given articles.
func NewCatalog(articles []Article) (Catalog, error) {
	c := make(Catalog, len(articles))
	for _, a := range articles {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if _, ok := c[a.ArticleID]; ok {
			return nil, fmt.Errorf("%w: duplicate article id %d", ErrInvalidArticle, a.ArticleID)
		}
		c[a.ArticleID] = a
	}
	return c, nil
}

// Lookup returns the article or ErrUnknownArticle.
func (c Catalog) Lookup(id int) (Article, error) {
	a, ok := c[id]
	if !ok {
		return Article{}, fmt.Errorf("%w: %d", ErrUnknownArticle, id)
	}
	return a, nil
}

// IDs returns the article ids in ascending order.
func (c Catalog) IDs() []int {
	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
