package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sleigh-route-service/internal/domain"
	"sleigh-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the InputRepository port.
type PostgresInputRepository struct{ DB *sql.DB }

func NewPostgresInputRepository(db *sql.DB) *PostgresInputRepository {
	return &PostgresInputRepository{DB: db}
}

// Return all children ordered by id.
func (p *PostgresInputRepository) ListChildren(ctx context.Context) (_ []domain.Child, err error) {
	defer obs.Time(ctx, "pg.ListChildren")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres input repository: DB is nil")
	}

	query := `
	SELECT
		child_id,
		latitude,
		longitude,
		wish,
		naughty
	FROM children
	ORDER BY child_id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list children: query children table: %w", err)
	}
	defer rows.Close()

	children := make([]domain.Child, 0, 64)
	for rows.Next() {
		var c domain.Child
		if err := rows.Scan(&c.ChildID, &c.Location.Lat, &c.Location.Lon, &c.Wish, &c.Naughty); err != nil {
			return nil, fmt.Errorf("list children: scan row: %w", err)
		}
		children = append(children, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list children: row iteration: %w", err)
	}

	return children, nil
}

// Return the article catalog ordered by id.
func (p *PostgresInputRepository) ListArticles(ctx context.Context) (_ []domain.Article, err error) {
	defer obs.Time(ctx, "pg.ListArticles")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres input repository: DB is nil")
	}

	query := `
	SELECT
		article_id,
		weight,
		volume
	FROM articles
	ORDER BY article_id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list articles: query articles table: %w", err)
	}
	defer rows.Close()

	articles := make([]domain.Article, 0, 16)
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ArticleID, &a.Weight, &a.Volume); err != nil {
			return nil, fmt.Errorf("list articles: scan row: %w", err)
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: row iteration: %w", err)
	}

	return articles, nil
}

// Assemble the specification from its metadata rows.
func (p *PostgresInputRepository) GetSpecification(ctx context.Context) (_ domain.Specification, err error) {
	defer obs.Time(ctx, "pg.GetSpecification")(&err)

	if p.DB == nil {
		return domain.Specification{}, errors.New("postgres input repository: DB is nil")
	}

	rows, err := p.DB.QueryContext(ctx, `SELECT meta_data, value FROM specifications;`)
	if err != nil {
		return domain.Specification{}, fmt.Errorf("get specification: query specifications table: %w", err)
	}
	defer rows.Close()

	values := make(map[string]float64, 4)
	for rows.Next() {
		var label string
		var value float64
		if err := rows.Scan(&label, &value); err != nil {
			return domain.Specification{}, fmt.Errorf("get specification: scan row: %w", err)
		}
		values[label] = value
	}
	if err := rows.Err(); err != nil {
		return domain.Specification{}, fmt.Errorf("get specification: row iteration: %w", err)
	}

	spec, err := domain.SpecificationFromMetadata(values)
	if err != nil {
		return domain.Specification{}, fmt.Errorf("get specification: %w", err)
	}
	return spec, nil
}
