package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sleigh-route-service/internal/adapters/csvfile"
	"sleigh-route-service/internal/domain"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createChildrenQuery := `
	CREATE TABLE IF NOT EXISTS children (
		child_id INTEGER PRIMARY KEY CHECK (child_id > 0),
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		wish INTEGER NOT NULL,
		naughty BOOLEAN NOT NULL DEFAULT FALSE
	);
	`

	createArticlesQuery := `
	CREATE TABLE IF NOT EXISTS articles (
		article_id INTEGER PRIMARY KEY CHECK (article_id >= 0),
		weight DOUBLE PRECISION NOT NULL CHECK (weight >= 0),
		volume DOUBLE PRECISION NOT NULL CHECK (volume >= 0)
	);
	`

	createSpecificationsQuery := `
	CREATE TABLE IF NOT EXISTS specifications (
		meta_data TEXT PRIMARY KEY,
		value DOUBLE PRECISION NOT NULL
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (origin, destination)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_distance_cache_destination_origin
	ON distance_cache(destination, origin);
	`

	createRoutePlansQuery := `
	CREATE TABLE IF NOT EXISTS route_plans (
		plan_id TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		trips INTEGER NOT NULL,
		total_distance_km DOUBLE PRECISION NOT NULL,
		travel_ms BIGINT NOT NULL,
		service_ms BIGINT NOT NULL,
		window_ms BIGINT NOT NULL,
		nice_count INTEGER NOT NULL,
		naughty_count INTEGER NOT NULL,
		undeliverable JSONB NOT NULL DEFAULT '[]'
	);
	`

	createRouteEntriesQuery := `
	CREATE TABLE IF NOT EXISTS route_entries (
		plan_id TEXT NOT NULL REFERENCES route_plans(plan_id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		stop INTEGER NOT NULL,
		article INTEGER,
		pieces INTEGER,
		PRIMARY KEY (plan_id, seq)
	);
	`

	statements := []string{
		createChildrenQuery,
		createArticlesQuery,
		createSpecificationsQuery,
		createDistanceCacheQuery,
		createIndexQuery,
		createRoutePlansQuery,
		createRouteEntriesQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedInput is the planner input loaded into the database by Seed.
type SeedInput struct {
	Children      []domain.Child
	Articles      []domain.Article
	Specification domain.Specification
}

// Load the three input CSV files into a SeedInput.
func LoadSeedFromCSV(childrenPath, articlesPath, specPath string) (SeedInput, error) {
	children, err := csvfile.LoadChildren(childrenPath)
	if err != nil {
		return SeedInput{}, fmt.Errorf("seed: %w", err)
	}
	articles, err := csvfile.LoadArticles(articlesPath)
	if err != nil {
		return SeedInput{}, fmt.Errorf("seed: %w", err)
	}
	spec, err := csvfile.LoadSpecification(specPath)
	if err != nil {
		return SeedInput{}, fmt.Errorf("seed: %w", err)
	}
	return SeedInput{Children: children, Articles: articles, Specification: spec}, nil
}

// Replace the stored planner input with in, in a single transaction.
func Seed(ctx context.Context, db *sql.DB, in SeedInput) error {
	if db == nil {
		return errors.New("seed: DB is nil")
	}
	if err := in.Specification.Validate(); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"children", "articles", "specifications"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("seed: clear %s: %w", table, err)
		}
	}

	childStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO children (child_id, latitude, longitude, wish, naughty)
	VALUES ($1, $2, $3, $4, $5);
	`)
	if err != nil {
		return fmt.Errorf("seed children: prepare insert: %w", err)
	}
	defer childStmt.Close()

	for _, c := range in.Children {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("seed children: %w", err)
		}
		if _, err := childStmt.ExecContext(ctx, c.ChildID, c.Location.Lat, c.Location.Lon, c.Wish, c.Naughty); err != nil {
			return fmt.Errorf("seed children: insert child_id=%d: %w", c.ChildID, err)
		}
	}

	articleStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO articles (article_id, weight, volume)
	VALUES ($1, $2, $3);
	`)
	if err != nil {
		return fmt.Errorf("seed articles: prepare insert: %w", err)
	}
	defer articleStmt.Close()

	for _, a := range in.Articles {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("seed articles: %w", err)
		}
		if _, err := articleStmt.ExecContext(ctx, a.ArticleID, a.Weight, a.Volume); err != nil {
			return fmt.Errorf("seed articles: insert article_id=%d: %w", a.ArticleID, err)
		}
	}

	for label, value := range in.Specification.MetadataValues() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO specifications (meta_data, value) VALUES ($1, $2);`,
			label, value,
		); err != nil {
			return fmt.Errorf("seed specification: insert %q: %w", label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
