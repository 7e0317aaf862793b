package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sleigh-route-service/internal/domain"
	"sleigh-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the PlanStore port.
type PostgresPlanStore struct{ DB *sql.DB }

func NewPostgresPlanStore(db *sql.DB) *PostgresPlanStore {
	return &PostgresPlanStore{DB: db}
}

// Persist a plan with its route rows. Saving an existing id replaces it.
func (p *PostgresPlanStore) SavePlan(ctx context.Context, plan *domain.RoutePlan) (err error) {
	defer obs.Time(ctx, "pg.SavePlan")(&err)

	if p.DB == nil {
		return errors.New("postgres plan store: DB is nil")
	}
	if plan == nil || plan.ID == "" {
		return errors.New("save plan: plan id must not be empty")
	}

	undeliverable, err := json.Marshal(nonNil(plan.Undeliverable))
	if err != nil {
		return fmt.Errorf("save plan: encode undeliverable: %w", err)
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save plan: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO route_plans (
		plan_id, created_at, trips, total_distance_km,
		travel_ms, service_ms, window_ms,
		nice_count, naughty_count, undeliverable
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (plan_id) DO UPDATE
	SET created_at = EXCLUDED.created_at,
		trips = EXCLUDED.trips,
		total_distance_km = EXCLUDED.total_distance_km,
		travel_ms = EXCLUDED.travel_ms,
		service_ms = EXCLUDED.service_ms,
		window_ms = EXCLUDED.window_ms,
		nice_count = EXCLUDED.nice_count,
		naughty_count = EXCLUDED.naughty_count,
		undeliverable = EXCLUDED.undeliverable;
	`,
		plan.ID, plan.CreatedAt.UTC(), plan.Trips, plan.TotalDistanceKm,
		plan.TravelTime.Milliseconds(), plan.ServiceTime.Milliseconds(), plan.Window.Milliseconds(),
		plan.NiceCount, plan.NaughtyCount, string(undeliverable),
	)
	if err != nil {
		return fmt.Errorf("save plan %s: insert plan: %w", plan.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM route_entries WHERE plan_id = $1;`, plan.ID); err != nil {
		return fmt.Errorf("save plan %s: clear entries: %w", plan.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO route_entries (plan_id, seq, stop, article, pieces)
	VALUES ($1, $2, $3, $4, $5);
	`)
	if err != nil {
		return fmt.Errorf("save plan %s: prepare entries: %w", plan.ID, err)
	}
	defer stmt.Close()

	for i, e := range plan.Entries {
		var article, pieces sql.NullInt64
		if e.Article != nil {
			article = sql.NullInt64{Int64: int64(*e.Article), Valid: true}
		}
		if e.Pieces != nil {
			pieces = sql.NullInt64{Int64: int64(*e.Pieces), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, plan.ID, i, e.Stop, article, pieces); err != nil {
			return fmt.Errorf("save plan %s: insert entry #%d: %w", plan.ID, i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save plan %s: commit tx: %w", plan.ID, err)
	}
	return nil
}

// Load a plan by id, returning domain.ErrPlanNotFound for unknown ids.
func (p *PostgresPlanStore) GetPlan(ctx context.Context, id string) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "pg.GetPlan")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres plan store: DB is nil")
	}

	var (
		plan                          domain.RoutePlan
		travelMs, serviceMs, windowMs int64
		undeliverable                 []byte
	)
	row := p.DB.QueryRowContext(ctx, `
	SELECT
		plan_id, created_at, trips, total_distance_km,
		travel_ms, service_ms, window_ms,
		nice_count, naughty_count, undeliverable
	FROM route_plans
	WHERE plan_id = $1;
	`, id)
	err = row.Scan(
		&plan.ID, &plan.CreatedAt, &plan.Trips, &plan.TotalDistanceKm,
		&travelMs, &serviceMs, &windowMs,
		&plan.NiceCount, &plan.NaughtyCount, &undeliverable,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan %s: %w", id, domain.ErrPlanNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %s: scan plan: %w", id, err)
	}

	plan.TravelTime = time.Duration(travelMs) * time.Millisecond
	plan.ServiceTime = time.Duration(serviceMs) * time.Millisecond
	plan.Window = time.Duration(windowMs) * time.Millisecond
	if err := json.Unmarshal(undeliverable, &plan.Undeliverable); err != nil {
		return nil, fmt.Errorf("get plan %s: decode undeliverable: %w", id, err)
	}

	rows, err := p.DB.QueryContext(ctx, `
	SELECT stop, article, pieces
	FROM route_entries
	WHERE plan_id = $1
	ORDER BY seq;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get plan %s: query entries: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var stop int
		var article, pieces sql.NullInt64
		if err := rows.Scan(&stop, &article, &pieces); err != nil {
			return nil, fmt.Errorf("get plan %s: scan entry: %w", id, err)
		}
		e := domain.RouteEntry{Stop: stop}
		if article.Valid {
			v := int(article.Int64)
			e.Article = &v
		}
		if pieces.Valid {
			v := int(pieces.Int64)
			e.Pieces = &v
		}
		plan.Entries = append(plan.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get plan %s: row iteration: %w", id, err)
	}

	return &plan, nil
}

func nonNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
