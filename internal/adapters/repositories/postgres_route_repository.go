package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/platform/obs"
	"tour-planner-service/internal/ports"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the RouteRepository port.
type PostgresRouteRepository struct {
	DB  *sql.DB
	Now func() time.Time
}

func NewPostgresRouteRepository(db *sql.DB) *PostgresRouteRepository {
	return &PostgresRouteRepository{DB: db, Now: time.Now}
}

// Persist a planned route and its stops in a single transaction.
func (r *PostgresRouteRepository) SaveRoute(
	ctx context.Context,
	route domain.PlannedRoute,
) (_ ports.SavedRoute, err error) {
	defer obs.Time(ctx, "routes.SaveRoute")(&err)

	if r.DB == nil {
		return ports.SavedRoute{}, errors.New("postgres route repository: DB is nil")
	}

	saved := ports.SavedRoute{
		ID:        uuid.New(),
		CreatedAt: r.now().UTC(),
		Planned:   route,
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return ports.SavedRoute{}, fmt.Errorf("save route: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO route_plans (id, depart_at, total_distance_km, estimated_minutes, created_at)
	VALUES ($1, $2, $3, $4, $5);
	`,
		saved.ID,
		nullTime(route.DepartAt),
		route.Route.TotalDistanceKm,
		route.Route.EstimatedMinutes,
		saved.CreatedAt,
	); err != nil {
		return ports.SavedRoute{}, fmt.Errorf("save route: insert route_plans id=%s: %w", saved.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO route_plan_stops (route_id, position, place_id, leg_km, arrive_at, depart_at)
	VALUES ($1, $2, $3, $4, $5, $6);
	`)
	if err != nil {
		return ports.SavedRoute{}, fmt.Errorf("save route: prepare stops insert: %w", err)
	}
	defer stmt.Close()

	for pos, s := range route.Stops {
		if _, err := stmt.ExecContext(ctx,
			saved.ID, pos, s.Place.ID, s.LegKm,
			nullTime(s.ArriveAt), nullTime(s.DepartAt),
		); err != nil {
			return ports.SavedRoute{}, fmt.Errorf("save route: insert stop place=%q: %w", s.Place.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ports.SavedRoute{}, fmt.Errorf("save route: commit tx: %w", err)
	}

	return saved, nil
}

func (r *PostgresRouteRepository) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
