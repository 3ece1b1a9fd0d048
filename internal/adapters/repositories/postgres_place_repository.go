package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/platform/obs"

	"github.com/jackc/pgx/v5/pgtype"
)

// Postgres-backed implementation of the PlaceRepository port.
type PostgresPlaceRepository struct {
	DB *sql.DB
	m  *pgtype.Map
}

func NewPostgresPlaceRepository(db *sql.DB) *PostgresPlaceRepository {
	return &PostgresPlaceRepository{DB: db, m: pgtype.NewMap()}
}

const placeColumns = `
	id,
	title,
	description,
	address,
	latitude,
	longitude,
	vibe,
	entry_fees,
	camera_fees,
	pets_friendly,
	kids_friendly,
	best_time_of_day,
	best_season,
	average_rating
`

// Return all approved places.
func (r *PostgresPlaceRepository) ListPlaces(ctx context.Context) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "places.ListPlaces")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres place repository: DB is nil")
	}

	q := `SELECT ` + placeColumns + `
	FROM places
	WHERE status = 'approved'
	ORDER BY title, id;
	`

	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list places: query places table: %w", err)
	}
	defer rows.Close()

	places := make([]domain.Place, 0, 64)
	for rows.Next() {
		p, err := r.scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("list places: %w", err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list places: row iteration: %w", err)
	}

	return places, nil
}

// Return the requested places in request order.
func (r *PostgresPlaceRepository) GetPlaces(ctx context.Context, ids []string) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "places.GetPlaces")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres place repository: DB is nil")
	}

	if len(ids) == 0 {
		return []domain.Place{}, nil
	}

	q := `SELECT ` + placeColumns + `
	FROM places
	WHERE id = ANY($1::text[]);
	`

	rows, err := r.DB.QueryContext(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("get places: query places table: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]domain.Place, len(ids))
	for rows.Next() {
		p, err := r.scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("get places: %w", err)
		}
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get places: row iteration: %w", err)
	}

	out := make([]domain.Place, 0, len(ids))
	var missing []string
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		out = append(out, p)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("get places: %w: %s", domain.ErrPlaceNotFound, strings.Join(missing, ", "))
	}

	return out, nil
}

// Insert or update places, used by seeding.
func (r *PostgresPlaceRepository) UpsertPlaces(ctx context.Context, places []domain.Place) error {
	if r.DB == nil {
		return errors.New("postgres place repository: DB is nil")
	}

	if len(places) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert places: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO places (`+placeColumns+`)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (id) DO UPDATE
	SET title = EXCLUDED.title,
		description = EXCLUDED.description,
		address = EXCLUDED.address,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		vibe = EXCLUDED.vibe,
		entry_fees = EXCLUDED.entry_fees,
		camera_fees = EXCLUDED.camera_fees,
		pets_friendly = EXCLUDED.pets_friendly,
		kids_friendly = EXCLUDED.kids_friendly,
		best_time_of_day = EXCLUDED.best_time_of_day,
		best_season = EXCLUDED.best_season,
		average_rating = EXCLUDED.average_rating;
	`)
	if err != nil {
		return fmt.Errorf("upsert places: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range places {
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Title, p.Description, p.Address,
			p.Location.Lat, p.Location.Lng,
			nonNil(p.Vibes), p.EntryFee, p.CameraFee,
			p.PetsFriendly, p.KidsFriendly,
			nonNil(p.BestTimeOfDay), nonNil(p.BestSeasons),
			p.AverageRating,
		); err != nil {
			return fmt.Errorf("upsert places: insert id=%q: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert places: commit tx: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresPlaceRepository) scanPlace(row rowScanner) (domain.Place, error) {
	var (
		p                     domain.Place
		entry, camera         sql.NullFloat64
		vibes, times, seasons []string
	)

	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Address,
		&p.Location.Lat, &p.Location.Lng,
		r.m.SQLScanner(&vibes),
		&entry, &camera,
		&p.PetsFriendly, &p.KidsFriendly,
		r.m.SQLScanner(&times),
		r.m.SQLScanner(&seasons),
		&p.AverageRating,
	)
	if err != nil {
		return domain.Place{}, fmt.Errorf("scan row: %w", err)
	}

	if entry.Valid {
		p.EntryFee = &entry.Float64
	}
	if camera.Valid {
		p.CameraFee = &camera.Float64
	}
	p.Vibes, p.BestTimeOfDay, p.BestSeasons = vibes, times, seasons

	return p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
