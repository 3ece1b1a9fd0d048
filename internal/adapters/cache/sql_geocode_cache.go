package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/platform/obs"
)

// SQLGeocodeCache is a Postgres-backed cache mapping start addresses to coordinates.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch cached coordinates for the given addresses.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinate, err error) {
	defer obs.Time(ctx, "geocode.sqlcache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := normalizeAddresses(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Coordinate{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT address, lon, lat
	FROM geocode_cache
	WHERE address = ANY($1::text[]);
	`, uniq)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinate, len(uniq))
	for rows.Next() {
		var addr string
		var c domain.Coordinate
		if err := rows.Scan(&addr, &c.Lng, &c.Lat); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[addr] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// Store address -> coordinate mappings in the cache.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinate) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	if err := checkKeys(results); err != nil {
		return fmt.Errorf("insert geocode cache: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO geocode_cache (address, lon, lat)
	VALUES ($1, $2, $3)
	ON CONFLICT (address) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for addr, c := range results {
		if _, err := stmt.ExecContext(ctx, addr, c.Lng, c.Lat); err != nil {
			return fmt.Errorf("insert geocode cache coord=%q: %w", addr, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}
