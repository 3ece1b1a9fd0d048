package ports

import (
	"context"
	"tour-planner-service/internal/domain"
)

// Contract for resolving a free-form address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinate, error)
}

// Persistent address -> coordinate cache used by geocoders.
// Keys are expected to be normalized by the caller.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinate, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinate) error
}
