package ports

import (
	"context"
	"tour-planner-service/internal/domain"
)

// Port: a boundary for retrieving candidate places from a data source.
type PlaceRepository interface {
	// Retrieve all approved places available for planning.
	ListPlaces(ctx context.Context) ([]domain.Place, error)
	// Retrieve the given places in the order requested.
	// Returns domain.ErrPlaceNotFound if any id is unknown.
	GetPlaces(ctx context.Context, ids []string) ([]domain.Place, error)
}
