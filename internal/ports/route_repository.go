package ports

import (
	"context"
	"time"
	"tour-planner-service/internal/domain"

	"github.com/google/uuid"
)

// A finalized route as stored by the application.
type SavedRoute struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Planned   domain.PlannedRoute
}

// Port: a boundary for persisting finalized routes.
type RouteRepository interface {
	SaveRoute(ctx context.Context, route domain.PlannedRoute) (SavedRoute, error)
}
