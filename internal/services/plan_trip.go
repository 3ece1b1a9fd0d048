package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/ports"
)

type RecommendRequest struct {
	Preferences domain.PreferenceSet
	// Places scoring at or below MinScore are dropped after ranking. Zero keeps all.
	MinScore float64
}

type RecommendResult struct {
	Recommendation
	TotalPlaces int
	// Rough length of a trip visiting every recommended place.
	EstimatedDuration time.Duration
}

// RecommendPlaces loads every approved place and ranks it against the preferences.
func RecommendPlaces(
	ctx context.Context,
	req RecommendRequest,
	repo ports.PlaceRepository,
	planner *Planner,
) (RecommendResult, error) {
	places, err := repo.ListPlaces(ctx)
	if err != nil {
		return RecommendResult{}, fmt.Errorf("recommend places: list places: %w", err)
	}

	rec, err := planner.Recommend(ctx, places, req.Preferences)
	if err != nil {
		return RecommendResult{}, fmt.Errorf("recommend places: %w", err)
	}

	if req.MinScore > 0 {
		rec.Places = AboveScore(rec.Places, req.MinScore)
	}

	return RecommendResult{
		Recommendation:    rec,
		TotalPlaces:       len(places),
		EstimatedDuration: EstimateTripDuration(len(rec.Places), DefaultDwell, DefaultTransition),
	}, nil
}

// At most one of Start, StartAddress and StartPlaceID may be set. With none,
// the route begins at the first requested place.
type PlanRouteRequest struct {
	PlaceIDs     []string
	Start        *domain.Coordinate
	StartAddress string
	StartPlaceID string
	// Zero means no itinerary timings are computed.
	DepartAt time.Time
	Dwell    time.Duration
	Save     bool
}

type PlanRouteResult struct {
	Route domain.PlannedRoute
	// Nil unless the request asked for the route to be saved.
	Saved *ports.SavedRoute
}

// PlanRoute sequences the requested places and optionally stamps times and
// persists the result. geocoder and routes may be nil when the request does
// not need them.
func PlanRoute(
	ctx context.Context,
	req PlanRouteRequest,
	repo ports.PlaceRepository,
	geocoder ports.Geocoder,
	routes ports.RouteRepository,
	planner *Planner,
) (PlanRouteResult, error) {
	if err := validatePlanRouteRequest(req); err != nil {
		return PlanRouteResult{}, fmt.Errorf("plan route: %w", err)
	}

	places, err := repo.GetPlaces(ctx, req.PlaceIDs)
	if err != nil {
		return PlanRouteResult{}, fmt.Errorf("plan route: get places: %w", err)
	}

	start := req.Start
	if addr := strings.TrimSpace(req.StartAddress); addr != "" {
		if geocoder == nil {
			return PlanRouteResult{}, fmt.Errorf("plan route: %w: start address lookup is not configured", domain.ErrInvalidRequest)
		}

		c, err := geocoder.Geocode(ctx, addr)
		if err != nil {
			return PlanRouteResult{}, fmt.Errorf("plan route: geocode start address: %w", err)
		}
		start = &c
	}

	var planned domain.PlannedRoute
	if req.StartPlaceID != "" {
		planned, err = planner.BuildRouteFromPlace(places, req.StartPlaceID)
	} else {
		planned, err = planner.Route(domain.RouteRequest{Places: places, Start: start})
	}
	if err != nil {
		return PlanRouteResult{}, fmt.Errorf("plan route: %w", err)
	}

	if !req.DepartAt.IsZero() {
		dwell := req.Dwell
		if dwell == 0 {
			dwell = DefaultDwell
		}
		planned = Itinerary(planned, req.DepartAt, dwell, planner.Optimizer.SpeedKmh)
	}

	result := PlanRouteResult{Route: planned}
	if !req.Save {
		return result, nil
	}

	if routes == nil {
		return PlanRouteResult{}, fmt.Errorf("plan route: %w: route saving is not configured", domain.ErrInvalidRequest)
	}

	saved, err := routes.SaveRoute(ctx, planned)
	if err != nil {
		return PlanRouteResult{}, fmt.Errorf("plan route: save route: %w", err)
	}
	result.Saved = &saved

	return result, nil
}

func validatePlanRouteRequest(req PlanRouteRequest) error {
	if len(req.PlaceIDs) == 0 {
		return fmt.Errorf("%w: place_ids must not be empty", domain.ErrInvalidRequest)
	}

	seen := make(map[string]struct{}, len(req.PlaceIDs))
	for _, id := range req.PlaceIDs {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: place id must not be blank", domain.ErrInvalidRequest)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate place id %q", domain.ErrInvalidRequest, id)
		}
		seen[id] = struct{}{}
	}

	starts := 0
	if req.Start != nil {
		starts++
	}
	if strings.TrimSpace(req.StartAddress) != "" {
		starts++
	}
	if req.StartPlaceID != "" {
		starts++
	}
	if starts > 1 {
		return fmt.Errorf("%w: start, start_address and start_place_id are mutually exclusive", domain.ErrInvalidRequest)
	}

	if req.Dwell < 0 {
		return fmt.Errorf("%w: dwell must not be negative", domain.ErrInvalidRequest)
	}

	return nil
}
