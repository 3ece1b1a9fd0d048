package services

import (
	"fmt"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/geo"
)

// RouteOptimizer sequences places with nearest-neighbor construction followed
// by 2-opt refinement. The zero value uses the package defaults.
type RouteOptimizer struct {
	MaxPasses int
	SpeedKmh  float64
	// Observer, when set, sees every accepted 2-opt move.
	Observer SwapObserver
}

func NewRouteOptimizer(maxPasses int, speedKmh float64) *RouteOptimizer {
	return &RouteOptimizer{MaxPasses: maxPasses, SpeedKmh: speedKmh}
}

// Optimize builds a route starting at places[startIndex].
//
// Zero places yield an empty order and one place a singleton, both with zero
// distance. Two places have a single possible order and skip 2-opt.
func (o *RouteOptimizer) Optimize(places []domain.Place, startIndex int) (domain.OptimizedRoute, error) {
	initial, err := NearestNeighborRoute(places, startIndex, o.SpeedKmh)
	if err != nil {
		return domain.OptimizedRoute{}, fmt.Errorf("optimize route: %w", err)
	}

	if len(places) <= 2 {
		return initial, nil
	}

	// Delegate refinement while preserving the nearest-neighbor start.
	route, err := TwoOptRoute(places, initial.Order, o.MaxPasses, o.SpeedKmh, o.Observer)
	if err != nil {
		return domain.OptimizedRoute{}, fmt.Errorf("optimize route: %w", err)
	}
	return route, nil
}

// OptimizeFrom builds a route that begins at the place nearest to start.
func (o *RouteOptimizer) OptimizeFrom(places []domain.Place, start domain.Coordinate) (domain.OptimizedRoute, error) {
	if err := start.Validate(); err != nil {
		return domain.OptimizedRoute{}, fmt.Errorf("optimize route from location: %w", err)
	}

	if len(places) == 0 {
		return domain.OptimizedRoute{Order: []int{}}, nil
	}

	points, err := placeCoordinates(places)
	if err != nil {
		return domain.OptimizedRoute{}, fmt.Errorf("optimize route from location: %w", err)
	}

	return o.Optimize(places, geo.Nearest(start, points))
}
