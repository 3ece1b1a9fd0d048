package services

import (
	"fmt"
	"math"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/geo"
)

// Build a visiting order using a greedy nearest-neighbor algorithm.
//
// Starting from startIndex, the closest unvisited place is appended at each step.
// It does not attempt global route optimization; TwoOptRoute refines the result.
// The design prioritizes determinism and simplicity over optimality: when two
// candidates are equally close, the lower index wins.
func NearestNeighborRoute(places []domain.Place, startIndex int, speedKmh float64) (domain.OptimizedRoute, error) {
	if len(places) == 0 {
		return domain.OptimizedRoute{Order: []int{}}, nil
	}

	if startIndex < 0 || startIndex >= len(places) {
		return domain.OptimizedRoute{}, fmt.Errorf(
			"nearest neighbor route: start index %d for %d places: %w",
			startIndex, len(places), domain.ErrStartIndexOutOfRange,
		)
	}

	points, err := placeCoordinates(places)
	if err != nil {
		return domain.OptimizedRoute{}, fmt.Errorf("nearest neighbor route: %w", err)
	}

	visited := make([]bool, len(points))
	order := make([]int, 0, len(points))
	order = append(order, startIndex)
	visited[startIndex] = true

	current := startIndex
	totalKm := 0.0

	for len(order) < len(points) {
		next := -1
		minDist := math.Inf(1)

		// Select next stop by minimum great-circle distance (greedy step).
		for i, p := range points {
			if visited[i] {
				continue
			}
			if d := geo.Distance(points[current], p); d < minDist {
				minDist = d
				next = i
			}
		}

		if next == -1 {
			return domain.OptimizedRoute{}, fmt.Errorf("nearest neighbor route: failed to select next place after index %d", current)
		}

		order = append(order, next)
		visited[next] = true
		totalKm += minDist
		current = next
	}

	return domain.OptimizedRoute{
		Order:            order,
		TotalDistanceKm:  totalKm,
		EstimatedMinutes: geo.TravelTime(totalKm, speedKmh),
	}, nil
}

// placeCoordinates extracts and validates the coordinate of every place.
func placeCoordinates(places []domain.Place) ([]domain.Coordinate, error) {
	points := make([]domain.Coordinate, len(places))
	for i, p := range places {
		if err := p.Location.Validate(); err != nil {
			return nil, fmt.Errorf("place %d (%q): %w", i, p.ID, err)
		}
		points[i] = p.Location
	}
	return points, nil
}
