package domain

import "time"

// A place paired with its match score in [0, 100] and the reasons behind it.
// Produced fresh on every scoring call.
type ScoredPlace struct {
	Place   Place
	Score   float64
	Reasons []string
}

// Selected places to sequence, optionally anchored to a starting coordinate.
type RouteRequest struct {
	Places []Place
	Start  *Coordinate
}

// Represents the visiting order produced by the route sequencer.
// Order is a permutation of the input place indices. The route is open:
// TotalDistanceKm has no return leg to the start.
// It is immutable planning data and contains no side effects.
type OptimizedRoute struct {
	Order            []int
	TotalDistanceKm  float64
	EstimatedMinutes int
}

// Represents a single stop in a planned route.
// LegKm is the great-circle distance from the previous stop (zero for the first).
type RouteStop struct {
	Index    int
	Place    Place
	LegKm    float64
	ArriveAt time.Time
	DepartAt time.Time
}

// A route expanded into concrete stops and timings.
type PlannedRoute struct {
	Route    OptimizedRoute
	DepartAt time.Time
	Stops    []RouteStop
	Excluded []ExcludedPlace
}

// A candidate dropped from a batch because its data was unusable.
type ExcludedPlace struct {
	Index   int
	PlaceID string
	Err     error
}
