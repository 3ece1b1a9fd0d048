package services

import (
	"slices"
	"time"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/geo"
)

const (
	// DefaultDwell is the time spent at each place.
	DefaultDwell = 90 * time.Minute
	// DefaultTransition is the flat travel allowance between places used by
	// EstimateTripDuration.
	DefaultTransition = 30 * time.Minute
)

// Itinerary stamps arrival and departure times on every stop of route,
// leaving departAt and travelling each leg at speedKmh. The input route is
// not modified.
func Itinerary(route domain.PlannedRoute, departAt time.Time, dwell time.Duration, speedKmh float64) domain.PlannedRoute {
	if dwell < 0 {
		dwell = 0
	}

	out := route
	out.DepartAt = departAt
	out.Stops = slices.Clone(route.Stops)

	clock := departAt
	for i := range out.Stops {
		clock = clock.Add(time.Duration(geo.TravelTime(out.Stops[i].LegKm, speedKmh)) * time.Minute)
		out.Stops[i].ArriveAt = clock
		clock = clock.Add(dwell)
		out.Stops[i].DepartAt = clock
	}

	return out
}

// EstimateTripDuration gives a rough trip length before a route exists:
// perPlace for each place plus transition between consecutive places.
func EstimateTripDuration(numberOfPlaces int, perPlace, transition time.Duration) time.Duration {
	if numberOfPlaces <= 0 {
		return 0
	}
	return time.Duration(numberOfPlaces)*perPlace + time.Duration(numberOfPlaces-1)*transition
}
