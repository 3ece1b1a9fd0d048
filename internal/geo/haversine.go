// Package geo provides great-circle distance and travel-time arithmetic.
//
// The Earth is treated as a sphere of radius 6371 km. This is a deliberate
// approximation and is not geodetically exact.
package geo

import (
	"math"
	"tour-planner-service/internal/domain"
)

const (
	// EarthRadiusKm is the mean Earth radius used by Distance.
	EarthRadiusKm = 6371.0
	// DefaultSpeedKmh approximates mixed urban travel.
	DefaultSpeedKmh = 30.0
)

// Distance returns the haversine great-circle distance between a and b in kilometers.
// It is symmetric, non-negative and exactly zero when a == b.
func Distance(a, b domain.Coordinate) float64 {
	if a == b {
		return 0
	}

	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	// Rounding can push h a hair outside [0, 1] for antipodal points.
	h = math.Min(1, math.Max(0, h))

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// TravelTime converts a distance into whole minutes at the given average speed.
// A non-positive speed falls back to DefaultSpeedKmh.
func TravelTime(distanceKm, speedKmh float64) int {
	if speedKmh <= 0 {
		speedKmh = DefaultSpeedKmh
	}
	return int(math.Round(distanceKm / speedKmh * 60))
}

// DistanceMatrix returns the symmetric pairwise distance matrix for points.
// Each pair is computed once; the diagonal is left at zero.
func DistanceMatrix(points []domain.Coordinate) [][]float64 {
	n := len(points)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := Distance(points[i], points[j])
			m[i][j] = d
			m[j][i] = d
		}
	}

	return m
}

// Nearest returns the index of the point closest to origin.
// Ties keep the first occurrence; an empty list yields -1.
func Nearest(origin domain.Coordinate, points []domain.Coordinate) int {
	best := -1
	minDist := math.Inf(1)

	for i, p := range points {
		if d := Distance(origin, p); d < minDist {
			minDist = d
			best = i
		}
	}

	return best
}

// PathDistance sums consecutive legs of points visited in order.
// The path is open: there is no leg back to the first point.
func PathDistance(points []domain.Coordinate, order []int) float64 {
	total := 0.0
	for i := 0; i+1 < len(order); i++ {
		total += Distance(points[order[i]], points[order[i+1]])
	}
	return total
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
