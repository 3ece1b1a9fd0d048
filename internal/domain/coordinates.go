package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates in degrees (latitude, longitude).
type Coordinate struct {
	Lat float64
	Lng float64
}

// Validate reports whether the coordinate lies on the globe.
// NaN and infinite components are rejected along with out-of-range values.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidCoordinate, c.Lat)
	}
	if math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidCoordinate, c.Lng)
	}
	return nil
}

