package domain

import "errors"

// ErrInvalidCoordinate marks a latitude/longitude pair outside its valid range.
// Batch operations exclude the offending record and keep going.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// ErrStartIndexOutOfRange is returned when a route is anchored to an index
// that does not exist in the place list.
var ErrStartIndexOutOfRange = errors.New("start index out of range")

// ErrStartPlaceNotFound is returned when a route is anchored to a place that is
// not part of the selected subset. It indicates a caller bug, not bad data.
var ErrStartPlaceNotFound = errors.New("start place not in selection")

// ErrPlaceNotFound is returned by stores when a requested place id does not exist.
var ErrPlaceNotFound = errors.New("place not found")

// ErrInvalidOrder is returned when a visiting order is not a permutation of
// the place indices.
var ErrInvalidOrder = errors.New("order is not a permutation of place indices")

// ErrAddressNotFound is returned by geocoders when an address has no match.
var ErrAddressNotFound = errors.New("address not found")

// ErrInvalidRequest marks a planning request the caller must fix before retrying.
var ErrInvalidRequest = errors.New("invalid request")
