package services

import (
	"math/rand/v2"
	"slices"
	"testing"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeAt(id string, lat, lng float64) domain.Place {
	return domain.Place{ID: id, Location: domain.Coordinate{Lat: lat, Lng: lng}}
}

func randomPlaces(r *rand.Rand, n int) []domain.Place {
	places := make([]domain.Place, n)
	for i := range places {
		places[i] = placeAt(string(rune('A'+i%26)), 30+r.Float64()*0.2, 31.1+r.Float64()*0.2)
	}
	return places
}

func routeKm(places []domain.Place, order []int) float64 {
	points := make([]domain.Coordinate, len(places))
	for i, p := range places {
		points[i] = p.Location
	}
	return geo.PathDistance(points, order)
}

func requirePermutation(t *testing.T, order []int, n int) {
	t.Helper()
	sorted := slices.Sorted(slices.Values(order))
	want := make([]int, n)
	for i := range want {
		want[i] = i
	}
	require.Equal(t, want, sorted)
}

func TestNearestNeighborRoute(t *testing.T) {
	places := []domain.Place{
		placeAt("hub", 30.00, 31.00),
		placeAt("far", 30.00, 31.30),
		placeAt("near", 30.00, 31.10),
		placeAt("mid", 30.00, 31.20),
	}

	route, err := NearestNeighborRoute(places, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 3, 1}, route.Order)
	assert.InDelta(t, routeKm(places, route.Order), route.TotalDistanceKm, 1e-9)
	assert.Equal(t, geo.TravelTime(route.TotalDistanceKm, geo.DefaultSpeedKmh), route.EstimatedMinutes)
}

func TestNearestNeighborTieBreaksOnLowerIndex(t *testing.T) {
	places := []domain.Place{
		placeAt("start", 0, 0),
		placeAt("east", 0, 0.1),
		placeAt("west", 0, -0.1),
	}

	route, err := NearestNeighborRoute(places, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, route.Order)
}

func TestNearestNeighborStartOutOfRange(t *testing.T) {
	places := []domain.Place{placeAt("a", 0, 0)}

	_, err := NearestNeighborRoute(places, 3, 0)
	assert.ErrorIs(t, err, domain.ErrStartIndexOutOfRange)

	_, err = NearestNeighborRoute(places, -1, 0)
	assert.ErrorIs(t, err, domain.ErrStartIndexOutOfRange)
}

func TestNearestNeighborRejectsInvalidCoordinate(t *testing.T) {
	places := []domain.Place{placeAt("a", 0, 0), placeAt("bad", 91, 0)}

	_, err := NearestNeighborRoute(places, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)
}

func TestOptimizeDegenerateInputs(t *testing.T) {
	o := NewRouteOptimizer(0, 0)

	empty, err := o.Optimize(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, empty.Order)
	assert.Zero(t, empty.TotalDistanceKm)
	assert.Zero(t, empty.EstimatedMinutes)

	single, err := o.Optimize([]domain.Place{placeAt("a", 30, 31)}, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, single.Order)
	assert.Zero(t, single.TotalDistanceKm)

	pair := []domain.Place{placeAt("a", 30, 31), placeAt("b", 30.1, 31)}
	two, err := o.Optimize(pair, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, two.Order)
	assert.InDelta(t, geo.Distance(pair[0].Location, pair[1].Location), two.TotalDistanceKm, 1e-9)
}

func TestTwoOptPicksShorterTriangleOrder(t *testing.T) {
	// From A, visiting B then C doubles back past A; C then B does not.
	places := []domain.Place{
		placeAt("A", 30.00, 31.00),
		placeAt("B", 30.00, 31.10),
		placeAt("C", 30.00, 31.05),
	}

	route, err := TwoOptRoute(places, []int{0, 1, 2}, 0, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 1}, route.Order)
	assert.Less(t, route.TotalDistanceKm, routeKm(places, []int{0, 1, 2}))
}

func TestTwoOptRemovesCrossing(t *testing.T) {
	// Unit square visited corner, opposite corner, corner, opposite corner.
	places := []domain.Place{
		placeAt("A", 0.00, 0.00),
		placeAt("B", 0.01, 0.01),
		placeAt("C", 0.01, 0.00),
		placeAt("D", 0.00, 0.01),
	}

	var trace [][]int
	route, err := TwoOptRoute(places, []int{0, 1, 2, 3}, 0, 0, func(order []int, _ float64) {
		trace = append(trace, order)
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 1, 3}, route.Order)
	assert.Equal(t, [][]int{{0, 2, 1, 3}}, trace)
}

func TestTwoOptDoesNotMutateInitialOrder(t *testing.T) {
	places := []domain.Place{
		placeAt("A", 30.00, 31.00),
		placeAt("B", 30.00, 31.10),
		placeAt("C", 30.00, 31.05),
	}
	initial := []int{0, 1, 2}

	_, err := TwoOptRoute(places, initial, 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, initial)
}

func TestTwoOptRejectsInvalidOrder(t *testing.T) {
	places := []domain.Place{placeAt("a", 0, 0), placeAt("b", 0, 1), placeAt("c", 1, 0)}

	for _, order := range [][]int{{0, 1}, {0, 1, 1}, {0, 1, 3}, {-1, 0, 1}} {
		_, err := TwoOptRoute(places, order, 0, 0, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidOrder, "order %v", order)
	}
}

func TestOptimizeNeverWorseThanNearestNeighbor(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 99))

	for trial := 0; trial < 200; trial++ {
		n := 3 + r.IntN(15)
		places := randomPlaces(r, n)
		start := r.IntN(n)

		var trace []float64
		o := &RouteOptimizer{Observer: func(_ []int, km float64) { trace = append(trace, km) }}

		nn, err := NearestNeighborRoute(places, start, 0)
		require.NoError(t, err)

		opt, err := o.Optimize(places, start)
		require.NoError(t, err)

		requirePermutation(t, opt.Order, n)
		require.Equal(t, start, opt.Order[0])
		require.LessOrEqual(t, opt.TotalDistanceKm, nn.TotalDistanceKm)
		require.InDelta(t, routeKm(places, opt.Order), opt.TotalDistanceKm, 1e-9)

		// Every accepted move strictly shortens the route.
		prev := nn.TotalDistanceKm
		for _, km := range trace {
			require.Less(t, km, prev+1e-9)
			prev = km
		}
		if len(trace) > 0 {
			require.Equal(t, trace[len(trace)-1], opt.TotalDistanceKm)
		}
	}
}

func TestTwoOptPassCapStillImproves(t *testing.T) {
	r := rand.New(rand.NewPCG(8, 13))
	places := randomPlaces(r, 25)

	nn, err := NearestNeighborRoute(places, 0, 0)
	require.NoError(t, err)

	capped, err := TwoOptRoute(places, nn.Order, 1, 0, nil)
	require.NoError(t, err)
	full, err := TwoOptRoute(places, nn.Order, 0, 0, nil)
	require.NoError(t, err)

	requirePermutation(t, capped.Order, len(places))
	assert.LessOrEqual(t, capped.TotalDistanceKm, nn.TotalDistanceKm)
	assert.LessOrEqual(t, full.TotalDistanceKm, capped.TotalDistanceKm)
}

func TestOptimizeFromStartsAtNearestPlace(t *testing.T) {
	places := []domain.Place{
		placeAt("pyramids", 29.9792, 31.1342),
		placeAt("khan", 30.0479, 31.2626),
		placeAt("tower", 30.0456, 31.2242),
	}
	o := NewRouteOptimizer(0, 0)

	route, err := o.OptimizeFrom(places, domain.Coordinate{Lat: 29.98, Lng: 31.13})
	require.NoError(t, err)
	assert.Equal(t, 0, route.Order[0])
	requirePermutation(t, route.Order, 3)

	_, err = o.OptimizeFrom(places, domain.Coordinate{Lat: 0, Lng: 200})
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)

	empty, err := o.OptimizeFrom(nil, domain.Coordinate{})
	require.NoError(t, err)
	assert.Empty(t, empty.Order)
}
