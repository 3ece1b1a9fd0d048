package geo

import (
	"math/rand/v2"
	"testing"
	"tour-planner-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cairoTower = domain.Coordinate{Lat: 30.0456, Lng: 31.2242}
	pyramids   = domain.Coordinate{Lat: 29.9792, Lng: 31.1342}
	azharPark  = domain.Coordinate{Lat: 30.0407, Lng: 31.2629}
)

func randomCoordinate(r *rand.Rand) domain.Coordinate {
	return domain.Coordinate{
		Lat: r.Float64()*180 - 90,
		Lng: r.Float64()*360 - 180,
	}
}

func TestDistanceKnownPair(t *testing.T) {
	// London -> Paris is roughly 343.5 km on a 6371 km sphere.
	london := domain.Coordinate{Lat: 51.5074, Lng: -0.1278}
	paris := domain.Coordinate{Lat: 48.8566, Lng: 2.3522}

	assert.InDelta(t, 343.5, Distance(london, paris), 1.0)
}

func TestDistanceSymmetricAndZeroOnSelf(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		a := randomCoordinate(r)
		b := randomCoordinate(r)

		require.Equal(t, Distance(a, b), Distance(b, a))
		require.Zero(t, Distance(a, a))
		require.GreaterOrEqual(t, Distance(a, b), 0.0)
	}
}

func TestDistanceTriangleInequality(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))

	for i := 0; i < 500; i++ {
		a, b, c := randomCoordinate(r), randomCoordinate(r), randomCoordinate(r)
		require.LessOrEqual(t, Distance(a, c), Distance(a, b)+Distance(b, c)+1e-6)
	}
}

func TestDistanceAntipodal(t *testing.T) {
	d := Distance(domain.Coordinate{Lat: 0, Lng: 0}, domain.Coordinate{Lat: 0, Lng: 180})
	assert.InDelta(t, 20015.09, d, 0.1)
}

func TestTravelTime(t *testing.T) {
	tests := []struct {
		name  string
		km    float64
		speed float64
		want  int
	}{
		{"zero distance", 0, 30, 0},
		{"half hour", 15, 30, 30},
		{"rounds to nearest minute", 10.26, 30, 21},
		{"custom speed", 60, 60, 60},
		{"non-positive speed uses default", 15, 0, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TravelTime(tt.km, tt.speed))
		})
	}
}

func TestDistanceMatrix(t *testing.T) {
	points := []domain.Coordinate{cairoTower, pyramids, azharPark}
	m := DistanceMatrix(points)

	require.Len(t, m, 3)
	for i := range points {
		require.Len(t, m[i], 3)
		assert.Zero(t, m[i][i])
		for j := range points {
			assert.Equal(t, m[i][j], m[j][i])
			if i != j {
				assert.Equal(t, Distance(points[i], points[j]), m[i][j])
			}
		}
	}

	assert.Empty(t, DistanceMatrix(nil))
}

func TestNearest(t *testing.T) {
	points := []domain.Coordinate{pyramids, azharPark, cairoTower}

	assert.Equal(t, 2, Nearest(domain.Coordinate{Lat: 30.046, Lng: 31.225}, points))
	assert.Equal(t, -1, Nearest(cairoTower, nil))

	// Equal distances keep the first occurrence.
	dup := []domain.Coordinate{azharPark, cairoTower, cairoTower}
	assert.Equal(t, 1, Nearest(cairoTower, dup))
}

func TestPathDistance(t *testing.T) {
	points := []domain.Coordinate{cairoTower, pyramids, azharPark}

	want := Distance(cairoTower, azharPark) + Distance(azharPark, pyramids)
	assert.InDelta(t, want, PathDistance(points, []int{0, 2, 1}), 1e-9)
	assert.Zero(t, PathDistance(points, []int{1}))
	assert.Zero(t, PathDistance(points, nil))
}
