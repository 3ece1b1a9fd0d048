package cache

import (
	"context"
	"testing"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSQLGeocodeCache_RoundTrip(t *testing.T) {
	c := NewSQLGeocodeCache(testutil.NewMigratedDB(t))
	ctx := context.Background()

	addr := "Zamalek " + uuid.NewString()
	want := domain.Coordinate{Lat: 30.0626, Lng: 31.2197}
	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinate{addr: want}))

	got, err := c.GetMany(ctx, []string{addr, addr, "unknown " + uuid.NewString()})
	require.NoError(t, err)
	require.Equal(t, map[string]domain.Coordinate{addr: want}, got)
}

func TestSQLGeocodeCache_NilDB(t *testing.T) {
	c := &SQLGeocodeCache{}

	_, err := c.GetMany(context.Background(), []string{"a"})
	require.Error(t, err)
	require.Error(t, c.PutMany(context.Background(), map[string]domain.Coordinate{"a": {}}))
}
