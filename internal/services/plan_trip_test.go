package services

import (
	"context"
	"errors"
	"testing"
	"time"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlaceRepo struct {
	places []domain.Place
	err    error
}

func (f *fakePlaceRepo) ListPlaces(context.Context) ([]domain.Place, error) {
	return f.places, f.err
}

func (f *fakePlaceRepo) GetPlaces(_ context.Context, ids []string) ([]domain.Place, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Place, 0, len(ids))
	for _, id := range ids {
		found := false
		for _, p := range f.places {
			if p.ID == id {
				out = append(out, p)
				found = true
				break
			}
		}
		if !found {
			return nil, domain.ErrPlaceNotFound
		}
	}
	return out, nil
}

type fakeGeocoder struct {
	coord domain.Coordinate
	err   error
	calls []string
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) (domain.Coordinate, error) {
	f.calls = append(f.calls, address)
	return f.coord, f.err
}

type fakeRouteRepo struct {
	saved []domain.PlannedRoute
}

func (f *fakeRouteRepo) SaveRoute(_ context.Context, route domain.PlannedRoute) (ports.SavedRoute, error) {
	f.saved = append(f.saved, route)
	return ports.SavedRoute{ID: uuid.New(), CreatedAt: time.Now(), Planned: route}, nil
}

func TestRecommendPlaces(t *testing.T) {
	repo := &fakePlaceRepo{places: cairoPlaces()}

	res, err := RecommendPlaces(context.Background(), RecommendRequest{
		Preferences: domain.PreferenceSet{Vibes: []string{"shopping"}, PlaceCount: 2},
	}, repo, newTestPlanner())
	require.NoError(t, err)

	assert.Equal(t, 10, res.TotalPlaces)
	require.Len(t, res.Places, 2)
	assert.Equal(t, "khan", res.Places[0].Place.ID)
	assert.Equal(t, "citystars", res.Places[1].Place.ID)
	assert.Equal(t, 3*time.Hour+30*time.Minute, res.EstimatedDuration)
}

func TestRecommendPlacesMinScore(t *testing.T) {
	repo := &fakePlaceRepo{places: cairoPlaces()}

	// Only the two shopping places clear 50; the rest take the vibe penalty.
	res, err := RecommendPlaces(context.Background(), RecommendRequest{
		Preferences: domain.PreferenceSet{Vibes: []string{"shopping"}, PlaceCount: 10},
		MinScore:    50,
	}, repo, newTestPlanner())
	require.NoError(t, err)

	require.Len(t, res.Places, 2)
	assert.Equal(t, 10, res.Considered)
}

func TestRecommendPlacesRepoError(t *testing.T) {
	boom := errors.New("db down")

	_, err := RecommendPlaces(context.Background(), RecommendRequest{}, &fakePlaceRepo{err: boom}, newTestPlanner())
	require.ErrorIs(t, err, boom)
}

func TestPlanRouteDefaultStart(t *testing.T) {
	repo := &fakePlaceRepo{places: cairoPlaces()}

	res, err := PlanRoute(context.Background(), PlanRouteRequest{
		PlaceIDs: []string{"tower", "pyramids", "citadel", "khan"},
	}, repo, nil, nil, newTestPlanner())
	require.NoError(t, err)

	require.Len(t, res.Route.Stops, 4)
	assert.Equal(t, "tower", res.Route.Stops[0].Place.ID)
	assert.Nil(t, res.Saved)
	assert.True(t, res.Route.Stops[0].ArriveAt.IsZero())
}

func TestPlanRouteFromAddress(t *testing.T) {
	repo := &fakePlaceRepo{places: cairoPlaces()}
	geo := &fakeGeocoder{coord: domain.Coordinate{Lat: 30.0726, Lng: 31.3450}}

	res, err := PlanRoute(context.Background(), PlanRouteRequest{
		PlaceIDs:     []string{"tower", "citystars", "khan"},
		StartAddress: "  Nasr City ",
	}, repo, geo, nil, newTestPlanner())
	require.NoError(t, err)

	assert.Equal(t, []string{"Nasr City"}, geo.calls)
	assert.Equal(t, "citystars", res.Route.Stops[0].Place.ID)
}

func TestPlanRouteGeocodeFailure(t *testing.T) {
	repo := &fakePlaceRepo{places: cairoPlaces()}
	geo := &fakeGeocoder{err: domain.ErrAddressNotFound}

	_, err := PlanRoute(context.Background(), PlanRouteRequest{
		PlaceIDs:     []string{"tower"},
		StartAddress: "Atlantis",
	}, repo, geo, nil, newTestPlanner())
	require.ErrorIs(t, err, domain.ErrAddressNotFound)
}

func TestPlanRouteFromPlace(t *testing.T) {
	repo := &fakePlaceRepo{places: cairoPlaces()}

	res, err := PlanRoute(context.Background(), PlanRouteRequest{
		PlaceIDs:     []string{"tower", "pyramids", "khan"},
		StartPlaceID: "khan",
	}, repo, nil, nil, newTestPlanner())
	require.NoError(t, err)
	assert.Equal(t, "khan", res.Route.Stops[0].Place.ID)
	assert.Equal(t, 2, res.Route.Route.Order[0])

	_, err = PlanRoute(context.Background(), PlanRouteRequest{
		PlaceIDs:     []string{"tower", "pyramids"},
		StartPlaceID: "khan",
	}, repo, nil, nil, newTestPlanner())
	require.ErrorIs(t, err, domain.ErrStartPlaceNotFound)
}

func TestPlanRouteUnknownPlace(t *testing.T) {
	repo := &fakePlaceRepo{places: cairoPlaces()}

	_, err := PlanRoute(context.Background(), PlanRouteRequest{
		PlaceIDs: []string{"tower", "atlantis"},
	}, repo, nil, nil, newTestPlanner())
	require.ErrorIs(t, err, domain.ErrPlaceNotFound)
}

func TestPlanRouteValidation(t *testing.T) {
	start := domain.Coordinate{Lat: 30, Lng: 31}

	cases := map[string]PlanRouteRequest{
		"no places":      {},
		"blank id":       {PlaceIDs: []string{"tower", " "}},
		"duplicate id":   {PlaceIDs: []string{"tower", "tower"}},
		"two starts":     {PlaceIDs: []string{"tower"}, Start: &start, StartPlaceID: "tower"},
		"negative dwell": {PlaceIDs: []string{"tower"}, Dwell: -time.Minute},
		"no geocoder":    {PlaceIDs: []string{"tower"}, StartAddress: "Zamalek"},
		"no route store": {PlaceIDs: []string{"tower"}, Save: true},
	}

	repo := &fakePlaceRepo{places: cairoPlaces()}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := PlanRoute(context.Background(), req, repo, nil, nil, newTestPlanner())
			require.ErrorIs(t, err, domain.ErrInvalidRequest)
		})
	}
}

func TestPlanRouteItineraryAndSave(t *testing.T) {
	repo := &fakePlaceRepo{places: cairoPlaces()}
	routes := &fakeRouteRepo{}
	depart := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	res, err := PlanRoute(context.Background(), PlanRouteRequest{
		PlaceIDs: []string{"azhar", "citadel", "khan"},
		DepartAt: depart,
		Dwell:    time.Hour,
		Save:     true,
	}, repo, nil, routes, newTestPlanner())
	require.NoError(t, err)

	require.NotNil(t, res.Saved)
	assert.NotEqual(t, uuid.Nil, res.Saved.ID)
	require.Len(t, routes.saved, 1)
	assert.Equal(t, res.Route, routes.saved[0])

	stops := res.Route.Stops
	require.Len(t, stops, 3)
	assert.Equal(t, depart, res.Route.DepartAt)
	assert.Equal(t, depart, stops[0].ArriveAt)
	assert.Equal(t, depart.Add(time.Hour), stops[0].DepartAt)
	for i := 1; i < len(stops); i++ {
		assert.False(t, stops[i].ArriveAt.Before(stops[i-1].DepartAt))
		assert.Equal(t, time.Hour, stops[i].DepartAt.Sub(stops[i].ArriveAt))
	}
}
