package dto

import (
	"math"
	"strings"
	"time"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/services"
)

type CoordinateRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c CoordinateRequest) ToDomain() domain.Coordinate {
	return domain.Coordinate{Lat: c.Lat, Lng: c.Lng}
}

type RouteRequest struct {
	PlaceIDs     []string           `json:"place_ids"`
	Start        *CoordinateRequest `json:"start"`
	StartAddress string             `json:"start_address"`
	StartPlaceID string             `json:"start_place_id"`
	DepartAt     *time.Time         `json:"depart_at"`
	DwellMinutes *int               `json:"dwell_minutes"`
	Save         bool               `json:"save"`
}

// StartCount reports how many start options are set.
func (r RouteRequest) StartCount() int {
	n := 0
	if r.Start != nil {
		n++
	}
	if strings.TrimSpace(r.StartAddress) != "" {
		n++
	}
	if r.StartPlaceID != "" {
		n++
	}
	return n
}

type RouteStopResponse struct {
	PlaceID  string     `json:"place_id"`
	Title    string     `json:"title"`
	Lat      float64    `json:"lat"`
	Lng      float64    `json:"lng"`
	LegKm    float64    `json:"leg_km"`
	ArriveAt *time.Time `json:"arrive_at,omitempty"`
	DepartAt *time.Time `json:"depart_at,omitempty"`
}

type RouteResponse struct {
	RouteID          string              `json:"route_id,omitempty"`
	Order            []int               `json:"order"`
	Stops            []RouteStopResponse `json:"stops"`
	TotalDistanceKm  float64             `json:"total_distance_km"`
	EstimatedMinutes int                 `json:"estimated_minutes"`
	DepartAt         *time.Time          `json:"depart_at,omitempty"`
	Excluded         []ExcludedResponse  `json:"excluded"`
}

func FromPlanRouteResult(res services.PlanRouteResult) RouteResponse {
	planned := res.Route

	out := RouteResponse{
		Order:            planned.Route.Order,
		Stops:            make([]RouteStopResponse, 0, len(planned.Stops)),
		TotalDistanceKm:  round2(planned.Route.TotalDistanceKm),
		EstimatedMinutes: planned.Route.EstimatedMinutes,
		DepartAt:         timePtr(planned.DepartAt),
		Excluded:         fromExcluded(planned.Excluded),
	}
	if out.Order == nil {
		out.Order = []int{}
	}
	if res.Saved != nil {
		out.RouteID = res.Saved.ID.String()
	}

	for _, s := range planned.Stops {
		out.Stops = append(out.Stops, RouteStopResponse{
			PlaceID:  s.Place.ID,
			Title:    s.Place.Title,
			Lat:      s.Place.Location.Lat,
			Lng:      s.Place.Location.Lng,
			LegKm:    round2(s.LegKm),
			ArriveAt: timePtr(s.ArriveAt),
			DepartAt: timePtr(s.DepartAt),
		})
	}

	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
