package dto

import "tour-planner-service/internal/domain"

type PlaceResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Vibe          []string `json:"vibe"`
	EntryFees     *float64 `json:"entry_fees"`
	CameraFees    *float64 `json:"camera_fees"`
	PetsFriendly  bool     `json:"pets_friendly"`
	KidsFriendly  bool     `json:"kids_friendly"`
	BestTimeOfDay []string `json:"best_time_of_day"`
	BestSeason    []string `json:"best_season"`
	AverageRating float64  `json:"average_rating"`
}

type ListPlacesResponse struct {
	Places []PlaceResponse `json:"places"`
}

func FromPlace(p domain.Place) PlaceResponse {
	return PlaceResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Address:       p.Address,
		Latitude:      p.Location.Lat,
		Longitude:     p.Location.Lng,
		Vibe:          emptyIfNil(p.Vibes),
		EntryFees:     p.EntryFee,
		CameraFees:    p.CameraFee,
		PetsFriendly:  p.PetsFriendly,
		KidsFriendly:  p.KidsFriendly,
		BestTimeOfDay: emptyIfNil(p.BestTimeOfDay),
		BestSeason:    emptyIfNil(p.BestSeasons),
		AverageRating: p.AverageRating,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
