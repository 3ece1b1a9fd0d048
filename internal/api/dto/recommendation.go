package dto

import (
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/services"
)

type PreferencesRequest struct {
	Vibes          []string `json:"vibes"`
	Budget         string   `json:"budget"`
	Companions     []string `json:"companions"`
	HasKids        bool     `json:"has_kids"`
	HasPets        bool     `json:"has_pets"`
	TimeOfDay      []string `json:"time_of_day"`
	Seasons        []string `json:"seasons"`
	NumberOfPlaces int      `json:"number_of_places"`
}

type RecommendRequest struct {
	Preferences *PreferencesRequest `json:"preferences"`
	MinScore    float64             `json:"min_score"`
}

// ToDomain normalizes survey answers. has_kids and has_pets are shorthands
// for the matching companions.
func (p PreferencesRequest) ToDomain() domain.PreferenceSet {
	companions := make([]domain.Companion, 0, len(p.Companions)+2)
	for _, c := range p.Companions {
		companions = append(companions, domain.ParseCompanion(c))
	}
	if p.HasKids {
		companions = append(companions, domain.CompanionKids)
	}
	if p.HasPets {
		companions = append(companions, domain.CompanionPets)
	}

	return domain.PreferenceSet{
		Vibes:      p.Vibes,
		Budget:     domain.ParseBudget(p.Budget),
		Companions: companions,
		TimesOfDay: p.TimeOfDay,
		Seasons:    p.Seasons,
		PlaceCount: p.NumberOfPlaces,
	}
}

type RecommendationResponse struct {
	Place   PlaceResponse `json:"place"`
	Score   float64       `json:"score"`
	Reasons []string      `json:"reasons"`
}

type ExcludedResponse struct {
	Index   int    `json:"index"`
	PlaceID string `json:"place_id"`
	Reason  string `json:"reason"`
}

type RecommendResponse struct {
	Recommendations []RecommendationResponse `json:"recommendations"`
	TotalPlaces     int                      `json:"total_places"`
	MatchedPlaces   int                      `json:"matched_places"`
	Excluded        []ExcludedResponse       `json:"excluded"`

	EstimatedDurationMinutes int `json:"estimated_duration_minutes"`
}

func FromRecommendation(res services.RecommendResult) RecommendResponse {
	out := RecommendResponse{
		Recommendations: make([]RecommendationResponse, 0, len(res.Places)),
		TotalPlaces:     res.TotalPlaces,
		MatchedPlaces:   len(res.Places),
		Excluded:        fromExcluded(res.Excluded),

		EstimatedDurationMinutes: int(res.EstimatedDuration.Minutes()),
	}
	for _, sp := range res.Places {
		out.Recommendations = append(out.Recommendations, RecommendationResponse{
			Place:   FromPlace(sp.Place),
			Score:   sp.Score,
			Reasons: emptyIfNil(sp.Reasons),
		})
	}
	return out
}

func fromExcluded(excluded []domain.ExcludedPlace) []ExcludedResponse {
	out := make([]ExcludedResponse, 0, len(excluded))
	for _, e := range excluded {
		reason := ""
		if e.Err != nil {
			reason = e.Err.Error()
		}
		out = append(out, ExcludedResponse{Index: e.Index, PlaceID: e.PlaceID, Reason: reason})
	}
	return out
}
