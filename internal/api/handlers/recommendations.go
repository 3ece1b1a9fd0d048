package handlers

import (
	"net/http"
	"tour-planner-service/internal/api/dto"
	"tour-planner-service/internal/ports"
	"tour-planner-service/internal/services"
)

// maxPlaceCount caps number_of_places so a request cannot ask for the whole catalogue.
const maxPlaceCount = 50

type RecommendationHandler struct {
	Repo    ports.PlaceRepository
	Planner *services.Planner
}

// Recommend ranks the catalogue against the traveler's survey answers.
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req dto.RecommendRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Preferences == nil {
		writeError(w, r, http.StatusBadRequest, "preferences are required")
		return
	}
	if n := req.Preferences.NumberOfPlaces; n < 0 || n > maxPlaceCount {
		writeError(w, r, http.StatusBadRequest, "number_of_places must be between 0 and 50")
		return
	}

	if req.MinScore < 0 || req.MinScore > 100 {
		writeError(w, r, http.StatusBadRequest, "min_score must be between 0 and 100")
		return
	}

	svcReq := services.RecommendRequest{
		Preferences: req.Preferences.ToDomain(),
		MinScore:    req.MinScore,
	}

	res, err := services.RecommendPlaces(r.Context(), svcReq, h.Repo, h.Planner)
	if err != nil {
		internalError(w, r, "recommend places failed", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromRecommendation(res))
}
