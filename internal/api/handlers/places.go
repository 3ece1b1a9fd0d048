package handlers

import (
	"net/http"
	"tour-planner-service/internal/api/dto"
	"tour-planner-service/internal/ports"
)

type PlaceHandler struct {
	Repo ports.PlaceRepository
}

// List returns every approved place.
func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	places, err := h.Repo.ListPlaces(r.Context())
	if err != nil {
		internalError(w, r, "list places failed", err)
		return
	}

	res := dto.ListPlacesResponse{Places: make([]dto.PlaceResponse, 0, len(places))}
	for _, p := range places {
		res.Places = append(res.Places, dto.FromPlace(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}
