package handlers

import (
	"errors"
	"net/http"
	"time"
	"tour-planner-service/internal/api/dto"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/ports"
	"tour-planner-service/internal/services"
)

const maxRoutePlaces = 25

type RouteHandler struct {
	Repo     ports.PlaceRepository
	Routes   ports.RouteRepository
	Geocoder ports.Geocoder
	Planner  *services.Planner
	Dwell    time.Duration
}

// Plan sequences the selected places into a visiting order and optionally saves it.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if len(req.PlaceIDs) == 0 {
		writeError(w, r, http.StatusBadRequest, "place_ids is required")
		return
	}
	if len(req.PlaceIDs) > maxRoutePlaces {
		writeError(w, r, http.StatusBadRequest, "place_ids must contain at most 25 places")
		return
	}
	if req.StartCount() > 1 {
		writeError(w, r, http.StatusBadRequest, "only one of start, start_address and start_place_id may be set")
		return
	}

	dwell := h.Dwell
	if req.DwellMinutes != nil {
		if *req.DwellMinutes < 0 || *req.DwellMinutes > 24*60 {
			writeError(w, r, http.StatusBadRequest, "dwell_minutes must be between 0 and 1440")
			return
		}
		dwell = time.Duration(*req.DwellMinutes) * time.Minute
	}

	svcReq := services.PlanRouteRequest{
		PlaceIDs:     req.PlaceIDs,
		StartAddress: req.StartAddress,
		StartPlaceID: req.StartPlaceID,
		Dwell:        dwell,
		Save:         req.Save,
	}
	if req.Start != nil {
		c := req.Start.ToDomain()
		svcReq.Start = &c
	}
	if req.DepartAt != nil {
		svcReq.DepartAt = *req.DepartAt
	}

	res, err := services.PlanRoute(r.Context(), svcReq, h.Repo, h.Geocoder, h.Routes, h.Planner)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPlaceNotFound):
			writeError(w, r, http.StatusBadRequest, "unknown place id")
		case errors.Is(err, domain.ErrInvalidCoordinate):
			writeError(w, r, http.StatusBadRequest, "invalid start coordinate")
		case errors.Is(err, domain.ErrAddressNotFound):
			writeError(w, r, http.StatusBadRequest, "start address not found")
		case errors.Is(err, domain.ErrInvalidRequest):
			writeError(w, r, http.StatusBadRequest, "invalid route request")
		case errors.Is(err, domain.ErrStartPlaceNotFound):
			writeError(w, r, http.StatusUnprocessableEntity, "start_place_id must be one of place_ids")
		default:
			internalError(w, r, "plan route failed", err)
		}
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromPlanRouteResult(res))
}
