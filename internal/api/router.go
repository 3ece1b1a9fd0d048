package api

import (
	"log/slog"
	"net/http"
	"time"
	"tour-planner-service/internal/api/handlers"
	"tour-planner-service/internal/ports"
	"tour-planner-service/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 20

// Dependencies needed by the HTTP layer. Geocoder may be nil, in which case
// start_address is rejected.
type Deps struct {
	Places      ports.PlaceRepository
	Routes      ports.RouteRepository
	Geocoder    ports.Geocoder
	Planner     *services.Planner
	Dwell       time.Duration
	CORSOrigins []string
	Logger      *slog.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	placeHandler := &handlers.PlaceHandler{Repo: d.Places}
	recHandler := &handlers.RecommendationHandler{Repo: d.Places, Planner: d.Planner}
	routeHandler := &handlers.RouteHandler{
		Repo:     d.Places,
		Routes:   d.Routes,
		Geocoder: d.Geocoder,
		Planner:  d.Planner,
		Dwell:    d.Dwell,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(loggingMiddleware(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(corsMiddleware(d.CORSOrigins))
	r.Use(chimiddleware.RequestSize(maxBodyBytes))

	r.Get("/health", handlers.Health)
	r.Get("/places", placeHandler.List)
	r.Post("/recommendations", recHandler.Recommend)
	r.Post("/routes", routeHandler.Plan)

	return r
}
