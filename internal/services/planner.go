package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/geo"
)

// DefaultPlaceCount is used when a preference set does not ask for a count.
const DefaultPlaceCount = 5

// Planner is the entry point the application layer calls. It validates input,
// delegates scoring and sequencing, and applies ranking policy. It does no
// scoring or distance math of its own.
type Planner struct {
	Scorer       Scorer
	Optimizer    *RouteOptimizer
	DefaultCount int
	Logger       *slog.Logger
}

func NewPlanner(scorer Scorer, optimizer *RouteOptimizer, defaultCount int, logger *slog.Logger) *Planner {
	if optimizer == nil {
		optimizer = &RouteOptimizer{}
	}
	if defaultCount <= 0 {
		defaultCount = DefaultPlaceCount
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Planner{
		Scorer:       scorer,
		Optimizer:    optimizer,
		DefaultCount: defaultCount,
		Logger:       logger,
	}
}

// Recommendation is a ranked, truncated list of scored places plus the
// candidates that were dropped for bad data.
type Recommendation struct {
	Places     []domain.ScoredPlace
	Considered int
	Excluded   []domain.ExcludedPlace
}

// Recommend scores every valid place, sorts by descending score (input order
// breaks ties) and keeps the requested number of places. Nothing is dropped
// for a low score; see AboveScore.
func (p *Planner) Recommend(ctx context.Context, places []domain.Place, prefs domain.PreferenceSet) (Recommendation, error) {
	valid, _, excluded := p.partition(places)

	scored, err := p.Scorer.ScoreAll(ctx, valid, prefs)
	if err != nil {
		return Recommendation{}, fmt.Errorf("recommend: %w", err)
	}

	slices.SortStableFunc(scored, func(a, b domain.ScoredPlace) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})

	limit := prefs.PlaceCount
	if limit <= 0 {
		limit = p.DefaultCount
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}

	return Recommendation{
		Places:     scored,
		Considered: len(valid),
		Excluded:   excluded,
	}, nil
}

// BuildRoute sequences the selected places. A nil start begins the route at
// the first valid selected place; otherwise it begins at the place nearest to
// start. Route.Order and stop indices refer to positions in selected.
func (p *Planner) BuildRoute(selected []domain.Place, start *domain.Coordinate) (domain.PlannedRoute, error) {
	valid, origIdx, excluded := p.partition(selected)

	var (
		route domain.OptimizedRoute
		err   error
	)
	if start == nil {
		route, err = p.optimize(valid, 0)
	} else {
		route, err = p.Optimizer.OptimizeFrom(valid, *start)
	}
	if err != nil {
		return domain.PlannedRoute{}, fmt.Errorf("build route: %w", err)
	}

	return expandRoute(route, valid, origIdx, excluded), nil
}

// Route is BuildRoute for a request value.
func (p *Planner) Route(req domain.RouteRequest) (domain.PlannedRoute, error) {
	return p.BuildRoute(req.Places, req.Start)
}

// BuildRouteFromPlace sequences the selected places starting at the place
// with the given id. The id must belong to a valid member of selected.
func (p *Planner) BuildRouteFromPlace(selected []domain.Place, placeID string) (domain.PlannedRoute, error) {
	valid, origIdx, excluded := p.partition(selected)

	startIndex := slices.IndexFunc(valid, func(pl domain.Place) bool { return pl.ID == placeID })
	if startIndex < 0 {
		return domain.PlannedRoute{}, fmt.Errorf("build route from place %q: %w", placeID, domain.ErrStartPlaceNotFound)
	}

	route, err := p.optimize(valid, startIndex)
	if err != nil {
		return domain.PlannedRoute{}, fmt.Errorf("build route from place %q: %w", placeID, err)
	}

	return expandRoute(route, valid, origIdx, excluded), nil
}

func (p *Planner) optimize(places []domain.Place, startIndex int) (domain.OptimizedRoute, error) {
	if len(places) == 0 {
		return domain.OptimizedRoute{Order: []int{}}, nil
	}
	return p.Optimizer.Optimize(places, startIndex)
}

// partition splits places into those with usable coordinates and those that
// are excluded. origIdx maps a position in valid back to its input position.
func (p *Planner) partition(places []domain.Place) (valid []domain.Place, origIdx []int, excluded []domain.ExcludedPlace) {
	valid = make([]domain.Place, 0, len(places))
	origIdx = make([]int, 0, len(places))

	for i, pl := range places {
		if err := pl.Location.Validate(); err != nil {
			p.Logger.Debug("excluding place", "index", i, "place_id", pl.ID, "err", err)
			excluded = append(excluded, domain.ExcludedPlace{Index: i, PlaceID: pl.ID, Err: err})
			continue
		}
		valid = append(valid, pl)
		origIdx = append(origIdx, i)
	}

	return valid, origIdx, excluded
}

// expandRoute rewrites the order in input positions and attaches per-leg distances.
func expandRoute(route domain.OptimizedRoute, valid []domain.Place, origIdx []int, excluded []domain.ExcludedPlace) domain.PlannedRoute {
	order := make([]int, len(route.Order))
	stops := make([]domain.RouteStop, len(route.Order))

	for k, vi := range route.Order {
		order[k] = origIdx[vi]
		stops[k] = domain.RouteStop{Index: origIdx[vi], Place: valid[vi]}
		if k > 0 {
			stops[k].LegKm = geo.Distance(valid[route.Order[k-1]].Location, valid[vi].Location)
		}
	}

	route.Order = order
	return domain.PlannedRoute{
		Route:    route,
		Stops:    stops,
		Excluded: excluded,
	}
}

// AboveScore returns the places whose score is strictly greater than floor,
// preserving order.
func AboveScore(ranked []domain.ScoredPlace, floor float64) []domain.ScoredPlace {
	out := make([]domain.ScoredPlace, 0, len(ranked))
	for _, sp := range ranked {
		if sp.Score > floor {
			out = append(out, sp)
		}
	}
	return out
}
