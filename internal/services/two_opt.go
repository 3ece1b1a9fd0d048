package services

import (
	"fmt"
	"slices"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/geo"
)

// DefaultMaxTwoOptPasses bounds the number of full 2-opt passes.
const DefaultMaxTwoOptPasses = 100

// SwapObserver receives a copy of the visiting order and its distance after
// every accepted 2-opt move.
type SwapObserver func(order []int, distanceKm float64)

// TwoOptRoute improves an open visiting order with first-improvement 2-opt.
//
// Each pass scans every position pair 1 <= i < j < n and reverses order[i..j]
// whenever that strictly shortens the path. Position 0 never moves, so the
// start of the route is preserved. Passes repeat until one makes no
// improvement or maxPasses is reached; either way the best order found is
// returned, and it is never longer than initialOrder.
//
// The order slice is replaced wholesale on each accepted move; initialOrder
// and any slice handed to observe are never modified afterwards.
func TwoOptRoute(
	places []domain.Place,
	initialOrder []int,
	maxPasses int,
	speedKmh float64,
	observe SwapObserver,
) (domain.OptimizedRoute, error) {
	if err := validateOrder(initialOrder, len(places)); err != nil {
		return domain.OptimizedRoute{}, fmt.Errorf("two-opt route: %w", err)
	}

	points, err := placeCoordinates(places)
	if err != nil {
		return domain.OptimizedRoute{}, fmt.Errorf("two-opt route: %w", err)
	}

	if maxPasses <= 0 {
		maxPasses = DefaultMaxTwoOptPasses
	}

	dist := geo.DistanceMatrix(points)
	best := slices.Clone(initialOrder)
	bestKm := orderDistance(dist, best)
	n := len(best)

	// With fewer than three places there is no pair to reverse.
	for pass := 0; n > 2 && pass < maxPasses; pass++ {
		improved := false

		for i := 1; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				if !reversalShortens(dist, best, i, j) {
					continue
				}

				candidate := reverseSegment(best, i, j)
				candidateKm := orderDistance(dist, candidate)
				if candidateKm >= bestKm {
					continue
				}

				best = candidate
				bestKm = candidateKm
				improved = true

				if observe != nil {
					observe(slices.Clone(best), bestKm)
				}
			}
		}

		if !improved {
			break
		}
	}

	return domain.OptimizedRoute{
		Order:            best,
		TotalDistanceKm:  bestKm,
		EstimatedMinutes: geo.TravelTime(bestKm, speedKmh),
	}, nil
}

// reversalShortens compares only the edges a reversal of order[i..j] touches.
// The open path has no edge after the last position.
func reversalShortens(dist [][]float64, order []int, i, j int) bool {
	a, b, c := order[i-1], order[i], order[j]

	before := dist[a][b]
	after := dist[a][c]

	if j+1 < len(order) {
		d := order[j+1]
		before += dist[c][d]
		after += dist[b][d]
	}

	return after < before
}

// reverseSegment returns a new order with positions i..j reversed.
func reverseSegment(order []int, i, j int) []int {
	out := slices.Clone(order)
	slices.Reverse(out[i : j+1])
	return out
}

func orderDistance(dist [][]float64, order []int) float64 {
	total := 0.0
	for k := 0; k+1 < len(order); k++ {
		total += dist[order[k]][order[k+1]]
	}
	return total
}

func validateOrder(order []int, n int) error {
	if len(order) != n {
		return fmt.Errorf("%w: got %d indices for %d places", domain.ErrInvalidOrder, len(order), n)
	}

	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n || seen[idx] {
			return fmt.Errorf("%w: bad or repeated index %d", domain.ErrInvalidOrder, idx)
		}
		seen[idx] = true
	}
	return nil
}
