package services

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strings"
	"tour-planner-service/internal/domain"

	"golang.org/x/sync/errgroup"
)

// ScoringWeights is the full weight table used by the Scorer.
// Every adjustment the scorer can make is named here; no rule uses an inline literal.
type ScoringWeights struct {
	Base float64

	VibeMatch           float64 // scaled by the fraction of requested vibes present
	VibeMismatchPenalty float64 // applied when vibes were requested and none match

	BudgetFit            float64
	BudgetOverPenalty    float64
	BudgetFarOverPenalty float64
	BudgetFarOverRatio   float64 // multiple of the bracket ceiling that counts as "far over"

	CompanionMatch           float64
	CompanionMismatchPenalty float64
	ElderlyBonus             float64
	CompanionCap             float64 // companion contribution is clamped to [0, CompanionCap]

	TimeOfDayMatch float64
	SeasonMatch    float64

	HighRating          float64
	HighRatingThreshold float64

	MinScore float64
	MaxScore float64
}

// DefaultScoringWeights returns the production weight table.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Base: 50,

		VibeMatch:           30,
		VibeMismatchPenalty: 10,

		BudgetFit:            20,
		BudgetOverPenalty:    10,
		BudgetFarOverPenalty: 20,
		BudgetFarOverRatio:   1.5,

		CompanionMatch:           10,
		CompanionMismatchPenalty: 10,
		ElderlyBonus:             5,
		CompanionCap:             20,

		TimeOfDayMatch: 15,
		SeasonMatch:    10,

		HighRating:          5,
		HighRatingThreshold: 4.5,

		MinScore: 0,
		MaxScore: 100,
	}
}

// Adjustment is the contribution of a single scoring rule.
type Adjustment struct {
	Rule    string
	Points  float64
	Reasons []string
}

type scoringRule struct {
	name  string
	apply func(w ScoringWeights, p domain.Place, prefs domain.PreferenceSet) (Adjustment, bool)
}

// Rules are applied in this order; reasons are emitted in the same order.
var scoringRules = []scoringRule{
	{name: "vibe", apply: vibeRule},
	{name: "budget", apply: budgetRule},
	{name: "companions", apply: companionRule},
	{name: "time_of_day", apply: timeOfDayRule},
	{name: "season", apply: seasonRule},
	{name: "rating", apply: ratingRule},
}

// Scorer assigns a bounded match score to a place for a given preference set.
// It is a pure function of its inputs and safe for concurrent use.
type Scorer struct {
	Weights ScoringWeights
}

func NewScorer(w ScoringWeights) Scorer {
	return Scorer{Weights: w}
}

// Explain returns the adjustment of every rule that fired, in rule order.
func (s Scorer) Explain(place domain.Place, prefs domain.PreferenceSet) []Adjustment {
	out := make([]Adjustment, 0, len(scoringRules))
	for _, r := range scoringRules {
		adj, ok := r.apply(s.Weights, place, prefs)
		if !ok {
			continue
		}
		adj.Rule = r.name
		out = append(out, adj)
	}
	return out
}

// Score folds the rule table over the base score, clamps the result into
// [MinScore, MaxScore] and rounds to a whole point.
func (s Scorer) Score(place domain.Place, prefs domain.PreferenceSet) domain.ScoredPlace {
	score := s.Weights.Base
	reasons := []string{}

	for _, adj := range s.Explain(place, prefs) {
		score += adj.Points
		reasons = append(reasons, adj.Reasons...)
	}

	score = math.Max(s.Weights.MinScore, math.Min(s.Weights.MaxScore, score))

	return domain.ScoredPlace{
		Place:   place,
		Score:   math.Round(score),
		Reasons: reasons,
	}
}

// Below this many places ScoreAll runs sequentially.
const parallelScoreThreshold = 256

// ScoreAll scores every place against prefs. Large candidate sets are split
// across goroutines; the output order always matches the input order.
func (s Scorer) ScoreAll(ctx context.Context, places []domain.Place, prefs domain.PreferenceSet) ([]domain.ScoredPlace, error) {
	out := make([]domain.ScoredPlace, len(places))

	if len(places) < parallelScoreThreshold {
		for i, p := range places {
			out[i] = s.Score(p, prefs)
		}
		return out, nil
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (len(places) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(places); start += chunk {
		end := min(start+chunk, len(places))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				out[i] = s.Score(places[i], prefs)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score all: %w", err)
	}

	return out, nil
}

func vibeRule(w ScoringWeights, p domain.Place, prefs domain.PreferenceSet) (Adjustment, bool) {
	requested := uniqueFold(prefs.Vibes)
	if len(requested) == 0 {
		return Adjustment{}, false
	}

	matched := make([]string, 0, len(requested))
	for _, v := range requested {
		if p.HasVibe(v) {
			matched = append(matched, v)
		}
	}

	// Kept as an all-or-nothing gate: a place matching no requested vibe is
	// pushed down even when every other dimension fits.
	if len(matched) == 0 {
		return Adjustment{Points: -w.VibeMismatchPenalty}, true
	}

	fraction := float64(len(matched)) / float64(len(requested))
	return Adjustment{
		Points:  fraction * w.VibeMatch,
		Reasons: []string{fmt.Sprintf("Matches your %s vibe", strings.Join(matched, ", "))},
	}, true
}

func budgetRule(w ScoringWeights, p domain.Place, prefs domain.PreferenceSet) (Adjustment, bool) {
	if prefs.Budget == domain.BudgetNone {
		return Adjustment{}, false
	}

	points, reason, ok := budgetFit(w, p.TotalFee(), prefs.Budget)
	if !ok {
		return Adjustment{}, false
	}

	adj := Adjustment{Points: points}
	if points > 0 {
		adj.Reasons = []string{reason}
	}
	return adj, true
}

func companionRule(w ScoringWeights, p domain.Place, prefs domain.PreferenceSet) (Adjustment, bool) {
	if len(prefs.Companions) == 0 {
		return Adjustment{}, false
	}

	points := 0.0
	reasons := []string{}

	if prefs.Has(domain.CompanionKids) {
		if p.KidsFriendly {
			points += w.CompanionMatch
			reasons = append(reasons, "Kid-friendly")
		} else {
			points -= w.CompanionMismatchPenalty
		}
	}

	if prefs.Has(domain.CompanionPets) {
		if p.PetsFriendly {
			points += w.CompanionMatch
			reasons = append(reasons, "Pet-friendly")
		} else {
			points -= w.CompanionMismatchPenalty
		}
	}

	if prefs.Has(domain.CompanionElderly) {
		points += w.ElderlyBonus
	}

	if prefs.Has(domain.CompanionPartner) && p.HasVibe("romantic") {
		points += w.CompanionMatch
		reasons = append(reasons, "Perfect for couples")
	}

	return Adjustment{
		Points:  math.Max(0, math.Min(w.CompanionCap, points)),
		Reasons: reasons,
	}, true
}

func timeOfDayRule(w ScoringWeights, p domain.Place, prefs domain.PreferenceSet) (Adjustment, bool) {
	if len(prefs.TimesOfDay) == 0 {
		return Adjustment{}, false
	}

	anyTime := domain.ContainsFold(p.BestTimeOfDay, "any time") || domain.ContainsFold(p.BestTimeOfDay, "anytime")
	if !anyTime && !domain.IntersectsFold(p.BestTimeOfDay, prefs.TimesOfDay) {
		return Adjustment{}, false
	}

	return Adjustment{
		Points:  w.TimeOfDayMatch,
		Reasons: []string{"Best time matches your preference"},
	}, true
}

func seasonRule(w ScoringWeights, p domain.Place, prefs domain.PreferenceSet) (Adjustment, bool) {
	if len(prefs.Seasons) == 0 {
		return Adjustment{}, false
	}

	allYear := domain.ContainsFold(p.BestSeasons, "all year")
	if !allYear && !domain.IntersectsFold(p.BestSeasons, prefs.Seasons) {
		return Adjustment{}, false
	}

	return Adjustment{
		Points:  w.SeasonMatch,
		Reasons: []string{"Best season matches your visit time"},
	}, true
}

func ratingRule(w ScoringWeights, p domain.Place, _ domain.PreferenceSet) (Adjustment, bool) {
	if p.AverageRating < w.HighRatingThreshold {
		return Adjustment{}, false
	}

	return Adjustment{
		Points:  w.HighRating,
		Reasons: []string{"Highly rated"},
	}, true
}

// uniqueFold drops blanks and case-insensitive duplicates, keeping first occurrences.
func uniqueFold(list []string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		v = strings.TrimSpace(v)
		if v == "" || domain.ContainsFold(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
