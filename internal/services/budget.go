package services

import (
	"math"
	"tour-planner-service/internal/domain"
)

type budgetBracket struct {
	max   float64
	label string
}

// Fee ceilings per budget bracket. A place whose total fee is at or below the
// ceiling fits the bracket.
var budgetBrackets = map[domain.Budget]budgetBracket{
	domain.BudgetLow:    {max: 100, label: "Budget-friendly"},
	domain.BudgetMedium: {max: 500, label: "Moderately priced"},
	domain.BudgetHigh:   {max: math.Inf(1), label: "Premium experience"},
}

// budgetFit classifies a total fee against the traveler's bracket.
// ok is false when the bracket is empty or unknown, which contributes nothing.
// Penalties carry no reason.
func budgetFit(w ScoringWeights, totalFee float64, budget domain.Budget) (points float64, reason string, ok bool) {
	bracket, known := budgetBrackets[budget]
	if !known {
		return 0, "", false
	}

	if totalFee <= bracket.max {
		if budget == domain.BudgetLow && totalFee == 0 {
			return w.BudgetFit, "Free entry - perfect for your budget!", true
		}
		return w.BudgetFit, bracket.label, true
	}

	if totalFee > bracket.max*w.BudgetFarOverRatio {
		return -w.BudgetFarOverPenalty, "", true
	}
	return -w.BudgetOverPenalty, "", true
}
