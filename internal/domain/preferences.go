package domain

import "strings"

// Budget is the traveler's spending bracket.
// The zero value means no budget preference was stated.
type Budget string

const (
	BudgetNone   Budget = ""
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
)

// ParseBudget normalizes a survey answer. Unrecognized values are kept as-is so
// the scorer can treat them as "no preference".
func ParseBudget(s string) Budget {
	return Budget(strings.ToLower(strings.TrimSpace(s)))
}

// Companion is a type of travel companion.
type Companion string

const (
	CompanionKids    Companion = "kids"
	CompanionPets    Companion = "pets"
	CompanionElderly Companion = "elderly"
	CompanionSolo    Companion = "solo"
	CompanionGroup   Companion = "group"
	CompanionPartner Companion = "partner"
)

// ParseCompanion normalizes a survey answer; "romantic" is accepted as partner.
func ParseCompanion(s string) Companion {
	c := Companion(strings.ToLower(strings.TrimSpace(s)))
	if c == "romantic" {
		return CompanionPartner
	}
	return c
}

// The traveler's survey answers, one field per question.
// A PreferenceSet is built once per planning session and treated as immutable.
// Empty slices mean the question was not answered.
type PreferenceSet struct {
	Vibes      []string
	Budget     Budget
	Companions []Companion
	TimesOfDay []string
	Seasons    []string
	PlaceCount int
}

// Has reports whether the companion type was requested.
func (p PreferenceSet) Has(c Companion) bool {
	for _, v := range p.Companions {
		if v == c {
			return true
		}
	}
	return false
}
