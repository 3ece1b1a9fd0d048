package domain

import "strings"

// Represents a point of interest a traveler can visit.
// Places are owned by the persistence layer; planning code receives them by value
// and never mutates them. Absent fees mean free or unknown.
type Place struct {
	ID            string
	Title         string
	Description   string
	Address       string
	Location      Coordinate
	Vibes         []string
	EntryFee      *float64
	CameraFee     *float64
	PetsFriendly  bool
	KidsFriendly  bool
	BestTimeOfDay []string
	BestSeasons   []string
	AverageRating float64
}

// TotalFee sums the entry and camera fees, treating absent values as zero.
func (p Place) TotalFee() float64 {
	total := 0.0
	if p.EntryFee != nil {
		total += *p.EntryFee
	}
	if p.CameraFee != nil {
		total += *p.CameraFee
	}
	return total
}

// HasVibe reports whether the place carries the given vibe tag (case-insensitive).
func (p Place) HasVibe(vibe string) bool {
	return containsFold(p.Vibes, vibe)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}

// IntersectsFold reports whether any element of a appears in b, ignoring case.
func IntersectsFold(a, b []string) bool {
	for _, v := range a {
		if containsFold(b, v) {
			return true
		}
	}
	return false
}

// ContainsFold reports whether list contains s, ignoring case and surrounding space.
func ContainsFold(list []string, s string) bool { return containsFold(list, s) }
