// Package seed loads place fixtures from JSON or CSV files for dbtool.
package seed

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"tour-planner-service/internal/domain"

	"github.com/jszwec/csvutil"
)

// Record is one place as it appears in a seed file.
// CSV list columns are pipe separated ("historical|cultural").
type Record struct {
	ID            string   `json:"id" csv:"id"`
	Title         string   `json:"title" csv:"title"`
	Description   string   `json:"description" csv:"description,omitempty"`
	Address       string   `json:"address" csv:"address,omitempty"`
	Latitude      float64  `json:"latitude" csv:"latitude"`
	Longitude     float64  `json:"longitude" csv:"longitude"`
	Vibe          TagList  `json:"vibe" csv:"vibe"`
	EntryFees     *float64 `json:"entry_fees" csv:"entry_fees"`
	CameraFees    *float64 `json:"camera_fees" csv:"camera_fees"`
	PetsFriendly  bool     `json:"pets_friendly" csv:"pets_friendly"`
	KidsFriendly  bool     `json:"kids_friendly" csv:"kids_friendly"`
	BestTimeOfDay TagList  `json:"best_time_of_day" csv:"best_time_of_day"`
	BestSeason    TagList  `json:"best_season" csv:"best_season"`
	AverageRating float64  `json:"average_rating" csv:"average_rating"`
}

// TagList is a list of free-form tags.
type TagList []string

// UnmarshalText decodes a pipe separated CSV cell.
func (t *TagList) UnmarshalText(text []byte) error {
	*t = TagList{}
	for _, part := range strings.Split(string(text), "|") {
		if part = strings.TrimSpace(part); part != "" {
			*t = append(*t, part)
		}
	}
	return nil
}

// UnmarshalJSON decodes a JSON string array.
func (t *TagList) UnmarshalJSON(b []byte) error {
	var s []string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = s
	return nil
}

func (r Record) Place() domain.Place {
	return domain.Place{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Address:       r.Address,
		Location:      domain.Coordinate{Lat: r.Latitude, Lng: r.Longitude},
		Vibes:         []string(r.Vibe),
		EntryFee:      r.EntryFees,
		CameraFee:     r.CameraFees,
		PetsFriendly:  r.PetsFriendly,
		KidsFriendly:  r.KidsFriendly,
		BestTimeOfDay: []string(r.BestTimeOfDay),
		BestSeasons:   []string(r.BestSeason),
		AverageRating: r.AverageRating,
	}
}

// LoadFile reads places from path, choosing the decoder by file extension.
func LoadFile(path string) ([]domain.Place, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load seed: open %q: %w", path, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return DecodeJSON(f)
	case ".csv":
		return DecodeCSV(f)
	default:
		return nil, fmt.Errorf("load seed: unsupported file type %q", ext)
	}
}

func DecodeJSON(r io.Reader) ([]domain.Place, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode seed json: %w", err)
	}
	return toPlaces(records)
}

func DecodeCSV(r io.Reader) ([]domain.Place, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		return nil, fmt.Errorf("decode seed csv: read header: %w", err)
	}

	var records []Record
	if err := dec.Decode(&records); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed csv: %w", err)
	}
	return toPlaces(records)
}

// toPlaces converts records and rejects duplicates, blank ids and invalid coordinates.
func toPlaces(records []Record) ([]domain.Place, error) {
	seen := make(map[string]int, len(records))
	places := make([]domain.Place, 0, len(records))

	for i, rec := range records {
		rec.ID = strings.TrimSpace(rec.ID)
		if rec.ID == "" {
			return nil, fmt.Errorf("seed record %d: missing id", i)
		}
		if prev, ok := seen[rec.ID]; ok {
			return nil, fmt.Errorf("seed record %d: duplicate id %q (first at %d)", i, rec.ID, prev)
		}
		seen[rec.ID] = i

		p := rec.Place()
		if err := p.Location.Validate(); err != nil {
			return nil, fmt.Errorf("seed record %d (%s): %w", i, rec.ID, err)
		}
		places = append(places, p)
	}

	return places, nil
}
