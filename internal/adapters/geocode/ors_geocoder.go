package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/platform/obs"
	"tour-planner-service/internal/ports"
)

const defaultBaseURL = "https://api.openrouteservice.org"

// ORSGeocoder resolves start addresses using OpenRouteService (/geocode/search).
//
// Lookups go through the optional cache first; fresh results are written back.
// The geocoder is safe for concurrent use.
type ORSGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
	country string
	cache   ports.GeocodeCache
}

type Option func(*ORSGeocoder)

// WithBaseURL points the geocoder at another ORS-compatible endpoint.
func WithBaseURL(u string) Option {
	return func(g *ORSGeocoder) { g.baseURL = strings.TrimRight(u, "/") }
}

// WithCountry restricts results to an ISO country code (e.g. "EG").
func WithCountry(code string) Option {
	return func(g *ORSGeocoder) { g.country = code }
}

func WithHTTPClient(c *http.Client) Option {
	return func(g *ORSGeocoder) { g.session = c }
}

func NewORSGeocoder(apiKey string, cache ports.GeocodeCache, opts ...Option) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	g := &ORSGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		cache:   cache,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode returns the coordinate of the best match for address.
func (g *ORSGeocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinate, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.Coordinate{}, errors.New("geocode: address must be non-empty")
	}

	if g.cache != nil {
		hit, err := g.cache.GetMany(ctx, []string{norm})
		if err != nil {
			return domain.Coordinate{}, fmt.Errorf("geocode: read cache: %w", err)
		}
		if c, ok := hit[norm]; ok {
			return c, nil
		}
	}

	coord, err := g.search(ctx, norm)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode %q: %w", norm, err)
	}

	if g.cache != nil {
		if err := g.cache.PutMany(ctx, map[string]domain.Coordinate{norm: coord}); err != nil {
			return domain.Coordinate{}, fmt.Errorf("geocode: write cache: %w", err)
		}
	}

	return coord, nil
}

func (g *ORSGeocoder) search(ctx context.Context, text string) (domain.Coordinate, error) {
	endpoint := g.baseURL + "/geocode/search"

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", text)
		q.Set("size", "1")
		if g.country != "" {
			q.Set("boundary.country", g.country)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinate{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinate{}, domain.ErrAddressNotFound
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinate{}, fmt.Errorf("invalid coordinate format: %v", coords)
	}

	c := domain.Coordinate{Lat: coords[1], Lng: coords[0]}
	if err := c.Validate(); err != nil {
		return domain.Coordinate{}, err
	}

	return c, nil
}

// normalize collapses whitespace so equivalent addresses share a cache key.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
