// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the server and dbtool.
type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	LogFormat   string
	CORSOrigins []string

	// RedisURL selects the Redis geocode cache when set; otherwise Postgres is used.
	RedisURL string
	// ORSAPIKey enables start-address geocoding through OpenRouteService.
	ORSAPIKey string
	// GeocodeCountry restricts geocoding results to one ISO country code.
	GeocodeCountry string

	AverageSpeedKmh   float64
	TwoOptMaxPasses   int
	DefaultPlaceCount int
	Dwell             time.Duration

	SeedPath string
}

// Load reads the environment and returns a Config.
// Returns an error naming every variable that is missing or malformed.
func Load() (Config, error) {
	cfg := Config{
		Port:        Get("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    Get("LOG_LEVEL", "info"),
		LogFormat:   Get("LOG_FORMAT", "text"),
		CORSOrigins: splitCSV(Get("CORS_ORIGINS", "http://localhost:3000")),
		RedisURL:    os.Getenv("REDIS_URL"),
		ORSAPIKey:   strings.TrimSpace(os.Getenv("ORS_API_KEY")),
		SeedPath:    Get("SEED_PATH", "data/seeds/places.json"),

		GeocodeCountry: Get("GEOCODE_COUNTRY", "EG"),
	}

	var problems []string

	if cfg.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL is required")
	}

	var err error
	if cfg.AverageSpeedKmh, err = strconv.ParseFloat(Get("AVERAGE_SPEED_KMH", "30"), 64); err != nil || cfg.AverageSpeedKmh <= 0 {
		problems = append(problems, "AVERAGE_SPEED_KMH must be a positive number")
	}
	if cfg.TwoOptMaxPasses, err = strconv.Atoi(Get("TWO_OPT_MAX_PASSES", "100")); err != nil || cfg.TwoOptMaxPasses <= 0 {
		problems = append(problems, "TWO_OPT_MAX_PASSES must be a positive integer")
	}
	if cfg.DefaultPlaceCount, err = strconv.Atoi(Get("DEFAULT_PLACE_COUNT", "5")); err != nil || cfg.DefaultPlaceCount <= 0 {
		problems = append(problems, "DEFAULT_PLACE_COUNT must be a positive integer")
	}

	dwell, err := strconv.Atoi(Get("DWELL_MINUTES", "90"))
	if err != nil || dwell < 0 {
		problems = append(problems, "DWELL_MINUTES must be a non-negative integer")
	}
	cfg.Dwell = time.Duration(dwell) * time.Minute

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("load config: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// Get returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
