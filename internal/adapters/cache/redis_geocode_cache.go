package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

const (
	defaultGeocodeKeyPrefix = "geocode:"
	DefaultGeocodeTTL       = 30 * 24 * time.Hour
)

// RedisGeocodeCache stores geocoded addresses as "lng,lat" strings with a TTL.
type RedisGeocodeCache struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	if ttl <= 0 {
		ttl = DefaultGeocodeTTL
	}
	return &RedisGeocodeCache{Client: client, Prefix: defaultGeocodeKeyPrefix, TTL: ttl}
}

// Fetch cached coordinates for the given addresses. Misses are absent from the result.
func (c *RedisGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinate, err error) {
	defer obs.Time(ctx, "geocode.redis.GetMany")(&err)

	if c.Client == nil {
		return nil, errors.New("redis geocode cache: client is nil")
	}

	uniq := normalizeAddresses(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Coordinate{}, nil
	}

	keys := make([]string, len(uniq))
	for i, a := range uniq {
		keys[i] = c.key(a)
	}

	vals, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: redis mget: %w", err)
	}

	out := make(map[string]domain.Coordinate, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}

		coord, err := decodeCoordinate(s)
		if err != nil {
			return nil, fmt.Errorf("get geocode cache: address=%q: %w", uniq[i], err)
		}
		out[uniq[i]] = coord
	}

	return out, nil
}

// Store address -> coordinate mappings, refreshing their TTL.
func (c *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinate) error {
	if c.Client == nil {
		return errors.New("redis geocode cache: client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	if err := checkKeys(results); err != nil {
		return fmt.Errorf("insert geocode cache: %w", err)
	}

	pipe := c.Client.TxPipeline()
	for addr, coord := range results {
		pipe.Set(ctx, c.key(strings.TrimSpace(addr)), encodeCoordinate(coord), c.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: redis exec: %w", err)
	}

	return nil
}

func (c *RedisGeocodeCache) key(address string) string {
	return c.Prefix + address
}

func encodeCoordinate(c domain.Coordinate) string {
	return strconv.FormatFloat(c.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

func decodeCoordinate(s string) (domain.Coordinate, error) {
	lngStr, latStr, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Coordinate{}, fmt.Errorf("malformed cached value %q", s)
	}

	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("parse lng %q: %w", lngStr, err)
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("parse lat %q: %w", latStr, err)
	}

	return domain.Coordinate{Lat: lat, Lng: lng}, nil
}
