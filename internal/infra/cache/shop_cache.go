package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"brewscout/config"
	"brewscout/internal/domain/entity"
	"brewscout/internal/domain/service"
	"brewscout/internal/errors"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/fx"
)

// locationsKeyPattern is the per-city geo set. Members encode
// name:lat:lon:url, so shop names must not contain a colon.
const locationsKeyPattern = "shops:%s:locations"

const memberFieldCount = 4

// ShopCacheParams defines the required parameters
type ShopCacheParams struct {
	fx.In

	Pool   *redis.Pool
	Config *config.Config
	Logger *slog.Logger
}

type shopCache struct {
	pool   *redis.Pool
	logger *slog.Logger

	ttl          time.Duration
	radiusMeters float64
}

// NewShopCache creates the Redis-backed service.ShopCache.
func NewShopCache(params ShopCacheParams) service.ShopCache {
	return &shopCache{
		pool:         params.Pool,
		logger:       params.Logger,
		ttl:          params.Config.Cache.ShopsTTL,
		radiusMeters: params.Config.Cache.SearchRadiusMeters,
	}
}

// GetShops reads the whole geo set for the city. A missing key reads as an
// empty set, which callers treat as a cache miss.
func (c *shopCache) GetShops(ctx context.Context, cityName string) ([]*entity.CoffeeShop, error) {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get redis connection")
	}
	defer conn.Close()

	members, err := redis.Strings(conn.Do("ZRANGE", locationsKey(cityName), 0, -1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read shop locations")
	}

	shops := make([]*entity.CoffeeShop, 0, len(members))
	for _, member := range members {
		shop, err := decodeMember(member)
		if err != nil {
			// A malformed member means the key was written by something
			// else; treat the whole entry as a miss rather than reply with
			// partial data.
			c.logger.Warn("Dropping malformed shop cache member",
				slog.String("city", cityName),
				slog.Any("error", err),
			)

			return nil, nil
		}
		shops = append(shops, shop)
	}

	return shops, nil
}

// SetShops populates the city's geo index and arms the freshness TTL.
func (c *shopCache) SetShops(ctx context.Context, cityName string, shops []*entity.CoffeeShop) error {
	if len(shops) == 0 {
		return nil
	}

	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get redis connection")
	}
	defer conn.Close()

	key := locationsKey(cityName)
	for _, shop := range shops {
		if _, err := conn.Do("GEOADD", key, shop.Longitude, shop.Latitude, encodeMember(shop)); err != nil {
			return errors.Wrap(err, "failed to add shop location")
		}
	}

	if _, err := conn.Do("EXPIRE", key, int(c.ttl.Seconds())); err != nil {
		return errors.Wrap(err, "failed to set shop locations ttl")
	}

	return nil
}

// GetNearest runs GEOSEARCH around the source point, ascending by distance.
// Redis reports distances in the radius unit (meters); results carry
// kilometers to match the live ranker.
func (c *shopCache) GetNearest(ctx context.Context, cityName string, latitude, longitude float64) ([]*entity.CoffeeShop, error) {
	conn, err := c.pool.GetContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get redis connection")
	}
	defer conn.Close()

	items, err := redis.Values(conn.Do("GEOSEARCH", locationsKey(cityName),
		"FROMLONLAT", longitude, latitude,
		"BYRADIUS", c.radiusMeters, "m",
		"ASC", "WITHCOORD", "WITHDIST",
	))
	if err != nil {
		return nil, errors.Wrap(err, "failed to search shop locations")
	}

	shops := make([]*entity.CoffeeShop, 0, len(items))
	for _, item := range items {
		shop, err := parseGeoSearchEntry(item)
		if err != nil {
			c.logger.Warn("Dropping malformed geosearch entry",
				slog.String("city", cityName),
				slog.Any("error", err),
			)

			return nil, nil
		}
		shops = append(shops, shop)
	}

	return shops, nil
}

func locationsKey(cityName string) string {
	return fmt.Sprintf(locationsKeyPattern, strings.ToLower(cityName))
}

// encodeMember packs the shop into the geo-set member. The URL keeps its
// colons because decoding splits at most into four fields.
func encodeMember(shop *entity.CoffeeShop) string {
	return strings.Join([]string{
		shop.Name,
		strconv.FormatFloat(shop.Latitude, 'f', -1, 64),
		strconv.FormatFloat(shop.Longitude, 'f', -1, 64),
		shop.WebURL,
	}, ":")
}

func decodeMember(member string) (*entity.CoffeeShop, error) {
	fields := strings.SplitN(member, ":", memberFieldCount)
	if len(fields) != memberFieldCount {
		return nil, errors.Errorf("member %q has %d fields, want %d", member, len(fields), memberFieldCount)
	}

	latitude, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse member latitude")
	}
	longitude, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse member longitude")
	}

	return &entity.CoffeeShop{
		Name:      fields[0],
		Latitude:  latitude,
		Longitude: longitude,
		WebURL:    fields[3],
	}, nil
}

// parseGeoSearchEntry unpacks one [member, distance, [lon, lat]] reply row.
func parseGeoSearchEntry(item any) (*entity.CoffeeShop, error) {
	fields, err := redis.Values(item, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse geosearch entry")
	}
	if len(fields) < 3 {
		return nil, errors.Errorf("geosearch entry has %d fields, want 3", len(fields))
	}

	member, err := redis.String(fields[0], nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse geosearch member")
	}

	shop, err := decodeMember(member)
	if err != nil {
		return nil, err
	}

	distStr, err := redis.String(fields[1], nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse geosearch distance")
	}
	meters, err := strconv.ParseFloat(distStr, 64)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse geosearch distance value")
	}

	// Prefer the geo set's stored coordinates over the member-encoded ones;
	// they are what the distance was computed against.
	if coords, err := redis.Float64s(fields[2], nil); err == nil && len(coords) == 2 {
		shop.Longitude = coords[0]
		shop.Latitude = coords[1]
	}

	return shop.WithDistance(meters / 1000), nil
}
