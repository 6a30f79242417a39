// Package service defines the interfaces for infrastructure collaborators
// the use cases depend on but do not implement.
package service

import (
	"context"

	"brewscout/internal/domain/entity"
)

// ShopCache is a cache-aside store over a geo index. Entries are derived,
// disposable copies of the catalog: losing the cache only costs a recompute.
type ShopCache interface {
	// GetShops returns the cached shop list for the city, or an empty slice
	// on miss. Cached shops carry no distance.
	GetShops(ctx context.Context, cityName string) ([]*entity.CoffeeShop, error)

	// SetShops populates the city's geo index with the shops and arms the
	// configured freshness TTL.
	SetShops(ctx context.Context, cityName string, shops []*entity.CoffeeShop) error

	// GetNearest runs a proximity query around the source point, bounded by
	// the configured radius, ascending by distance. Each result carries its
	// distance in kilometers. An empty result is indistinguishable from a
	// miss; callers fall back to live ranking either way.
	GetNearest(ctx context.Context, cityName string, latitude, longitude float64) ([]*entity.CoffeeShop, error)
}
