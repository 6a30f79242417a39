package repository

import (
	"context"

	"brewscout/internal/domain/entity"
)

// ShopRepository defines the interface for coffee-shop catalog lookups.
// The catalog is the source of truth; caching happens a layer above.
type ShopRepository interface {
	// FindAll retrieves every shop.
	FindAll(ctx context.Context) ([]*entity.CoffeeShop, error)

	// FindByCityName retrieves the shops belonging to the named city,
	// matched case-insensitively. An unknown city yields an empty slice,
	// never an error.
	FindByCityName(ctx context.Context, cityName string) ([]*entity.CoffeeShop, error)
}
