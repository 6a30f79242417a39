package usecase

import (
	"context"

	"brewscout/internal/domain/entity"
)

// ShopUsecase exposes the coffee-shop catalog.
type ShopUsecase interface {
	// ListShops returns the whole catalog.
	ListShops(ctx context.Context) ([]*entity.CoffeeShop, error)

	// ShopsForCity returns the shops of the named city; empty slice, never
	// an error, when the city has none.
	ShopsForCity(ctx context.Context, cityName string) ([]*entity.CoffeeShop, error)
}
