package impl

import (
	"context"

	"brewscout/internal/domain/entity"
	"brewscout/internal/domain/repository"
	"brewscout/internal/errors"
	"brewscout/internal/usecase"
)

type shopService struct {
	shopRepo repository.ShopRepository
}

// NewShopService creates a new shop catalog service instance
func NewShopService(shopRepo repository.ShopRepository) usecase.ShopUsecase {
	return &shopService{shopRepo: shopRepo}
}

// ListShops returns the whole catalog.
func (s *shopService) ListShops(ctx context.Context) ([]*entity.CoffeeShop, error) {
	shops, err := s.shopRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shops")
	}

	return shops, nil
}

// ShopsForCity returns the shops of the named city. An unknown city is an
// expected condition and yields an empty slice.
func (s *shopService) ShopsForCity(ctx context.Context, cityName string) ([]*entity.CoffeeShop, error) {
	shops, err := s.shopRepo.FindByCityName(ctx, cityName)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find shops for city %q", cityName)
	}

	return shops, nil
}
