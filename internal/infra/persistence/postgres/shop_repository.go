package postgres

import (
	"context"

	"brewscout/internal/domain/entity"
	"brewscout/internal/domain/repository"
	"brewscout/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// shopRepository implements the repository.ShopRepository interface using GORM.
type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository is the constructor for shopRepository.
func NewShopRepository(db *gorm.DB) repository.ShopRepository {
	return &shopRepository{db: db}
}

// FindAll retrieves every shop.
func (repo *shopRepository) FindAll(ctx context.Context) ([]*entity.CoffeeShop, error) {
	var shopModels []*model.CoffeeShopModel
	if err := repo.db.WithContext(ctx).
		Order("shops.id").
		Find(&shopModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find shops")
	}

	return toShopDomains(shopModels), nil
}

// FindByCityName retrieves the shops belonging to the named city. An unknown
// city yields an empty slice, never an error.
func (repo *shopRepository) FindByCityName(ctx context.Context, cityName string) ([]*entity.CoffeeShop, error) {
	var shopModels []*model.CoffeeShopModel
	if err := repo.db.WithContext(ctx).
		Joins("JOIN cities ON cities.id = shops.city_id").
		Where("LOWER(cities.name) = LOWER(?)", cityName).
		Order("shops.id").
		Find(&shopModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find shops by city name")
	}

	return toShopDomains(shopModels), nil
}

// --- Mapper Functions ---

func toShopDomains(models []*model.CoffeeShopModel) []*entity.CoffeeShop {
	shops := make([]*entity.CoffeeShop, 0, len(models))
	for _, shopM := range models {
		shops = append(shops, toShopDomain(shopM))
	}

	return shops
}

// toShopDomain converts a GORM CoffeeShopModel to a domain CoffeeShop entity.
// The catalog never carries a distance; that is attached by ranking.
func toShopDomain(data *model.CoffeeShopModel) *entity.CoffeeShop {
	if data == nil {
		return nil
	}

	return &entity.CoffeeShop{
		ID:        data.ID,
		CityID:    data.CityID,
		Name:      data.Name,
		WebURL:    data.WebURL,
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
