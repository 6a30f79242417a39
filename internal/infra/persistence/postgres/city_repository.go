package postgres

import (
	"context"

	"brewscout/internal/domain/entity"
	"brewscout/internal/domain/repository"
	"brewscout/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// cityRepository implements the repository.CityRepository interface using GORM.
type cityRepository struct {
	db *gorm.DB
}

// NewCityRepository is the constructor for cityRepository.
func NewCityRepository(db *gorm.DB) repository.CityRepository {
	return &cityRepository{db: db}
}

// FindAll retrieves every city with its country preloaded.
func (repo *cityRepository) FindAll(ctx context.Context) ([]*entity.City, error) {
	var cityModels []*model.CityModel
	if err := repo.db.WithContext(ctx).
		Joins("Country").
		Order("cities.id").
		Find(&cityModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find cities")
	}

	cities := make([]*entity.City, 0, len(cityModels))
	for _, cityM := range cityModels {
		cities = append(cities, toCityDomain(cityM))
	}

	return cities, nil
}

// FindContaining retrieves all cities whose bounding box contains the point,
// borders included. The tie-break between overlapping boxes lives in the
// resolver, not here.
func (repo *cityRepository) FindContaining(ctx context.Context, latitude, longitude float64) ([]*entity.City, error) {
	var cityModels []*model.CityModel
	if err := repo.db.WithContext(ctx).
		Joins("Country").
		Where("bounding_box_min_latitude <= ? AND bounding_box_max_latitude >= ?", latitude, latitude).
		Where("bounding_box_min_longitude <= ? AND bounding_box_max_longitude >= ?", longitude, longitude).
		Order("cities.id").
		Find(&cityModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find cities by coordinates")
	}

	cities := make([]*entity.City, 0, len(cityModels))
	for _, cityM := range cityModels {
		cities = append(cities, toCityDomain(cityM))
	}

	return cities, nil
}

// --- Mapper Functions ---

// toCityDomain converts a GORM CityModel to a domain City entity.
func toCityDomain(data *model.CityModel) *entity.City {
	if data == nil {
		return nil
	}

	return &entity.City{
		ID:   data.ID,
		Name: data.Name,
		Country: entity.Country{
			ID:        data.Country.ID,
			Name:      data.Country.Name,
			CreatedAt: data.Country.CreatedAt,
			UpdatedAt: data.Country.UpdatedAt,
		},
		MinLatitude:  data.BoundingBoxMinLatitude,
		MaxLatitude:  data.BoundingBoxMaxLatitude,
		MinLongitude: data.BoundingBoxMinLongitude,
		MaxLongitude: data.BoundingBoxMaxLongitude,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
