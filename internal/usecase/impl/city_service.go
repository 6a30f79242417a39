// Package impl contains the concrete use case services.
package impl

import (
	"context"

	"brewscout/internal/domain/entity"
	"brewscout/internal/domain/repository"
	"brewscout/internal/errors"
	"brewscout/internal/usecase"
)

var (
	// ErrCityNotFound is returned when no city's bounding box contains the point
	ErrCityNotFound = errors.New("no city found for coordinates")
)

type cityService struct {
	cityRepo repository.CityRepository
}

// NewCityService creates a new city service instance
func NewCityService(cityRepo repository.CityRepository) usecase.CityUsecase {
	return &cityService{cityRepo: cityRepo}
}

// ListCities returns every serviced city.
func (s *cityService) ListCities(ctx context.Context) ([]*entity.City, error) {
	cities, err := s.cityRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cities")
	}

	return cities, nil
}

// ResolveCity finds the city whose bounding box contains the point. Seed data
// contains overlapping boxes; when more than one matches the smallest box
// wins, so a district box inside a metro box resolves to the district.
func (s *cityService) ResolveCity(ctx context.Context, latitude, longitude float64) (*entity.City, error) {
	candidates, err := s.cityRepo.FindContaining(ctx, latitude, longitude)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find cities by coordinates")
	}

	if len(candidates) == 0 {
		return nil, ErrCityNotFound
	}

	best := candidates[0]
	for _, city := range candidates[1:] {
		if city.BoxArea() < best.BoxArea() {
			best = city
		}
	}

	return best, nil
}
