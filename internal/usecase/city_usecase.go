package usecase

import (
	"context"

	"brewscout/internal/domain/entity"
)

// CityUsecase resolves coordinates to serviced cities.
type CityUsecase interface {
	// ListCities returns every serviced city.
	ListCities(ctx context.Context) ([]*entity.City, error)

	// ResolveCity finds the city whose bounding box contains the point.
	// Returns ErrCityNotFound (from the impl package) when no box matches.
	ResolveCity(ctx context.Context, latitude, longitude float64) (*entity.City, error)
}
