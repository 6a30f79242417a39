package usecase

import (
	"brewscout/internal/domain/entity"
)

// GeoUsecase ranks shops by great-circle distance from a source point.
type GeoUsecase interface {
	// NearestShops computes the distance from source to every shop, sorts
	// ascending (ties keep input order) and returns the first topN, each
	// carrying its computed distance in kilometers.
	NearestShops(source entity.Location, shops []*entity.CoffeeShop, topN int) []*entity.CoffeeShop
}
