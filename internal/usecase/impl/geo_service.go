package impl

import (
	"sort"

	"brewscout/internal/domain/entity"
	"brewscout/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const metersPerKilometer = 1000

type geoService struct{}

// NewGeoService creates a new distance ranker instance
func NewGeoService() usecase.GeoUsecase {
	return &geoService{}
}

// NearestShops ranks shops by great-circle distance from the source point.
// The sort is stable: shops at equal distance keep their input order.
func (s *geoService) NearestShops(source entity.Location, shops []*entity.CoffeeShop, topN int) []*entity.CoffeeShop {
	if topN <= 0 || len(shops) == 0 {
		return nil
	}

	from := orb.Point{source.Longitude, source.Latitude}

	ranked := make([]*entity.CoffeeShop, 0, len(shops))
	for _, shop := range shops {
		km := geo.DistanceHaversine(from, orb.Point{shop.Longitude, shop.Latitude}) / metersPerKilometer
		ranked = append(ranked, shop.WithDistance(km))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].Distance < *ranked[j].Distance
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	return ranked
}
