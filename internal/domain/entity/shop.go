package entity

import (
	"time"
)

// CoffeeShop is a venue belonging to a city. Distance is nil until a ranking
// step has computed it; a shop without a distance must never be sent to a chat.
type CoffeeShop struct {
	ID        int64
	CityID    int64
	Name      string
	WebURL    string
	Latitude  float64
	Longitude float64
	Distance  *float64 // kilometers from the requesting user, set by ranking
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WithDistance returns a copy of the shop carrying the computed distance.
func (s *CoffeeShop) WithDistance(km float64) *CoffeeShop {
	cloned := *s
	cloned.Distance = &km

	return &cloned
}
