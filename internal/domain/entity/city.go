// Package entity contains the core business objects of the project.
package entity

import (
	"time"
)

// Country groups cities for display purposes.
type Country struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// City is a serviced area approximated by an axis-aligned bounding box.
// Rows are created by seed data and are immutable in normal operation;
// MinLatitude <= MaxLatitude and MinLongitude <= MaxLongitude always hold.
type City struct {
	ID           int64
	Name         string
	Country      Country
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Contains reports whether the point lies inside the city's bounding box,
// borders included.
func (c *City) Contains(latitude, longitude float64) bool {
	return c.MinLatitude <= latitude && latitude <= c.MaxLatitude &&
		c.MinLongitude <= longitude && longitude <= c.MaxLongitude
}

// BoxArea returns the bounding box area in squared degrees. Only used to
// compare overlapping boxes against each other, so the crude flat-earth
// product is good enough.
func (c *City) BoxArea() float64 {
	return (c.MaxLatitude - c.MinLatitude) * (c.MaxLongitude - c.MinLongitude)
}
