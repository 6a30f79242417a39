// Package model contains the GORM persistence models.
package model

import (
	"time"
)

// CountryModel maps to the countries table.
type CountryModel struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time

	Cities []CityModel `gorm:"foreignKey:CountryID"`
}

// TableName specifies the table name for GORM
func (CountryModel) TableName() string {
	return "countries"
}

// CityModel maps to the cities table. The bounding box columns come from
// seed migrations and always satisfy min <= max on both axes.
type CityModel struct {
	ID                      int64  `gorm:"primaryKey"`
	CountryID               int64  `gorm:"not null;index"`
	Name                    string `gorm:"not null"`
	BoundingBoxMinLatitude  float64
	BoundingBoxMaxLatitude  float64
	BoundingBoxMinLongitude float64
	BoundingBoxMaxLongitude float64
	CreatedAt               time.Time `gorm:"not null;default:now()"`
	UpdatedAt               time.Time

	Country CountryModel `gorm:"foreignKey:CountryID"`
}

// TableName specifies the table name for GORM
func (CityModel) TableName() string {
	return "cities"
}
