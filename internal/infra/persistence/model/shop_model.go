package model

import (
	"time"
)

// CoffeeShopModel maps to the shops table.
type CoffeeShopModel struct {
	ID        int64  `gorm:"primaryKey"`
	CityID    int64  `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	WebURL    string `gorm:"column:web_url;not null"`
	Latitude  float64
	Longitude float64
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time

	City CityModel `gorm:"foreignKey:CityID"`
}

// TableName specifies the table name for GORM
func (CoffeeShopModel) TableName() string {
	return "shops"
}
