// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"brewscout/internal/domain/entity"
)

// CityRepository defines the interface for city-related database operations.
// Cities are read-only to the hook pipeline; rows come from seed data.
type CityRepository interface {
	// FindAll retrieves every city with its country preloaded.
	FindAll(ctx context.Context) ([]*entity.City, error)

	// FindContaining retrieves all cities whose bounding box contains the
	// point, borders included. Returns an empty slice when no box matches;
	// the tie-break between overlapping boxes is the caller's concern.
	FindContaining(ctx context.Context, latitude, longitude float64) ([]*entity.City, error)
}
