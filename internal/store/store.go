// Package store defines the listing cache abstraction for carfinder.
// Business logic depends on the Store interface, never on a concrete
// implementation, so it can be tested with mocks and no running database.
package store

import (
	"context"
	"errors"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("vehicle not found")

// ErrDuplicate is returned by Add when a record with the same VIN or the
// same provider listing is already stored.
var ErrDuplicate = errors.New("vehicle already cached")

// Store defines all data access operations for the listing cache.
type Store interface {
	// Search returns cached vehicles matching q, newest first.
	Search(ctx context.Context, q *VehicleQuery) ([]domain.VehicleRecord, error)
	// GetByVIN returns ErrNotFound when no record has the VIN.
	GetByVIN(ctx context.Context, vin string) (*domain.VehicleRecord, error)
	// Add inserts r and fills in its ID and CachedAt.
	Add(ctx context.Context, r *domain.VehicleRecord) error
	CountAll(ctx context.Context) (int, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
