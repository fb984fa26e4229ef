// Package sources provides the vehicle listing providers behind a single
// Adapter interface: fixture-backed marketplace providers and the auto.dev
// live listings API.
package sources

import (
	"context"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// Adapter is one listing provider. Implementations never return errors:
// transport, status and parse failures are logged and yield no results.
// Implementations must be safe for concurrent use.
type Adapter interface {
	// Name is the provider identifier stamped on every listing it returns.
	Name() string

	// Search returns at most c.Limit() listings matching c.
	Search(ctx context.Context, c domain.SearchCriteria) []domain.VehicleListing

	// GetDetails looks up one listing by its provider ID.
	GetDetails(ctx context.Context, externalID string) (*domain.VehicleListing, bool)

	// Capability reports how the provider is configured.
	Capability() domain.SourceCapability
}

// Names returns the names of the given adapters in order.
func Names(adapters []Adapter) []string {
	names := make([]string, 0, len(adapters))
	for _, a := range adapters {
		names = append(names, a.Name())
	}
	return names
}
