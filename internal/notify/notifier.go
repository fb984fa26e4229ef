// Package notify defines the notification interface and implementations
// for refresh summaries.
package notify

import (
	"context"
	"time"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// RefreshPayload describes a completed live-data refresh.
type RefreshPayload struct {
	NewListings int
	Fetched     int
	Timestamp   time.Time
	// Highlights are the newly cached listings in search order.
	Highlights []domain.VehicleListing
}

// Notifier delivers refresh summaries.
type Notifier interface {
	SendRefresh(ctx context.Context, p *RefreshPayload) error
}
