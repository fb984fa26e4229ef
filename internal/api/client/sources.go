package client

import (
	"context"
	"fmt"
	"net/url"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// SourceStatus returns the listing cache and provider status.
func (c *Client) SourceStatus(ctx context.Context) (*domain.DataSourceStatus, error) {
	var status domain.DataSourceStatus
	if err := c.get(ctx, "/api/v1/sources/status", &status); err != nil {
		return nil, fmt.Errorf("getting source status: %w", err)
	}
	return &status, nil
}

// ListingDetails fetches one listing from its provider. Use IsNotFound to
// detect a missing listing.
func (c *Client) ListingDetails(ctx context.Context, source, id string) (*domain.VehicleListing, error) {
	path := "/api/v1/sources/" + url.PathEscape(source) + "/listings/" + url.PathEscape(id)

	var l domain.VehicleListing
	if err := c.get(ctx, path, &l); err != nil {
		return nil, fmt.Errorf("getting listing %s/%s: %w", source, id, err)
	}
	return &l, nil
}

// Refresh pulls live listings into the server's cache. Nil preferences use
// the server's default refresh search.
func (c *Client) Refresh(ctx context.Context, prefs *domain.PreferenceSet) (*domain.RefreshResult, error) {
	body := struct {
		Preferences *domain.PreferenceSet `json:"preferences,omitempty"`
	}{Preferences: prefs}

	var res domain.RefreshResult
	if err := c.post(ctx, "/api/v1/refresh", body, &res); err != nil {
		return nil, fmt.Errorf("refreshing live data: %w", err)
	}
	return &res, nil
}
