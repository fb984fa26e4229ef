package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/carfinder/internal/api/handlers"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// fakeSources implements SourceInspector for testing.
type fakeSources struct {
	status   domain.DataSourceStatus
	listings map[string]domain.VehicleListing
}

func (f *fakeSources) DataSourceStatus(context.Context) domain.DataSourceStatus {
	return f.status
}

func (f *fakeSources) Details(_ context.Context, source, id string) (*domain.VehicleListing, bool) {
	l, ok := f.listings[source+"/"+id]
	if !ok {
		return nil, false
	}
	return &l, true
}

func newSourcesAPI(t *testing.T) humatest.TestAPI {
	t.Helper()

	f := &fakeSources{
		status: domain.DataSourceStatus{
			LocalDatabase: domain.LocalDatabaseStatus{VehicleCount: 12, Status: "active"},
			LiveSources: domain.LiveSourceStats{
				TotalSources:  3,
				ActiveSources: []string{"cars.com", "autotrader", "cargurus"},
				SourceCapabilities: map[string]domain.SourceCapability{
					"cargurus": {BaseURL: "https://www.cargurus.com"},
				},
			},
		},
		listings: map[string]domain.VehicleListing{
			"cargurus/cg_001": {Source: "cargurus", ExternalID: "cg_001", Make: "Honda", Model: "Accord", Year: 2021},
		},
	}

	_, api := humatest.New(t)
	handlers.RegisterSourcesRoutes(api, handlers.NewSourcesHandler(f))
	return api
}

func TestSourcesHandler_Status(t *testing.T) {
	t.Parallel()

	resp := newSourcesAPI(t).Get("/api/v1/sources/status")

	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, `"local_database":{"vehicle_count":12,"status":"active"}`)
	assert.Contains(t, body, `"total_sources":3`)
	assert.Contains(t, body, `"active_sources":["cars.com","autotrader","cargurus"]`)
	assert.Contains(t, body, `"has_api_key":false`)
}

func TestSourcesHandler_Details(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "known listing",
			path:       "/api/v1/sources/cargurus/listings/cg_001",
			wantStatus: http.StatusOK,
			wantBody:   `"model":"Accord"`,
		},
		{
			name:       "unknown listing returns 404",
			path:       "/api/v1/sources/cargurus/listings/cg_999",
			wantStatus: http.StatusNotFound,
			wantBody:   "listing cg_999 not found at cargurus",
		},
		{
			name:       "unknown source returns 404",
			path:       "/api/v1/sources/ebay/listings/cg_001",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := newSourcesAPI(t).Get(tt.path)
			require.Equal(t, tt.wantStatus, resp.Code)
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}
