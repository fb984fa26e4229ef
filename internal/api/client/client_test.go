package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.SourceStatus(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    string
		wantDetail string
	}{
		{
			name:    "plain body",
			status:  http.StatusInternalServerError,
			body:    `{"error":"internal"}`,
			wantErr: `API error (HTTP 500): {"error":"internal"}`,
		},
		{
			name:       "problem body",
			status:     http.StatusUnprocessableEntity,
			body:       `{"title":"Unprocessable Entity","status":422,"detail":"unknown vehicle_type spaceship"}`,
			wantErr:    "API error (HTTP 422): unknown vehicle_type spaceship",
			wantDetail: "unknown vehicle_type spaceship",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).Search(context.Background(), &SearchRequest{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
			assert.False(t, IsNotFound(err))
		})
	}
}

func TestClient_Search(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req SearchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Toyota", req.Preferences.Make)
		if assert.NotNil(t, req.UseLiveData) {
			assert.True(t, *req.UseLiveData)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"source":"cargurus","external_id":"cg_001","make":"Toyota","model":"Camry","score":31.5,"origin":"live"}],"total":1}`))
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	resp, err := c.Search(context.Background(), &SearchRequest{
		Preferences: domain.PreferenceSet{Make: "Toyota"},
		UseLiveData: ptr(true),
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "cg_001", resp.Results[0].ExternalID)
	assert.Equal(t, domain.OriginLive, resp.Results[0].Origin)
}

func TestClient_Chat(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/chat", r.URL.Path)

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "under 25k please", req["message"])
		assert.NotContains(t, req, "use_live_data")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"preferences":{"make":"Honda","budget_max":25000},"extracted":{"budget_max":25000},"topic":"budget","results":[],"reply":"I couldn't find any vehicles."}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Chat(context.Background(), &ChatRequest{
		Message:     "under 25k please",
		Preferences: &domain.PreferenceSet{Make: "Honda"},
	})
	require.NoError(t, err)
	assert.Equal(t, "budget", resp.Topic)
	assert.Equal(t, "Honda", resp.Preferences.Make)
	require.NotNil(t, resp.Preferences.BudgetMax)
	assert.InDelta(t, 25000.0, *resp.Preferences.BudgetMax, 0.01)
	assert.Nil(t, resp.TopPick)
	assert.Empty(t, resp.Results)
}

func TestClient_Extract(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/extract", r.URL.Path)

		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "electric suv", req["text"])

		_, _ = w.Write([]byte(`{"preferences":{"fuel_type":"Electric","vehicle_type":"suv"},"topic":"vehicle_type"}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Extract(context.Background(), "electric suv")
	require.NoError(t, err)
	assert.Equal(t, "Electric", resp.Preferences.FuelType)
	assert.Equal(t, domain.VehicleSUV, resp.Preferences.VehicleType)
	assert.Equal(t, "vehicle_type", resp.Topic)
}

func TestClient_SourceStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/sources/status", r.URL.Path)
		_, _ = w.Write([]byte(`{"local_database":{"vehicle_count":12,"status":"active"},"live_sources":{"total_sources":1,"active_sources":["autodev"]}}`))
	}))
	defer srv.Close()

	status, err := New(srv.URL).SourceStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, status.LocalDatabase.VehicleCount)
	assert.Equal(t, []string{"autodev"}, status.LiveSources.ActiveSources)
}

func TestClient_ListingDetails(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/v1/sources/cars.com/listings/cars%2F001" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"title":"Not Found","status":404,"detail":"listing not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"source":"cars.com","external_id":"cars/001","make":"Honda","model":"Civic","features":[],"images":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)

	l, err := c.ListingDetails(context.Background(), "cars.com", "cars/001")
	require.NoError(t, err)
	assert.Equal(t, "Civic", l.Model)

	_, err = c.ListingDetails(context.Background(), "cars.com", "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestClient_Refresh(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		prefs     *domain.PreferenceSet
		wantPrefs bool
	}{
		{name: "default refresh", prefs: nil},
		{name: "narrowed refresh", prefs: &domain.PreferenceSet{Make: "Tesla"}, wantPrefs: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/refresh", r.URL.Path)

				var req map[string]any
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				_, has := req["preferences"]
				assert.Equal(t, tt.wantPrefs, has)

				_, _ = w.Write([]byte(`{"success":true,"new_listings_count":4,"timestamp":"2025-06-01T12:00:00Z"}`))
			}))
			defer srv.Close()

			res, err := New(srv.URL).Refresh(context.Background(), tt.prefs)
			require.NoError(t, err)
			assert.True(t, res.Success)
			assert.Equal(t, 4, res.NewListingsCount)
		})
	}
}

func TestClient_Quota(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/quota", r.URL.Path)
		_, _ = w.Write([]byte(`{"provider":"auto.dev","daily_limit":1000,"daily_used":142,"remaining":858,"reset_at":"2025-06-16T14:30:00Z"}`))
	}))
	defer srv.Close()

	q, err := New(srv.URL).Quota(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(142), q.DailyUsed)
	assert.Equal(t, int64(858), q.Remaining)
	assert.False(t, q.Unlimited())
}

func TestClient_HeadersAndRequestID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cf-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("X-Request-ID", "req-9")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"title":"Bad Gateway","status":502,"detail":"no live source answered"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithUserAgent("cf-test")).Quota(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no live source answered [request req-9]")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "req-9", apiErr.RequestID)
	assert.Equal(t, "Bad Gateway", apiErr.Title)
}
