package cmd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/carfinder/internal/engine"
	enginemocks "github.com/donaldgifford/carfinder/internal/engine/mocks"
	"github.com/donaldgifford/carfinder/internal/notify"
	"github.com/donaldgifford/carfinder/internal/sources"
	storemocks "github.com/donaldgifford/carfinder/internal/store/mocks"
	"github.com/donaldgifford/carfinder/pkg/logger"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

func TestNewRouter(t *testing.T) {
	t.Parallel()

	price := 18900.0
	st := storemocks.NewMockStore(t)
	st.EXPECT().Ping(mock.Anything).Return(nil)
	st.EXPECT().Search(mock.Anything, mock.Anything).Return([]domain.VehicleRecord{{
		ID: 1,
		VehicleListing: domain.VehicleListing{
			Source: "cars.com", ExternalID: "cars_003", Make: "Mazda", Model: "CX-5", Year: 2020,
			Price: &price,
		},
		CachedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}}, nil)

	live := enginemocks.NewMockLiveSource(t)
	log := logger.Discard()
	eng := engine.NewEngine(st, live, notify.NewNoOpNotifier(log), engine.WithLogger(log))

	e := newRouter(log, st, eng, sources.NewRateLimiter(10, 1, 1000), false)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "liveness",
			method:     http.MethodGet,
			path:       "/healthz",
			wantStatus: http.StatusOK,
			wantBody:   `"status":"ok"`,
		},
		{
			name:       "readiness pings the store",
			method:     http.MethodGet,
			path:       "/readyz",
			wantStatus: http.StatusOK,
			wantBody:   `"status":"ready"`,
		},
		{
			name:       "prometheus metrics",
			method:     http.MethodGet,
			path:       "/metrics",
			wantStatus: http.StatusOK,
			wantBody:   "carfinder_healthz_up",
		},
		{
			name:       "generated spec",
			method:     http.MethodGet,
			path:       "/openapi.json",
			wantStatus: http.StatusOK,
			wantBody:   `"operationId":"search-vehicles"`,
		},
		{
			name:       "swagger ui",
			method:     http.MethodGet,
			path:       "/swagger/index.html",
			wantStatus: http.StatusOK,
			wantBody:   "<title>carfinder API</title>",
		},
		{
			name:       "extract",
			method:     http.MethodPost,
			path:       "/api/v1/extract",
			body:       `{"text":"a Mazda under 20k"}`,
			wantStatus: http.StatusOK,
			wantBody:   `"make":"Mazda"`,
		},
		{
			name:       "local search",
			method:     http.MethodPost,
			path:       "/api/v1/search",
			body:       `{"preferences":{"make":"Mazda"}}`,
			wantStatus: http.StatusOK,
			wantBody:   `"external_id":"cars_003"`,
		},
		{
			name:       "auto.dev quota",
			method:     http.MethodGet,
			path:       "/api/v1/quota",
			wantStatus: http.StatusOK,
			wantBody:   `"daily_limit":1000`,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/v1/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
