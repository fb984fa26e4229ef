package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/carfinder/internal/api/handlers"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// fakeRefresher implements Refresher for testing.
type fakeRefresher struct {
	result domain.RefreshResult

	called bool
	prefs  *domain.PreferenceSet
}

func (f *fakeRefresher) RefreshLiveData(_ context.Context, prefs *domain.PreferenceSet) domain.RefreshResult {
	f.called = true
	f.prefs = prefs
	return f.result
}

func TestRefreshHandler_Refresh(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		body      []any
		result    domain.RefreshResult
		wantBody  []string
		wantPrefs *domain.PreferenceSet
	}{
		{
			name:     "no body uses default preferences",
			result:   domain.RefreshResult{Success: true, NewListingsCount: 3, Timestamp: ts},
			wantBody: []string{`"success":true`, `"new_listings_count":3`, `"timestamp":"2025-06-01T12:00:00Z"`},
		},
		{
			name:      "preferences narrow the refresh",
			body:      []any{map[string]any{"preferences": map[string]any{"make": "Tesla"}}},
			result:    domain.RefreshResult{Success: true, Timestamp: ts},
			wantBody:  []string{`"new_listings_count":0`},
			wantPrefs: &domain.PreferenceSet{Make: "Tesla"},
		},
		{
			name:     "failed refresh is still 200",
			body:     []any{map[string]any{}},
			result:   domain.RefreshResult{Error: "no live source answered", Timestamp: ts},
			wantBody: []string{`"success":false`, `"error":"no live source answered"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := &fakeRefresher{result: tt.result}
			_, api := humatest.New(t)
			handlers.RegisterRefreshRoutes(api, handlers.NewRefreshHandler(f))

			resp := api.Post("/api/v1/refresh", tt.body...)
			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
			assert.True(t, f.called)
			assert.Equal(t, tt.wantPrefs, f.prefs)
		})
	}
}
