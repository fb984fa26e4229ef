package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/carfinder/internal/api/handlers"
	"github.com/donaldgifford/carfinder/internal/sources"
)

func TestQuotaHandler_GetQuota(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		rl       func() handlers.QuotaReporter
		wantBody []string
	}{
		{
			name: "usage after calls",
			rl: func() handlers.QuotaReporter {
				rl := sources.NewRateLimiter(1000, 10, 1000, sources.WithClock(func() time.Time { return now }))
				for range 3 {
					require.NoError(t, rl.Wait(t.Context()))
				}
				return rl
			},
			wantBody: []string{
				`"provider":"auto.dev"`,
				`"daily_limit":1000`,
				`"daily_used":3`,
				`"remaining":997`,
				`"reset_at":"2025-06-16T14:30:00Z"`,
			},
		},
		{
			name: "unlimited budget",
			rl: func() handlers.QuotaReporter {
				return sources.NewRateLimiter(1000, 10, 0)
			},
			wantBody: []string{`"daily_limit":0`, `"remaining":-1`},
		},
		{
			name:     "not configured",
			rl:       func() handlers.QuotaReporter { return nil },
			wantBody: []string{`"provider":"auto.dev"`, `"daily_used":0`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, api := humatest.New(t)
			handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(tt.rl()))

			resp := api.Get("/api/v1/quota")
			require.Equal(t, http.StatusOK, resp.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
		})
	}
}
