package sources_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/carfinder/internal/sources"
)

func TestRateLimiter_Wait(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rate    float64
		burst   int
		daily   int64
		calls   int
		wantErr bool
	}{
		{name: "allows calls within rate", rate: 100, burst: 10, daily: 1000, calls: 3},
		{name: "allows burst", rate: 100, burst: 5, daily: 1000, calls: 5},
		{name: "no daily quota", rate: 100, burst: 10, daily: 0, calls: 8},
		{name: "rejects when daily limit reached", rate: 100, burst: 10, daily: 2, calls: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl := sources.NewRateLimiter(tt.rate, tt.burst, tt.daily)

			var lastErr error
			for range tt.calls {
				lastErr = rl.Wait(context.Background())
				if lastErr != nil {
					break
				}
			}

			if tt.wantErr {
				require.ErrorIs(t, lastErr, sources.ErrDailyLimitReached)
				assert.Equal(t, int64(0), rl.Remaining())
			} else {
				require.NoError(t, lastErr)
			}
		})
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	current := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}

	rl := sources.NewRateLimiter(100, 10, 2, sources.WithClock(clock))

	require.NoError(t, rl.Wait(context.Background()))
	require.NoError(t, rl.Wait(context.Background()))
	require.ErrorIs(t, rl.Wait(context.Background()), sources.ErrDailyLimitReached)

	mu.Lock()
	current = current.Add(25 * time.Hour)
	mu.Unlock()

	require.NoError(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(1), rl.DailyCount())
	assert.Equal(t, current.Add(24*time.Hour), rl.ResetAt())
}

func TestRateLimiter_CanceledWaitIsRefunded(t *testing.T) {
	t.Parallel()

	rl := sources.NewRateLimiter(0.1, 1, 10)

	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter wait")
	assert.Equal(t, int64(1), rl.DailyCount())
	assert.Equal(t, int64(9), rl.Remaining())
}
