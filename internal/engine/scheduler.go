package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/carfinder/internal/metrics"
)

// Scheduler runs periodic live data refreshes.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	log    *slog.Logger

	refreshEntryID cron.EntryID
}

// NewScheduler creates a Scheduler that refreshes live data every interval.
func NewScheduler(
	eng *Engine,
	refreshInterval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	if refreshInterval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive, got %s", refreshInterval)
	}

	c := cron.New()

	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	id, err := c.AddFunc("@every "+refreshInterval.String(), s.runRefresh)
	if err != nil {
		return nil, fmt.Errorf("scheduling refresh: %w", err)
	}
	s.refreshEntryID = id

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
	s.SyncNextRunTimestamps()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// SyncNextRunTimestamps publishes the next refresh time as a gauge.
func (s *Scheduler) SyncNextRunTimestamps() {
	e := s.cron.Entry(s.refreshEntryID)
	if e.Next.IsZero() {
		return
	}
	metrics.SchedulerNextRefreshTimestamp.Set(float64(e.Next.Unix()))
}

func (s *Scheduler) runRefresh() {
	ctx := context.Background()
	s.log.Info("scheduled refresh starting")

	res := s.engine.RefreshLiveData(ctx, nil)
	if !res.Success {
		s.log.Error("scheduled refresh failed", "error", res.Error)
	} else {
		s.log.Info("scheduled refresh complete", "new_listings", res.NewListingsCount)
	}
	s.SyncNextRunTimestamps()
}
