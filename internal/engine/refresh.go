package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/donaldgifford/carfinder/internal/metrics"
	"github.com/donaldgifford/carfinder/internal/notify"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// Local store status values.
const (
	StoreActive      = "active"
	StoreUnavailable = "unavailable"
)

// RefreshLiveData fetches from the providers and caches what is new. Nil or
// empty prefs run a broad search bounded by the refresh budget. Failure is
// reported in the result, never returned.
func (eng *Engine) RefreshLiveData(ctx context.Context, prefs *domain.PreferenceSet) domain.RefreshResult {
	ctx, span := tracer.Start(ctx, "engine.RefreshLiveData")
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	}()

	p := eng.refreshPreferences(prefs)

	live, err := eng.searchLive(ctx, &p)
	if err != nil {
		eng.log.Error("live data refresh failed", "error", err)
		metrics.RefreshRunsTotal.WithLabelValues("failure").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "refresh failed")
		return domain.RefreshResult{
			Success:   false,
			Error:     err.Error(),
			Timestamp: eng.now(),
		}
	}

	written := eng.cacheLive(ctx, live)
	metrics.RefreshRunsTotal.WithLabelValues("success").Inc()
	span.SetAttributes(
		attribute.Int("fetched", len(live)),
		attribute.Int("new", len(written)),
	)

	ts := eng.now()
	eng.log.Info("live data refreshed", "fetched", len(live), "new", len(written))

	if len(written) > 0 {
		payload := &notify.RefreshPayload{
			NewListings: len(written),
			Fetched:     len(live),
			Timestamp:   ts,
			Highlights:  written,
		}
		if err := eng.notifier.SendRefresh(ctx, payload); err != nil {
			eng.log.Error("sending refresh notification", "error", err)
		}
	}

	return domain.RefreshResult{
		Success:          true,
		NewListingsCount: len(written),
		Timestamp:        ts,
	}
}

func (eng *Engine) refreshPreferences(prefs *domain.PreferenceSet) domain.PreferenceSet {
	if prefs != nil && !prefs.IsEmpty() {
		return *prefs
	}
	budget := eng.refreshBudget
	return domain.PreferenceSet{BudgetMax: &budget, Limit: defaultRefreshLimit}
}

// DataSourceStatus reports the local store size and the registered
// providers. A store that cannot be counted is reported as unavailable.
func (eng *Engine) DataSourceStatus(ctx context.Context) domain.DataSourceStatus {
	local := domain.LocalDatabaseStatus{Status: StoreActive}

	n, err := eng.store.CountAll(ctx)
	if err != nil {
		eng.log.Warn("counting cached vehicles", "error", err)
		local.Status = StoreUnavailable
	} else {
		local.VehicleCount = n
	}

	return domain.DataSourceStatus{
		LocalDatabase: local,
		LiveSources:   eng.live.Stats(),
	}
}
