package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/carfinder/internal/aggregate"
	"github.com/donaldgifford/carfinder/internal/metrics"
	"github.com/donaldgifford/carfinder/internal/store"
	score "github.com/donaldgifford/carfinder/pkg/scorer"
	domain "github.com/donaldgifford/carfinder/pkg/types"
	"github.com/donaldgifford/carfinder/pkg/vehicle"
)

// SearchHybrid returns listings matching prefs, best first, truncated to
// prefs.ResultLimit(). With useLiveData the providers are queried and what
// they return is cached; if every provider fails the local store answers
// instead. Without it only the store is searched. Failures never surface to
// the caller.
func (eng *Engine) SearchHybrid(
	ctx context.Context,
	prefs domain.PreferenceSet,
	useLiveData bool,
) []domain.SearchResult {
	ctx, span := tracer.Start(ctx, "engine.SearchHybrid",
		trace.WithAttributes(attribute.Bool("use_live_data", useLiveData)))
	defer span.End()

	if prefs.Limit <= 0 {
		prefs.Limit = eng.defaultLimit
	}

	var (
		pool []domain.SearchResult
		path = "local"
	)

	if useLiveData {
		live, err := eng.searchLive(ctx, &prefs)
		if err != nil {
			eng.log.Warn("live search failed, falling back to local store", "error", err)
			metrics.LiveFallbacksTotal.Inc()
			span.RecordError(err)
			path = "fallback"
		} else {
			path = "live"
			eng.cacheLive(ctx, live)
			pool = liveResults(live)
		}
	}
	if path != "live" {
		pool = eng.searchLocal(ctx, &prefs)
	}
	metrics.SearchesTotal.WithLabelValues(path).Inc()

	pool = aggregate.DedupFunc(pool, func(r *domain.SearchResult) *domain.VehicleListing {
		return &r.VehicleListing
	})
	results := eng.sortByRelevance(pool, &prefs)

	span.SetAttributes(
		attribute.String("path", path),
		attribute.Int("results", len(results)),
	)
	return results
}

// searchLive queries the providers. A truck request without a make is
// split into one query per truck make; it fails only if all of them fail.
func (eng *Engine) searchLive(ctx context.Context, p *domain.PreferenceSet) ([]domain.VehicleListing, error) {
	c := p.Criteria(eng.limitPerSource)
	if c.Radius == nil {
		r := eng.defaultRadius
		c.Radius = &r
	}

	if !truckRequery(p) {
		listings, err := eng.live.SearchAllSources(ctx, c)
		if err != nil {
			return nil, err
		}
		return eng.truckFilter(p, listings), nil
	}

	var (
		all  []domain.VehicleListing
		errs []error
	)
	for _, mk := range vehicle.TruckMakes {
		c.Make = mk
		listings, err := eng.live.SearchAllSources(ctx, c)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", mk, err))
			continue
		}
		all = append(all, listings...)
	}
	if len(errs) == len(vehicle.TruckMakes) {
		return nil, fmt.Errorf("searching truck makes: %w", errors.Join(errs...))
	}
	return eng.truckFilter(p, all), nil
}

// searchLocal queries the store. Store errors are logged and yield no rows.
func (eng *Engine) searchLocal(ctx context.Context, p *domain.PreferenceSet) []domain.SearchResult {
	ctx, span := tracer.Start(ctx, "engine.searchLocal")
	defer span.End()

	q := store.QueryFromPreferences(p, eng.localLimit)

	var records []domain.VehicleRecord
	if truckRequery(p) {
		for _, mk := range vehicle.TruckMakes {
			perMake := *q
			perMake.Make = mk
			got, err := eng.store.Search(ctx, &perMake)
			if err != nil {
				eng.log.Error("local search failed", "make", mk, "error", err)
				span.RecordError(err)
				continue
			}
			records = append(records, got...)
		}
	} else {
		got, err := eng.store.Search(ctx, q)
		if err != nil {
			eng.log.Error("local search failed", "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "local search failed")
			return nil
		}
		records = got
	}

	out := make([]domain.SearchResult, 0, len(records))
	for i := range records {
		r := &records[i]
		if p.VehicleType == domain.VehicleTruck && !eng.isWantedTruck(p, &r.VehicleListing) {
			continue
		}
		cachedAt := r.CachedAt
		out = append(out, domain.SearchResult{
			VehicleListing: r.VehicleListing,
			Origin:         domain.OriginLocal,
			CachedAt:       &cachedAt,
		})
	}
	eng.log.Info("local search complete", "rows", len(records), "kept", len(out))
	return out
}

func truckRequery(p *domain.PreferenceSet) bool {
	return p.VehicleType == domain.VehicleTruck && p.Make == ""
}

// truckFilter drops non-trucks, and trucks of the wrong class, from a truck
// search. Other searches pass through.
func (eng *Engine) truckFilter(p *domain.PreferenceSet, listings []domain.VehicleListing) []domain.VehicleListing {
	if p.VehicleType != domain.VehicleTruck {
		return listings
	}
	kept := make([]domain.VehicleListing, 0, len(listings))
	for i := range listings {
		if eng.isWantedTruck(p, &listings[i]) {
			kept = append(kept, listings[i])
		}
	}
	return kept
}

func (eng *Engine) isWantedTruck(p *domain.PreferenceSet, l *domain.VehicleListing) bool {
	if vehicle.IsTruck(l.Make, l.Model) && vehicle.MatchesTruckClass(l.Model, p.TruckClass) {
		return true
	}
	eng.log.Info("filtered out non-matching vehicle from truck search",
		"make", l.Make,
		"model", l.Model,
		"truck_class", p.TruckClass,
	)
	metrics.TruckFilterDroppedTotal.Inc()
	return false
}

// cacheLive writes live listings the store does not have yet. Errors are
// logged and counted, never returned. It returns the listings it wrote.
func (eng *Engine) cacheLive(ctx context.Context, listings []domain.VehicleListing) []domain.VehicleListing {
	ctx, span := tracer.Start(ctx, "engine.cacheLive")
	defer span.End()

	var written []domain.VehicleListing
	for i := range listings {
		l := &listings[i]
		if l.VIN != "" {
			_, err := eng.store.GetByVIN(ctx, l.VIN)
			if err == nil {
				continue
			}
			if !errors.Is(err, store.ErrNotFound) {
				eng.log.Warn("checking cached VIN failed", "vin", l.VIN, "error", err)
				metrics.CacheErrorsTotal.Inc()
				continue
			}
		}

		rec := &domain.VehicleRecord{VehicleListing: *l, CachedAt: eng.now()}
		if err := eng.store.Add(ctx, rec); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				continue
			}
			eng.log.Warn("caching live listing failed",
				"source", l.Source,
				"external_id", l.ExternalID,
				"error", err,
			)
			metrics.CacheErrorsTotal.Inc()
			continue
		}
		metrics.CacheWritesTotal.Inc()
		written = append(written, *l)
	}

	span.SetAttributes(attribute.Int("written", len(written)))
	eng.log.Debug("cached live listings", "fetched", len(listings), "written", len(written))
	return written
}

func liveResults(listings []domain.VehicleListing) []domain.SearchResult {
	out := make([]domain.SearchResult, len(listings))
	for i := range listings {
		out[i] = domain.SearchResult{VehicleListing: listings[i], Origin: domain.OriginLive}
	}
	return out
}

// sortByRelevance scores, orders and truncates results. Ties keep their
// input order.
func (eng *Engine) sortByRelevance(results []domain.SearchResult, p *domain.PreferenceSet) []domain.SearchResult {
	year := eng.now().Year()
	for i := range results {
		results[i].Score = score.RelevanceScore(&results[i].VehicleListing, p, year)
	}
	slices.SortStableFunc(results, func(a, b domain.SearchResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	if limit := p.ResultLimit(); len(results) > limit {
		results = results[:limit]
	}
	return results
}
