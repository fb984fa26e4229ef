// Package aggregate fans a search out to every listing provider, merges the
// results, drops duplicates and ranks what is left.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/carfinder/internal/metrics"
	"github.com/donaldgifford/carfinder/internal/sources"
	score "github.com/donaldgifford/carfinder/pkg/scorer"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// DefaultTimeout bounds a single provider search.
const DefaultTimeout = 30 * time.Second

// ErrNoLiveSources is returned when no provider is registered or every
// provider timed out or panicked.
var ErrNoLiveSources = errors.New("no live source answered")

var errPanic = errors.New("provider panicked")

var tracer = otel.Tracer("github.com/donaldgifford/carfinder/internal/aggregate")

// Aggregator searches a fixed set of providers in parallel.
type Aggregator struct {
	adapters []sources.Adapter
	timeout  time.Duration
	bonus    score.SourceBonus
	now      func() time.Time
	log      *slog.Logger
}

// Option configures the Aggregator.
type Option func(*Aggregator)

// WithTimeout sets the per-provider search timeout.
func WithTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithSourceBonus replaces the per-provider ranking bonus.
func WithSourceBonus(b score.SourceBonus) Option {
	return func(a *Aggregator) {
		a.bonus = b
	}
}

// WithClock overrides the time source used for vehicle age.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) {
		a.log = l
	}
}

// New creates an Aggregator over adapters.
func New(adapters []sources.Adapter, opts ...Option) *Aggregator {
	a := &Aggregator{
		adapters: adapters,
		timeout:  DefaultTimeout,
		bonus:    score.DefaultSourceBonus(),
		now:      time.Now,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Adapters returns the registered providers.
func (a *Aggregator) Adapters() []sources.Adapter {
	return a.adapters
}

// SearchAllSources queries every provider concurrently, then deduplicates
// and ranks the combined results. A provider that times out or panics
// contributes nothing; an error is returned only when every provider did.
func (a *Aggregator) SearchAllSources(ctx context.Context, c domain.SearchCriteria) ([]domain.VehicleListing, error) {
	ctx, span := tracer.Start(ctx, "aggregate.SearchAllSources")
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.AggregateDuration.Observe(time.Since(start).Seconds())
	}()

	if len(a.adapters) == 0 {
		span.SetStatus(codes.Error, ErrNoLiveSources.Error())
		return nil, ErrNoLiveSources
	}

	var (
		mu       sync.Mutex
		combined []domain.VehicleListing
		failed   int
	)

	var g errgroup.Group
	g.SetLimit(len(a.adapters))
	for _, ad := range a.adapters {
		g.Go(func() error {
			listings, err := a.searchOne(ctx, ad, c)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				return nil
			}
			combined = append(combined, listings...)
			return nil
		})
	}
	_ = g.Wait()

	if failed == len(a.adapters) {
		span.SetStatus(codes.Error, ErrNoLiveSources.Error())
		return nil, fmt.Errorf("searching %d providers: %w", failed, ErrNoLiveSources)
	}

	unique, dups := dedupBy(combined, self)
	metrics.AggregateDuplicatesTotal.WithLabelValues("vin").Add(float64(dups.vin))
	metrics.AggregateDuplicatesTotal.WithLabelValues("similarity").Add(float64(dups.similar))

	ranked := Rank(unique, &c, a.bonus, a.now().Year())

	span.SetAttributes(
		attribute.Int("providers.failed", failed),
		attribute.Int("listings.raw", len(combined)),
		attribute.Int("listings.unique", len(ranked)),
	)
	a.log.Info("aggregated provider search",
		"providers", len(a.adapters),
		"failed", failed,
		"raw", len(combined),
		"unique", len(ranked),
	)
	return ranked, nil
}

// searchOne runs one provider search under its own timeout. The provider
// goroutine is abandoned if it ignores the deadline.
func (a *Aggregator) searchOne(
	ctx context.Context,
	ad sources.Adapter,
	c domain.SearchCriteria,
) ([]domain.VehicleListing, error) {
	name := ad.Name()
	ctx, span := tracer.Start(ctx, "aggregate.provider", traceSource(name))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	type outcome struct {
		listings []domain.VehicleListing
		err      error
	}
	done := make(chan outcome, 1)

	start := time.Now()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%w: %v", errPanic, r)}
			}
		}()
		done <- outcome{listings: ad.Search(ctx, c)}
	}()

	var o outcome
	select {
	case o = <-done:
	case <-ctx.Done():
		o.err = fmt.Errorf("searching %s: %w", name, ctx.Err())
	}
	metrics.SourceSearchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if o.err != nil {
		reason := "timeout"
		if errors.Is(o.err, errPanic) {
			reason = "panic"
		}
		a.log.Error("provider search failed", "source", name, "reason", reason, "error", o.err)
		metrics.SourceFailuresTotal.WithLabelValues(name, reason).Inc()
		span.RecordError(o.err)
		span.SetStatus(codes.Error, reason)
		return nil, o.err
	}

	a.log.Debug("provider search complete", "source", name, "count", len(o.listings))
	metrics.SourceListingsTotal.WithLabelValues(name).Add(float64(len(o.listings)))
	span.SetAttributes(attribute.Int("listings", len(o.listings)))
	return o.listings, nil
}

// Stats reports the registered providers and how they are configured.
func (a *Aggregator) Stats() domain.LiveSourceStats {
	caps := make(map[string]domain.SourceCapability, len(a.adapters))
	for _, ad := range a.adapters {
		caps[ad.Name()] = ad.Capability()
	}
	return domain.LiveSourceStats{
		TotalSources:       len(a.adapters),
		ActiveSources:      sources.Names(a.adapters),
		SourceCapabilities: caps,
	}
}

// Details looks up one listing on the named provider. ok is false when the
// provider is unknown or does not have the listing.
func (a *Aggregator) Details(ctx context.Context, source, externalID string) (*domain.VehicleListing, bool) {
	ctx, span := tracer.Start(ctx, "aggregate.Details", traceSource(source))
	defer span.End()

	for _, ad := range a.adapters {
		if ad.Name() != source {
			continue
		}
		ctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		return ad.GetDetails(ctx, externalID)
	}
	a.log.Warn("details requested from unknown provider", "source", source)
	return nil, false
}

func traceSource(name string) trace.SpanStartOption {
	return trace.WithAttributes(attribute.String("source", name))
}
