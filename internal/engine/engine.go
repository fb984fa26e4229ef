// Package engine answers shopping queries by combining live provider
// results with the local listing store.
package engine

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/donaldgifford/carfinder/internal/notify"
	"github.com/donaldgifford/carfinder/internal/store"
	score "github.com/donaldgifford/carfinder/pkg/scorer"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

const (
	defaultLocalLimit     = 50
	defaultRadius         = 50
	defaultLimitPerSource = domain.DefaultLimitPerSource
	defaultRefreshBudget  = 50000.0
	defaultRefreshLimit   = 50
)

var tracer = otel.Tracer("github.com/donaldgifford/carfinder/internal/engine")

// LiveSource is the multi-provider search behind live results.
// *aggregate.Aggregator implements it.
type LiveSource interface {
	SearchAllSources(ctx context.Context, c domain.SearchCriteria) ([]domain.VehicleListing, error)
	Stats() domain.LiveSourceStats
	Details(ctx context.Context, source, externalID string) (*domain.VehicleListing, bool)
}

// PreferenceExtractor reads preferences from chat messages the keyword
// rules found nothing in. *extract.LLMExtractor implements it.
type PreferenceExtractor interface {
	Extract(ctx context.Context, text string) (domain.PreferenceSet, error)
	Name() string
}

// Engine runs hybrid searches, live refreshes and the chat advisor.
type Engine struct {
	store    store.Store
	live     LiveSource
	notifier notify.Notifier
	fallback PreferenceExtractor
	log      *slog.Logger
	now      func() time.Time

	defaultLimit   int
	localLimit     int
	defaultRadius  int
	limitPerSource int
	minMatchScore  float64
	refreshBudget  float64
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(
	s store.Store,
	live LiveSource,
	n notify.Notifier,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		store:          s,
		live:           live,
		notifier:       n,
		log:            slog.Default(),
		now:            time.Now,
		defaultLimit:   domain.DefaultResultLimit,
		localLimit:     defaultLocalLimit,
		defaultRadius:  defaultRadius,
		limitPerSource: defaultLimitPerSource,
		minMatchScore:  score.MinMatchScore,
		refreshBudget:  defaultRefreshBudget,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithFallbackExtractor sets the extractor chat uses when the keyword rules
// find no preferences in a message.
func WithFallbackExtractor(x PreferenceExtractor) EngineOption {
	return func(e *Engine) {
		e.fallback = x
	}
}

// WithClock overrides the time source used for vehicle age and timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// WithDefaultLimit sets how many results a search returns when the
// preferences give no limit.
func WithDefaultLimit(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.defaultLimit = n
		}
	}
}

// WithLocalLimit sets how many rows a store search fetches.
func WithLocalLimit(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.localLimit = n
		}
	}
}

// WithDefaultRadius sets the search radius used when preferences give none.
func WithDefaultRadius(miles int) EngineOption {
	return func(e *Engine) {
		if miles > 0 {
			e.defaultRadius = miles
		}
	}
}

// WithLimitPerSource caps the listings taken from each provider.
func WithLimitPerSource(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.limitPerSource = n
		}
	}
}

// WithMinMatchScore sets the compatibility score below which chat results
// are hidden.
func WithMinMatchScore(s float64) EngineOption {
	return func(e *Engine) {
		e.minMatchScore = s
	}
}

// WithRefreshBudget sets the budget of the default refresh search.
func WithRefreshBudget(b float64) EngineOption {
	return func(e *Engine) {
		if b > 0 {
			e.refreshBudget = b
		}
	}
}

// Details fetches one listing from the provider that published it.
func (eng *Engine) Details(ctx context.Context, source, externalID string) (*domain.VehicleListing, bool) {
	return eng.live.Details(ctx, source, externalID)
}
