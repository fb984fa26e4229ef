// Package metrics defines Prometheus metrics for carfinder.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "carfinder"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last /healthz probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last /readyz probe succeeded, 0 otherwise.",
	})
)

// Provider metrics.
var (
	SourceSearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "source_search_duration_seconds",
		Help:      "Duration of one provider search in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	SourceListingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_listings_total",
		Help:      "Total number of normalized listings returned by each provider.",
	}, []string{"source"})

	SourceFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_failures_total",
		Help:      "Total number of failed provider calls by reason.",
	}, []string{"source", "reason"})

	SourceParseErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_parse_errors_total",
		Help:      "Total number of provider records skipped because they could not be parsed.",
	}, []string{"source"})
)

// Aggregation metrics.
var (
	AggregateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "aggregate_duration_seconds",
		Help:      "Duration of a multi-provider search in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	AggregateDuplicatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "aggregate_duplicates_total",
		Help:      "Total number of listings dropped as duplicates by rule.",
	}, []string{"rule"})
)

// Search metrics.
var (
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of hybrid searches by path taken.",
	}, []string{"path"})

	LiveFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "live_fallbacks_total",
		Help:      "Total number of live searches that fell back to the local store.",
	})

	TruckFilterDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "truck_filter_dropped_total",
		Help:      "Total number of listings removed by the truck model filter.",
	})

	MatchScoreDistribution = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "match_score_distribution",
		Help:      "Distribution of computed compatibility scores.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11), // 0, 10, 20, ..., 100
	})
)

// Cache metrics.
var (
	CacheWritesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_writes_total",
		Help:      "Total number of live listings written to the local store.",
	})

	CacheErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_errors_total",
		Help:      "Total number of failed cache writes.",
	})

	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "refresh_duration_seconds",
		Help:      "Duration of live data refresh runs in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)

// auto.dev API metrics.
var (
	AutoDevAPICallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "autodev_api_calls_total",
		Help:      "Total cumulative auto.dev API calls.",
	})

	AutoDevDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "autodev_daily_usage",
		Help:      "Current daily auto.dev API call count within the rolling 24-hour window.",
	})

	AutoDevDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "autodev_daily_limit_hits_total",
		Help:      "Total number of times the daily auto.dev API limit was reached.",
	})
)

// LLM extraction metrics.
var (
	LLMExtractionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "llm_extraction_duration_seconds",
		Help:      "Duration of fallback LLM preference extractions in seconds.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20},
	}, []string{"backend"})

	LLMExtractionFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "llm_extraction_failures_total",
		Help:      "Total number of fallback LLM extractions that failed or returned invalid fields.",
	}, []string{"backend"})
)

// Notification metrics.
var (
	NotificationsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of refresh notifications sent.",
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})

	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of successful notification sends in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Scheduler metrics.
var (
	SchedulerNextRefreshTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scheduler_next_refresh_timestamp",
		Help:      "Unix timestamp of the next scheduled live data refresh.",
	})

	RefreshRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refresh_runs_total",
		Help:      "Total number of live data refresh runs by outcome.",
	}, []string{"outcome"})
)
