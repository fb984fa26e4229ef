package main

import "errors"

// KnownMetrics is the set of metric names exported by carfinder plus
// recording rule names referenced in dashboards and alerts. Histogram
// series (_bucket, _sum, _count) resolve to their base name.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"carfinder_http_request_duration_seconds": true,
	"carfinder_http_requests_total":           true,

	// Health metrics.
	"carfinder_healthz_up": true,
	"carfinder_readyz_up":  true,

	// Provider metrics.
	"carfinder_source_search_duration_seconds": true,
	"carfinder_source_listings_total":          true,
	"carfinder_source_failures_total":          true,
	"carfinder_source_parse_errors_total":      true,

	// Aggregation and search metrics.
	"carfinder_aggregate_duration_seconds": true,
	"carfinder_aggregate_duplicates_total": true,
	"carfinder_searches_total":             true,
	"carfinder_live_fallbacks_total":       true,
	"carfinder_truck_filter_dropped_total": true,
	"carfinder_match_score_distribution":   true,

	// LLM fallback metrics.
	"carfinder_llm_extraction_duration_seconds": true,
	"carfinder_llm_extraction_failures_total":   true,

	// Cache and refresh metrics.
	"carfinder_cache_writes_total":       true,
	"carfinder_cache_errors_total":       true,
	"carfinder_refresh_duration_seconds": true,
	"carfinder_refresh_runs_total":       true,

	// auto.dev metrics.
	"carfinder_autodev_api_calls_total":        true,
	"carfinder_autodev_daily_usage":            true,
	"carfinder_autodev_daily_limit_hits_total": true,

	// Notification metrics.
	"carfinder_notifications_sent_total":      true,
	"carfinder_notification_failures_total":   true,
	"carfinder_notification_duration_seconds": true,

	// Scheduler metrics.
	"carfinder_scheduler_next_refresh_timestamp": true,

	// Recording rules.
	"carfinder:http_requests:rate5m":     true,
	"carfinder:http_errors:rate5m":       true,
	"carfinder:source_listings:rate5m":   true,
	"carfinder:source_failures:rate5m":   true,
	"carfinder:searches:rate5m":          true,
	"carfinder:cache_writes:rate5m":      true,
	"carfinder:autodev_api_calls:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
