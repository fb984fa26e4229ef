package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CacheWrites returns a timeseries panel showing live listings written to
// the local cache and failed writes.
func CacheWrites() *timeseries.PanelBuilder {
	return series("Cache Writes", "Live listings cached per second, and cache write errors", ThirdWidth).
		WithTarget(PromQuery(`carfinder:cache_writes:rate5m`, "written", "A")).
		WithTarget(PromQuery(`sum(rate(`+jobSel("carfinder_cache_errors_total")+`[5m]))`, "errors", "B"))
}

// RefreshRuns returns a timeseries panel showing scheduled refreshes by
// outcome.
func RefreshRuns() *timeseries.PanelBuilder {
	return series("Refresh Runs", "Scheduled live data refreshes per hour by outcome", ThirdWidth).
		WithTarget(PromQuery(
			`sum(increase(`+jobSel("carfinder_refresh_runs_total")+`[1h])) by (outcome)`,
			"{{outcome}}", "A",
		)).
		FillOpacity(30).
		LineWidth(1).
		DrawStyle(common.GraphDrawStyleBars)
}

// RefreshDuration returns a timeseries panel showing refresh duration
// percentiles.
func RefreshDuration() *timeseries.PanelBuilder {
	const h = "carfinder_refresh_duration_seconds"
	return series("Refresh Duration", "Time to search providers and cache the results", ThirdWidth).
		WithTarget(PromQuery(quantile(0.50, h), "p50", "A")).
		WithTarget(PromQuery(quantile(0.95, h), "p95", "B")).
		Unit("s")
}
