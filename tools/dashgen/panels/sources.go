package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SourceLatency returns a timeseries panel showing p95 search latency per
// listing provider.
func SourceLatency() *timeseries.PanelBuilder {
	return series("Provider Latency p95", "95th percentile search duration per provider", ThirdWidth).
		WithTarget(PromQuery(quantile(0.95, "carfinder_source_search_duration_seconds", "source"), "{{source}}", "A")).
		Unit("s")
}

// SourceListings returns a timeseries panel showing listings returned per
// provider.
func SourceListings() *timeseries.PanelBuilder {
	return series("Listings Returned", "Listings per second returned by each provider", ThirdWidth).
		WithTarget(PromQuery(`carfinder:source_listings:rate5m`, "{{source}}", "A"))
}

// SourceFailures returns a timeseries panel showing provider failures by
// reason.
func SourceFailures() *timeseries.PanelBuilder {
	return series("Provider Failures", "Failed provider calls by source and reason, plus unparseable listings", ThirdWidth).
		WithTarget(PromQuery(`carfinder:source_failures:rate5m`, "{{source}} {{reason}}", "A")).
		WithTarget(PromQuery(
			`sum(rate(`+jobSel("carfinder_source_parse_errors_total")+`[5m])) by (source)`,
			"{{source}} parse", "B",
		)).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1))
}
