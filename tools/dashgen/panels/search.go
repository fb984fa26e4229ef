package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SearchesByPath returns a timeseries panel showing hybrid searches split by
// the path that answered them: live, local, or fallback.
func SearchesByPath() *timeseries.PanelBuilder {
	return series("Searches by Path", "Hybrid searches per second by answering path", ThirdWidth).
		WithTarget(PromQuery(`carfinder:searches:rate5m`, "{{path}}", "A")).
		Unit("reqps").
		FillOpacity(20).
		LineWidth(1).
		Stacking(common.NewStackingConfigBuilder().Mode(common.StackingModeNormal))
}

// Duplicates returns a timeseries panel showing listings dropped by
// deduplication, per rule.
func Duplicates() *timeseries.PanelBuilder {
	return series("Duplicates Dropped", "Listings removed as duplicates, by VIN or by similarity", ThirdWidth).
		WithTarget(PromQuery(
			`sum(rate(`+jobSel("carfinder_aggregate_duplicates_total")+`[5m])) by (rule)`,
			"{{rule}}", "A",
		)).
		WithTarget(PromQuery(
			`sum(rate(`+jobSel("carfinder_truck_filter_dropped_total")+`[5m]))`,
			"truck filter", "B",
		))
}

// AggregateLatency returns a timeseries panel showing how long fanning out
// to every provider takes, with the live fallback rate alongside.
func AggregateLatency() *timeseries.PanelBuilder {
	return series("Fan-out Latency", "Multi-provider search duration and live fallbacks to the cache", ThirdWidth).
		WithTarget(PromQuery(quantile(0.95, "carfinder_aggregate_duration_seconds"), "p95", "A")).
		WithTarget(PromQuery(
			`sum(rate(`+jobSel("carfinder_live_fallbacks_total")+`[5m]))`,
			"fallbacks/s", "B",
		)).
		Unit("s")
}

// LLMExtraction returns a timeseries panel showing fallback LLM extraction
// latency and failures per backend.
func LLMExtraction() *timeseries.PanelBuilder {
	return series("LLM Fallback", "Chat messages handed to the LLM backend: p95 latency and failures", TSWidth).
		WithTarget(PromQuery(quantile(0.95, "carfinder_llm_extraction_duration_seconds", "backend"), "p95 {{backend}}", "A")).
		WithTarget(PromQuery(
			`sum(rate(`+jobSel("carfinder_llm_extraction_failures_total")+`[5m])) by (backend)`,
			"failures/s {{backend}}", "B",
		))
}

// MatchDistribution returns a bar gauge panel showing the distribution of
// chat compatibility scores.
func MatchDistribution() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Match Score Distribution").
		Description("Compatibility scores of chat recommendations (0-100)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(increase(`+jobSel("carfinder_match_score_distribution_bucket")+`[1h])) by (le)`,
			"{{le}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}
