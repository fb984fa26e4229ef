package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// APICallsRate returns a timeseries panel showing the auto.dev call rate.
func APICallsRate() *timeseries.PanelBuilder {
	return series("API Calls Rate", "auto.dev API calls per second", ThirdWidth).
		WithTarget(PromQuery(`carfinder:autodev_api_calls:rate5m`, "calls/s", "A")).
		Unit("reqps")
}

// DailyUsage returns a timeseries panel showing the rolling 24h auto.dev
// usage with a threshold line at the daily budget.
func DailyUsage() *timeseries.PanelBuilder {
	return series("Daily Usage vs Budget", fmt.Sprintf("Rolling 24h auto.dev call count (default budget: %d)", AutoDevDailyLimit), ThirdWidth).
		WithTarget(PromQuery(jobSel("carfinder_autodev_daily_usage"), "usage", "A")).
		Thresholds(ThresholdsGreenYellowRed(float64(AutoDevDailyLimit)*0.8, float64(AutoDevDailyLimit))).
		ColorScheme(ColorSchemeThresholds())
}

// LimitHits returns a stat panel showing how often the daily budget was
// exhausted in the past 24 hours.
func LimitHits() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Limit Hits (24h)").
		Description("Requests refused because the auto.dev daily budget was spent").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`increase(`+jobSel("carfinder_autodev_daily_limit_hits_total")+`[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
